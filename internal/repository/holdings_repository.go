package repository

import (
	"database/sql"
	"sort"

	"github.com/CryptoFolio/CryptoFolio_Api.git/internal/metrics"
	"github.com/CryptoFolio/CryptoFolio_Api.git/internal/models"
)

// HoldingsRepository arma el resumen de tenencias y la distribución para el
// gráfico de torta a partir de los activos reconstruidos y el paquete metrics.
type HoldingsRepository struct {
	db     *sql.DB
	txRepo *TransactionRepository
}

func NewHoldingsRepository(db *sql.DB) *HoldingsRepository {
	return &HoldingsRepository{
		db:     db,
		txRepo: NewTransactionRepository(db),
	}
}

// GetHoldings obtiene las tenencias de criptomonedas de un usuario.
func (r *HoldingsRepository) GetHoldings(userID string) (models.Holdings, error) {
	assets, err := r.txRepo.BuildAssets(userID)
	if err != nil {
		return models.Holdings{}, err
	}

	// Sin activos, devolver una estructura vacía en lugar de dividir por cero
	if len(assets) == 0 {
		return models.Holdings{
			Distribution: []models.CryptoWeight{},
			ChartData: models.PieChartData{
				Labels:   []string{},
				Values:   []float64{},
				Currency: "USD",
			},
		}, nil
	}

	totals, err := metrics.PortfolioTotals(assets)
	if err != nil {
		return models.Holdings{}, err
	}
	allocations, err := metrics.Allocation(assets)
	if err != nil {
		return models.Holdings{}, err
	}

	// Total invertido histórico al costo base promedio
	var totalInvested float64
	nameByTicker := make(map[string]string)
	for _, a := range assets {
		totalInvested += a.Amount * a.PurchasePrice
		nameByTicker[a.Ticker] = a.CryptoName
	}

	var profitPercentage float64
	if totalInvested > 0 {
		profitPercentage = (totals.TotalProfitLoss / totalInvested) * 100
	}

	// Pesos por criptomoneda, de mayor a menor
	cryptoWeights := make([]models.CryptoWeight, len(allocations))
	for i, alloc := range allocations {
		cryptoWeights[i] = models.CryptoWeight{
			Ticker: alloc.Ticker,
			Name:   nameByTicker[alloc.Ticker],
			Value:  alloc.Value,
			Weight: alloc.Percentage,
		}
	}
	sort.Slice(cryptoWeights, func(i, j int) bool {
		return cryptoWeights[i].Weight > cryptoWeights[j].Weight
	})

	// Las criptomonedas bajo el umbral se acumulan en la categoría "OTROS"
	const othersThreshold = 5.0
	var distribution []models.CryptoWeight
	var othersValue, othersWeight float64
	var othersDetails []models.CryptoWeight

	for _, crypto := range cryptoWeights {
		if crypto.Weight < othersThreshold {
			othersValue += crypto.Value
			othersWeight += crypto.Weight
			othersDetails = append(othersDetails, crypto)
			continue
		}

		// Asignar un color según la posición
		var color string
		switch len(distribution) {
		case 0:
			color = "#FF9500" // Naranja para la primera (generalmente BTC)
		case 1:
			color = "#7D7AFF" // Púrpura para la segunda (generalmente ETH)
		default:
			color = "#30D158" // Verde para las demás
		}

		crypto.Color = color
		distribution = append(distribution, crypto)
	}

	if othersValue > 0 {
		distribution = append(distribution, models.CryptoWeight{
			Ticker:       "OTROS",
			Name:         "OTROS",
			Value:        othersValue,
			Weight:       othersWeight,
			IsOthers:     true,
			Color:        "#FF3B30", // Rojo para "OTROS"
			OthersDetail: othersDetails,
		})
	}

	pieChartData := models.PieChartData{Currency: "USD"}
	for _, cw := range distribution {
		pieChartData.Labels = append(pieChartData.Labels, cw.Ticker)
		pieChartData.Values = append(pieChartData.Values, cw.Weight)
		pieChartData.Colors = append(pieChartData.Colors, cw.Color)
	}

	return models.Holdings{
		TotalCurrentValue: totals.TotalValue,
		TotalInvested:     totalInvested,
		TotalProfit:       totals.TotalProfitLoss,
		ProfitPercentage:  profitPercentage,
		Distribution:      distribution,
		ChartData:         pieChartData,
	}, nil
}
