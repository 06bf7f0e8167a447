package metrics

import (
	"errors"
	"fmt"
	"math"

	"github.com/CryptoFolio/CryptoFolio_Api.git/internal/models"
)

// Errores del paquete. Las funciones de cálculo siempre señalan la condición
// al llamador, nunca devuelven NaN o Inf en silencio.
var (
	ErrInvalidInput   = errors.New("entrada numérica inválida")
	ErrDivisionByZero = errors.New("división por cero")
)

// AssetValue calcula el valor actual de un activo: cantidad * precio actual.
func AssetValue(a models.Asset) (float64, error) {
	if !finiteNonNegative(a.Amount) {
		return 0, fmt.Errorf("%w: amount=%v", ErrInvalidInput, a.Amount)
	}
	if !finiteNonNegative(a.CurrentPrice) {
		return 0, fmt.Errorf("%w: current_price=%v", ErrInvalidInput, a.CurrentPrice)
	}
	return a.Amount * a.CurrentPrice, nil
}

// ProfitLoss calcula la ganancia o pérdida no realizada de un activo:
// (precio actual - precio de compra) * cantidad. Cero es un resultado
// válido (punto de equilibrio), no un error.
func ProfitLoss(a models.Asset) (float64, error) {
	if !finiteNonNegative(a.Amount) {
		return 0, fmt.Errorf("%w: amount=%v", ErrInvalidInput, a.Amount)
	}
	if !finiteNonNegative(a.PurchasePrice) {
		return 0, fmt.Errorf("%w: purchase_price=%v", ErrInvalidInput, a.PurchasePrice)
	}
	if !finiteNonNegative(a.CurrentPrice) {
		return 0, fmt.Errorf("%w: current_price=%v", ErrInvalidInput, a.CurrentPrice)
	}
	return (a.CurrentPrice - a.PurchasePrice) * a.Amount, nil
}

// ReturnPercentage calcula el porcentaje de retorno sobre el costo base:
// (precio actual - precio de compra) / precio de compra * 100.
// Con un precio de compra en cero devuelve ErrDivisionByZero; por invariante
// un activo vivo nunca debería tener costo base cero, pero la condición se
// señala en lugar de producir Inf.
func ReturnPercentage(a models.Asset) (float64, error) {
	if !finiteNonNegative(a.PurchasePrice) {
		return 0, fmt.Errorf("%w: purchase_price=%v", ErrInvalidInput, a.PurchasePrice)
	}
	if !finiteNonNegative(a.CurrentPrice) {
		return 0, fmt.Errorf("%w: current_price=%v", ErrInvalidInput, a.CurrentPrice)
	}
	if a.PurchasePrice == 0 {
		return 0, fmt.Errorf("%w: purchase_price en cero", ErrDivisionByZero)
	}
	return (a.CurrentPrice - a.PurchasePrice) / a.PurchasePrice * 100, nil
}

// PortfolioTotals suma el valor y la ganancia de todos los activos.
// Un portafolio vacío devuelve todos los totales en cero: no es ganancia
// ni pérdida, y el porcentaje se define como 0 cuando el valor total es 0.
func PortfolioTotals(assets []models.Asset) (models.PortfolioTotals, error) {
	var totals models.PortfolioTotals
	for _, a := range assets {
		value, err := AssetValue(a)
		if err != nil {
			return models.PortfolioTotals{}, err
		}
		profit, err := ProfitLoss(a)
		if err != nil {
			return models.PortfolioTotals{}, err
		}
		totals.TotalValue += value
		totals.TotalProfitLoss += profit
	}
	if totals.TotalValue > 0 {
		totals.ProfitLossPercentage = (totals.TotalProfitLoss / totals.TotalValue) * 100
	}
	return totals, nil
}

// Allocation calcula la participación porcentual de cada activo sobre el
// valor total. Cuando el valor total es 0 todas las participaciones son 0.
func Allocation(assets []models.Asset) ([]models.AssetAllocation, error) {
	values := make([]float64, len(assets))
	var totalValue float64
	for i, a := range assets {
		value, err := AssetValue(a)
		if err != nil {
			return nil, err
		}
		values[i] = value
		totalValue += value
	}

	allocations := make([]models.AssetAllocation, len(assets))
	for i, a := range assets {
		alloc := models.AssetAllocation{
			AssetID: a.ID,
			Ticker:  a.Ticker,
			Value:   values[i],
		}
		if totalValue > 0 {
			alloc.Percentage = (values[i] / totalValue) * 100
		}
		allocations[i] = alloc
	}
	return allocations, nil
}

func finiteNonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
