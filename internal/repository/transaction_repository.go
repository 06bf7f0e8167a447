package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/CryptoFolio/CryptoFolio_Api.git/internal/models"
	"github.com/CryptoFolio/CryptoFolio_Api.git/internal/services"
)

// Errores comunes del repositorio
var (
	ErrTransactionNotFound = errors.New("transacción no encontrada")
	ErrInsufficientBalance = errors.New("saldo insuficiente para realizar la venta")
)

// TransactionRepository es el colaborador backend de transacciones: la lista
// local del store es un espejo de lectura de lo que vive acá. Las
// transacciones son inmutables una vez creadas; solo se permite eliminarlas.
type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// CreateTransaction inserta una nueva transacción de compra o venta.
func (r *TransactionRepository) CreateTransaction(tx *models.CryptoTransaction) error {
	query := `
		INSERT INTO crypto_transactions (id, user_id, crypto_name, ticker, amount, purchase_price, total, date, note, type, usdt_received, image_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.Exec(query,
		tx.ID,
		tx.UserID,
		tx.CryptoName,
		tx.Ticker,
		tx.Amount,
		tx.PurchasePrice,
		tx.Total,
		tx.Date,
		tx.Note,
		tx.Type,
		tx.USDTReceived,
		tx.ImageURL,
	)
	return err
}

// GetTransaction obtiene una transacción por su ID.
func (r *TransactionRepository) GetTransaction(transactionID string) (*models.CryptoTransaction, error) {
	query := `
		SELECT id, user_id, crypto_name, ticker, amount, purchase_price, total, date, note, type, usdt_received, image_url, created_at
		FROM crypto_transactions
		WHERE id = ?`

	var tx models.CryptoTransaction
	err := r.db.QueryRow(query, transactionID).Scan(
		&tx.ID,
		&tx.UserID,
		&tx.CryptoName,
		&tx.Ticker,
		&tx.Amount,
		&tx.PurchasePrice,
		&tx.Total,
		&tx.Date,
		&tx.Note,
		&tx.Type,
		&tx.USDTReceived,
		&tx.ImageURL,
		&tx.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// GetUserTransactions obtiene todas las transacciones del usuario ordenadas
// por fecha descendente.
func (r *TransactionRepository) GetUserTransactions(userID string) ([]models.CryptoTransaction, error) {
	query := `
		SELECT id, user_id, crypto_name, ticker, amount, purchase_price, total, date, note, type, usdt_received, image_url, created_at
		FROM crypto_transactions
		WHERE user_id = ?
		ORDER BY date DESC`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []models.CryptoTransaction
	for rows.Next() {
		var tx models.CryptoTransaction
		err := rows.Scan(
			&tx.ID,
			&tx.UserID,
			&tx.CryptoName,
			&tx.Ticker,
			&tx.Amount,
			&tx.PurchasePrice,
			&tx.Total,
			&tx.Date,
			&tx.Note,
			&tx.Type,
			&tx.USDTReceived,
			&tx.ImageURL,
			&tx.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}

// DeleteTransaction elimina una transacción del usuario.
func (r *TransactionRepository) DeleteTransaction(userID, transactionID string) error {
	result, err := r.db.Exec(
		`DELETE FROM crypto_transactions WHERE user_id = ? AND id = ?`,
		userID, transactionID,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

// DeleteTransactionsByTicker elimina todas las transacciones de una
// criptomoneda específica para un usuario.
func (r *TransactionRepository) DeleteTransactionsByTicker(userID, ticker string) error {
	_, err := r.db.Exec(
		`DELETE FROM crypto_transactions WHERE user_id = ? AND ticker = ?`,
		userID, ticker,
	)
	return err
}

// CheckBalanceForSale verifica que el usuario tenga suficiente cantidad de
// la criptomoneda antes de registrar una venta.
func (r *TransactionRepository) CheckBalanceForSale(userID, ticker string, amountToSell float64) error {
	query := `
		SELECT type, amount
		FROM crypto_transactions
		WHERE user_id = ? AND ticker = ?`

	rows, err := r.db.Query(query, userID, ticker)
	if err != nil {
		return err
	}
	defer rows.Close()

	var balance float64
	for rows.Next() {
		var txType string
		var amount float64
		if err := rows.Scan(&txType, &amount); err != nil {
			return err
		}

		if txType == models.TransactionTypeSell {
			balance -= amount
		} else {
			balance += amount
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	if balance < amountToSell {
		return ErrInsufficientBalance
	}
	return nil
}

// BuildAssets reconstruye los activos actuales del usuario a partir del
// historial de transacciones: las compras suman cantidad con precio promedio
// ponderado, las ventas restan cantidad sin alterar el costo base. Las filas
// cuya cantidad llega a cero o menos se descartan, no se conservan. Los
// precios actuales se estampan desde el servicio de mercado en una sola
// llamada.
func (r *TransactionRepository) BuildAssets(userID string) ([]models.Asset, error) {
	query := `
		SELECT ticker, crypto_name, amount, purchase_price, type, image_url
		FROM crypto_transactions
		WHERE user_id = ?
		ORDER BY date ASC`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type position struct {
		cryptoName string
		amount     float64
		avgPrice   float64
		imageURL   string
	}
	positions := make(map[string]*position)
	var order []string

	for rows.Next() {
		var ticker, cryptoName, txType, imageURL string
		var amount, price float64
		if err := rows.Scan(&ticker, &cryptoName, &amount, &price, &txType, &imageURL); err != nil {
			return nil, err
		}

		pos, ok := positions[ticker]
		if !ok {
			pos = &position{cryptoName: cryptoName}
			positions[ticker] = pos
			order = append(order, ticker)
		}
		if imageURL != "" {
			pos.imageURL = imageURL
		}

		if txType == models.TransactionTypeSell {
			// La venta reduce la cantidad; el costo base promedio no cambia
			pos.amount -= amount
		} else {
			total := pos.amount + amount
			if total > 0 {
				pos.avgPrice = (pos.amount*pos.avgPrice + amount*price) / total
			}
			pos.amount = total
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Descartar posiciones liquidadas antes de pedir precios
	var tickers []string
	for _, ticker := range order {
		if positions[ticker].amount > 0 {
			tickers = append(tickers, ticker)
		}
	}
	if len(tickers) == 0 {
		return []models.Asset{}, nil
	}

	prices, err := services.GetMultipleCryptoPrices(tickers)
	if err != nil {
		return nil, fmt.Errorf("error al obtener precios actuales: %v", err)
	}

	now := time.Now()
	var assets []models.Asset
	for _, ticker := range tickers {
		pos := positions[ticker]
		price, ok := prices[ticker]
		if !ok || price <= 0 {
			log.Printf("Sin precio actual para %s, se omite del portafolio", ticker)
			continue
		}
		assets = append(assets, models.Asset{
			ID:            ticker, // una fila por moneda: el ticker es el id estable
			Ticker:        ticker,
			CryptoName:    pos.cryptoName,
			Amount:        pos.amount,
			PurchasePrice: pos.avgPrice,
			CurrentPrice:  price,
			LastUpdated:   now,
			ImageURL:      pos.imageURL,
		})
	}
	return assets, nil
}

// GetTransactionDetails obtiene una transacción con sus valores derivados al
// precio actual.
func (r *TransactionRepository) GetTransactionDetails(userID, transactionID string) (*models.TransactionDetails, error) {
	tx, err := r.GetTransaction(transactionID)
	if err != nil {
		return nil, err
	}
	if tx.UserID != userID {
		return nil, ErrTransactionNotFound
	}

	cryptoData, err := services.GetCryptoPrice(tx.Ticker)
	if err != nil {
		return nil, err
	}

	details := &models.TransactionDetails{Transaction: *tx}
	if cryptoData.Raw[tx.Ticker]["USD"].PRICE > 0 {
		details.CurrentPrice = cryptoData.Raw[tx.Ticker]["USD"].PRICE
		details.CurrentValue = tx.Amount * details.CurrentPrice
		details.GainLoss = details.CurrentValue - tx.Total
		if tx.Total > 0 {
			details.GainLossPercent = (details.GainLoss / tx.Total) * 100
		}
	}
	return details, nil
}

// GetRecentTransactions obtiene las transacciones más recientes con sus
// valores derivados al precio actual.
func (r *TransactionRepository) GetRecentTransactions(userID string, limit int) ([]models.TransactionDetails, error) {
	query := `
		SELECT id, user_id, crypto_name, ticker, amount, purchase_price, total, date, note, type, usdt_received, image_url, created_at
		FROM crypto_transactions
		WHERE user_id = ?
		ORDER BY date DESC
		LIMIT ?`

	rows, err := r.db.Query(query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []models.TransactionDetails
	for rows.Next() {
		var tx models.CryptoTransaction
		err := rows.Scan(
			&tx.ID,
			&tx.UserID,
			&tx.CryptoName,
			&tx.Ticker,
			&tx.Amount,
			&tx.PurchasePrice,
			&tx.Total,
			&tx.Date,
			&tx.Note,
			&tx.Type,
			&tx.USDTReceived,
			&tx.ImageURL,
			&tx.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		cryptoData, err := services.GetCryptoPrice(tx.Ticker)
		if err != nil {
			log.Printf("Error obteniendo precio para %s: %v", tx.Ticker, err)
			continue
		}

		detail := models.TransactionDetails{Transaction: tx}
		if cryptoData.Raw[tx.Ticker]["USD"].PRICE > 0 {
			detail.CurrentPrice = cryptoData.Raw[tx.Ticker]["USD"].PRICE
			detail.CurrentValue = tx.Amount * detail.CurrentPrice
			detail.GainLoss = detail.CurrentValue - tx.Total
			if tx.Total > 0 {
				detail.GainLossPercent = (detail.GainLoss / tx.Total) * 100
			}
			details = append(details, detail)
		}
	}
	return details, rows.Err()
}

// GetPerformance calcula el top gainer y top loser del portafolio según el
// cambio porcentual de 24 horas.
func (r *TransactionRepository) GetPerformance(userID string) (*models.Performance, error) {
	assets, err := r.BuildAssets(userID)
	if err != nil {
		return nil, err
	}

	if len(assets) == 0 {
		return &models.Performance{}, nil
	}

	performance := &models.Performance{
		TopGainer: models.PerformanceDetail{ChangePct24h: -100}, // Inicializar con valor mínimo
		TopLoser:  models.PerformanceDetail{ChangePct24h: 100},  // Inicializar con valor máximo
	}

	for _, asset := range assets {
		cryptoData, err := services.GetCryptoPrice(asset.Ticker)
		if err != nil {
			log.Printf("Error obteniendo precio para %s: %v", asset.Ticker, err)
			continue
		}

		raw, exists := cryptoData.Raw[asset.Ticker]["USD"]
		if !exists || raw.PRICE <= 0 {
			continue
		}

		detail := models.PerformanceDetail{
			Ticker:       asset.Ticker,
			ChangePct24h: raw.CHANGEPCT24HOUR,
			PriceChange:  raw.CHANGE24HOUR,
			ImageURL:     asset.ImageURL,
		}

		if detail.ChangePct24h > performance.TopGainer.ChangePct24h {
			performance.TopGainer = detail
		}
		if detail.ChangePct24h < performance.TopLoser.ChangePct24h {
			performance.TopLoser = detail
		}
	}

	// Con un solo activo, gainer y loser son el mismo
	if performance.TopGainer.Ticker == "" && performance.TopLoser.Ticker != "" {
		performance.TopGainer = performance.TopLoser
	}
	if performance.TopLoser.Ticker == "" && performance.TopGainer.Ticker != "" {
		performance.TopLoser = performance.TopGainer
	}

	return performance, nil
}
