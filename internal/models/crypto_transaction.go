package models

import "time"

// Tipos de transacción. El valor se guarda tal cual en la base de datos.
const (
	TransactionTypeBuy  = "compra"
	TransactionTypeSell = "venta"
)

// CryptoTransaction es el registro inmutable de una compra o venta.
// Una vez creada no se modifica; solo puede eliminarse a través del
// repositorio de transacciones.
type CryptoTransaction struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	CryptoName    string    `json:"crypto_name" binding:"required"`
	Ticker        string    `json:"ticker" binding:"required"`
	Amount        float64   `json:"amount" binding:"required,gt=0"`
	PurchasePrice float64   `json:"purchase_price" binding:"required,gt=0"` // Precio por unidad al momento de la transacción
	Total         float64   `json:"total"`
	Type          string    `json:"type"`
	Date          time.Time `json:"date"`
	Note          string    `json:"note,omitempty"`
	USDTReceived  float64   `json:"usdt_received,omitempty"`
	ImageURL      string    `json:"image_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
