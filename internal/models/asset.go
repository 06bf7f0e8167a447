package models

import "time"

// Asset representa la tenencia agregada de una criptomoneda del usuario.
// Los valores derivados (valor actual, ganancia, porcentaje) no se almacenan,
// se calculan bajo demanda con el paquete metrics.
type Asset struct {
	ID            string    `json:"id"`
	Ticker        string    `json:"ticker" binding:"required"`
	CryptoName    string    `json:"crypto_name" binding:"required"`
	Amount        float64   `json:"amount" binding:"required,gt=0"`
	PurchasePrice float64   `json:"purchase_price" binding:"required,gt=0"` // Costo base promedio por unidad en USD
	CurrentPrice  float64   `json:"current_price" binding:"required,gt=0"`
	LastUpdated   time.Time `json:"last_updated"`
	ImageURL      string    `json:"image_url,omitempty"`
}

// AssetPatch contiene los campos opcionales para actualizar un activo.
// Un campo en nil deja el valor existente sin modificar.
type AssetPatch struct {
	CryptoName    *string  `json:"crypto_name,omitempty"`
	Amount        *float64 `json:"amount,omitempty"`
	PurchasePrice *float64 `json:"purchase_price,omitempty"`
	CurrentPrice  *float64 `json:"current_price,omitempty"`
	ImageURL      *string  `json:"image_url,omitempty"`
}
