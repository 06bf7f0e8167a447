package models

// CryptoDashboard es la fila del dashboard para una criptomoneda del usuario.
type CryptoDashboard struct {
	Ticker        string  `json:"ticker"`
	CryptoName    string  `json:"crypto_name"`
	ImageURL      string  `json:"image_url"`
	TotalInvested float64 `json:"total_invested"`
	Holdings      float64 `json:"holdings"`
	AvgPrice      float64 `json:"avg_price"`
	CurrentPrice  float64 `json:"current_price"`
	CurrentProfit float64 `json:"current_profit"`
	ProfitPercent float64 `json:"profit_percent"`
}
