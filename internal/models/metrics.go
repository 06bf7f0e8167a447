package models

// PortfolioTotals son los agregados derivados de todo el portafolio.
type PortfolioTotals struct {
	TotalValue           float64 `json:"total_value"`
	TotalProfitLoss      float64 `json:"total_profit_loss"`
	ProfitLossPercentage float64 `json:"profit_loss_percentage"`
}

// AssetAllocation es la participación porcentual de un activo sobre el
// valor total del portafolio.
type AssetAllocation struct {
	AssetID    string  `json:"asset_id"`
	Ticker     string  `json:"ticker"`
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"`
}
