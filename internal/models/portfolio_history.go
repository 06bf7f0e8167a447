package models

import "time"

// InvestmentSnapshot es la foto diaria del valor del portafolio de un usuario.
type InvestmentSnapshot struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	Date             time.Time `json:"date"`
	TotalValue       float64   `json:"total_value"`
	TotalInvested    float64   `json:"total_invested"`
	Profit           float64   `json:"profit"`
	ProfitPercentage float64   `json:"profit_percentage"`
	MaxValue         float64   `json:"max_value"`
	MinValue         float64   `json:"min_value"`
	CreatedAt        time.Time `json:"created_at"`
}

// InvestmentHistory es la serie de valores diarios para los gráficos de línea.
type InvestmentHistory struct {
	StartDate       time.Time    `json:"start_date"`
	History         []DailyValue `json:"history"`
	TrendPercentage float64      `json:"trend_percentage"` // Cambio desde el primer snapshot hasta el último
}

type DailyValue struct {
	Date             string  `json:"date"` // Formato 2006-01-02
	TotalValue       float64 `json:"total_value"`
	ChangePercentage float64 `json:"change_percentage"`
}
