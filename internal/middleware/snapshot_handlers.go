package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// GetInvestmentHistory obtiene el historial diario del valor del portafolio
// para los gráficos de línea. El periodo se indica con ?period=day|week|month|year.
func GetInvestmentHistory(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	period := c.DefaultQuery("period", "all")

	// Determinar la fecha de inicio según el periodo
	var startDate time.Time
	now := time.Now()

	switch period {
	case "day":
		startDate = now.AddDate(0, 0, -1)
	case "week":
		startDate = now.AddDate(0, 0, -7)
	case "month":
		startDate = now.AddDate(0, -1, 0)
	case "year":
		startDate = now.AddDate(-1, 0, 0)
	default:
		// Fecha cero: historial completo
	}

	history, err := snapshotRepo.GetInvestmentHistory(session.UserID, startDate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, history)
}
