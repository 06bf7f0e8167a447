package middleware

import (
	"net/http"
	"time"

	"github.com/CryptoFolio/CryptoFolio_Api.git/internal/metrics"
	"github.com/CryptoFolio/CryptoFolio_Api.git/internal/models"
	"github.com/gin-gonic/gin"
)

// GetDashboard obtiene el dashboard del usuario con una fila por
// criptomoneda y sus valores derivados.
func GetDashboard(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	assets, err := txRepo.BuildAssets(session.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	dashboard := make([]models.CryptoDashboard, 0, len(assets))
	for _, a := range assets {
		profit, err := metrics.ProfitLoss(a)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		profitPercent, err := metrics.ReturnPercentage(a)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		dashboard = append(dashboard, models.CryptoDashboard{
			Ticker:        a.Ticker,
			CryptoName:    a.CryptoName,
			ImageURL:      a.ImageURL,
			TotalInvested: a.Amount * a.PurchasePrice,
			Holdings:      a.Amount,
			AvgPrice:      a.PurchasePrice,
			CurrentPrice:  a.CurrentPrice,
			CurrentProfit: profit,
			ProfitPercent: profitPercent,
		})
	}

	c.JSON(http.StatusOK, dashboard)
}

// GetPerformance obtiene el top gainer y top loser del portafolio del usuario.
func GetPerformance(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	performance, err := txRepo.GetPerformance(session.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, performance)
}

// GetHoldings obtiene el resumen de tenencias con la distribución para el
// gráfico de torta.
func GetHoldings(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	holdings, err := holdingsRepo.GetHoldings(session.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, holdings)
}

// GetCurrentBalance obtiene el balance actualizado del usuario.
func GetCurrentBalance(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	holdings, err := holdingsRepo.GetHoldings(session.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"balance":      holdings,
		"last_updated": time.Now().Format("2006-01-02 15:04:05"),
	})
}
