package middleware

import (
	"net/http"

	"github.com/CryptoFolio/CryptoFolio_Api.git/internal/services"
	"github.com/gin-gonic/gin"
)

var priceUpdaterInstance *services.PriceUpdater

// SetPriceUpdater establece la instancia del actualizador de precios
func SetPriceUpdater(updater *services.PriceUpdater) {
	priceUpdaterInstance = updater
}

// ForcePriceUpdate fuerza una actualización de precios de todas las
// sesiones vivas. Solo para administración.
func ForcePriceUpdate(c *gin.Context) {
	if priceUpdaterInstance == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Actualizador de precios no disponible"})
		return
	}

	priceUpdaterInstance.UpdateAll()
	c.JSON(http.StatusOK, gin.H{"message": "Precios actualizados"})
}
