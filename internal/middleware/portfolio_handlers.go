package middleware

import (
	"errors"
	"net/http"

	"github.com/CryptoFolio/CryptoFolio_Api.git/internal/metrics"
	"github.com/CryptoFolio/CryptoFolio_Api.git/internal/models"
	"github.com/CryptoFolio/CryptoFolio_Api.git/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetPortfolio carga los activos del usuario desde el backend de
// transacciones al store de la sesión y devuelve la vista completa:
// activos, totales derivados y distribución porcentual.
func GetPortfolio(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	session.Portfolio.SetLoading(true)
	defer session.Portfolio.SetLoading(false)

	assets, err := txRepo.BuildAssets(session.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	session.Portfolio.SetAssets(assets)

	totals, err := metrics.PortfolioTotals(assets)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	allocation, err := metrics.Allocation(assets)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"assets":         assets,
		"totals":         totals,
		"allocation":     allocation,
		"selected_asset": session.Portfolio.SelectedAsset(),
	})
}

// AddAsset agrega un activo al store de la sesión. Si el ticker ya existe,
// el store fusiona cantidad y costo base promedio ponderado.
func AddAsset(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	var asset models.Asset
	if err := c.ShouldBindJSON(&asset); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if asset.ID == "" {
		asset.ID = uuid.NewString()
	}

	if err := session.Portfolio.AddAsset(asset); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Activo agregado exitosamente",
		"assets":  session.Portfolio.Assets(),
	})
}

// UpdateAsset aplica una actualización parcial sobre un activo.
func UpdateAsset(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	var patch models.AssetPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := session.Portfolio.UpdateAsset(c.Param("id"), patch); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Activo no encontrado"})
		case errors.Is(err, store.ErrInvariantViolation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Activo actualizado exitosamente"})
}

// RemoveAsset elimina un activo del store de la sesión.
func RemoveAsset(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	if err := session.Portfolio.RemoveAsset(c.Param("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Activo no encontrado"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Activo eliminado exitosamente"})
}

// SetSelectedAsset marca el activo seleccionado de la sesión. Un cuerpo con
// asset_id vacío deselecciona.
func SetSelectedAsset(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	var body struct {
		AssetID string `json:"asset_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session.Portfolio.SetSelectedAsset(body.AssetID)
	c.JSON(http.StatusOK, gin.H{"selected_asset": session.Portfolio.SelectedAsset()})
}
