package middleware

import (
	"net/http"

	"github.com/CryptoFolio/CryptoFolio_Api.git/internal/models"
	"github.com/gin-gonic/gin"
)

// GetSettings devuelve las preferencias actuales de la sesión.
func GetSettings(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": session.Settings.Get()})
}

// UpdateSettings aplica un patch de fusión superficial: cada grupo presente
// reemplaza al grupo completo. El resultado se persiste write-through junto
// con la identidad; el portafolio nunca forma parte de lo persistido.
func UpdateSettings(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	var patch models.SettingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := session.UpdateSettings(patch)
	if err != nil {
		// El estado en memoria quedó aplicado; avisar que la persistencia falló
		c.JSON(http.StatusOK, gin.H{
			"settings": updated,
			"warning":  "Las preferencias no se pudieron persistir",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": updated})
}

// ResetSettings restaura todas las preferencias a sus valores por defecto de
// forma atómica.
func ResetSettings(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	reset, err := session.ResetSettings()
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"settings": reset,
			"warning":  "Las preferencias no se pudieron persistir",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": reset})
}
