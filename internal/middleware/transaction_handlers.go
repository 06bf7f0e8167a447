package middleware

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/CryptoFolio/CryptoFolio_Api.git/internal/models"
	"github.com/CryptoFolio/CryptoFolio_Api.git/internal/repository"
	"github.com/CryptoFolio/CryptoFolio_Api.git/internal/services"
	"github.com/CryptoFolio/CryptoFolio_Api.git/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	txRepo       *repository.TransactionRepository
	holdingsRepo *repository.HoldingsRepository
	snapshotRepo *repository.SnapshotRepository
)

// InitPortfolio inicializa los repositorios del portafolio con la conexión
// a la base de datos.
func InitPortfolio(db *sql.DB) {
	txRepo = repository.NewTransactionRepository(db)
	holdingsRepo = repository.NewHoldingsRepository(db)
	snapshotRepo = repository.NewSnapshotRepository(db)
}

// sessionFromContext obtiene la sesión del usuario autenticado.
func sessionFromContext(c *gin.Context) (*store.Session, bool) {
	userID := c.GetString("userId")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Usuario no autenticado"})
		return nil, false
	}

	session, err := appContainer.Session(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener la sesión"})
		return nil, false
	}
	return session, true
}

// CreateTransaction registra una compra o venta. Registrar la transacción y
// actualizar el activo del store son dos operaciones independientes: acá se
// invocan ambas, el activo primero, según el contrato documentado.
func CreateTransaction(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	var tx models.CryptoTransaction
	if err := c.ShouldBindJSON(&tx); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tx.UserID = session.UserID
	tx.ID = uuid.NewString()
	tx.Total = tx.Amount * tx.PurchasePrice
	if tx.Type == "" {
		tx.Type = models.TransactionTypeBuy
	}
	if tx.Type != models.TransactionTypeBuy && tx.Type != models.TransactionTypeSell {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tipo de transacción inválido"})
		return
	}
	if tx.Date.IsZero() {
		tx.Date = time.Now()
	}

	// Validar que el ticker exista consultando su precio actual
	cryptoData, err := services.GetCryptoPrice(tx.Ticker)
	if err != nil || cryptoData.Raw[tx.Ticker]["USD"].PRICE <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Criptomoneda no encontrada"})
		return
	}
	currentPrice := cryptoData.Raw[tx.Ticker]["USD"].PRICE

	if tx.ImageURL == "" {
		if imageURL, err := services.GetCryptoImageURL(tx.Ticker); err == nil {
			tx.ImageURL = imageURL
		}
	}

	// Para una venta, verificar primero el saldo disponible
	if tx.Type == models.TransactionTypeSell {
		if err := txRepo.CheckBalanceForSale(session.UserID, tx.Ticker, tx.Amount); err != nil {
			if errors.Is(err, repository.ErrInsufficientBalance) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}
		tx.USDTReceived = tx.Amount * tx.PurchasePrice
	}

	if err := txRepo.CreateTransaction(&tx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al crear la transacción"})
		return
	}

	// 1. Actualizar el activo en el store de la sesión
	if err := applyTransactionToAssets(session, &tx, currentPrice); err != nil {
		log.Printf("Error actualizando el activo para %s: %v", tx.Ticker, err)
	}

	// 2. Registrar la transacción en el espejo local
	session.Portfolio.AddTransaction(tx)

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Transacción creada exitosamente",
		"transaction": tx,
	})
}

// applyTransactionToAssets refleja la transacción sobre la colección de
// activos: una compra agrega (o fusiona) el activo, una venta reduce la
// cantidad y elimina la fila cuando llega a cero.
func applyTransactionToAssets(session *store.Session, tx *models.CryptoTransaction, currentPrice float64) error {
	if tx.Type == models.TransactionTypeBuy {
		return session.Portfolio.AddAsset(models.Asset{
			ID:            tx.Ticker,
			Ticker:        tx.Ticker,
			CryptoName:    tx.CryptoName,
			Amount:        tx.Amount,
			PurchasePrice: tx.PurchasePrice,
			CurrentPrice:  currentPrice,
			ImageURL:      tx.ImageURL,
		})
	}

	// Venta: buscar el activo por ticker dentro de la sesión
	for _, a := range session.Portfolio.Assets() {
		if a.Ticker != tx.Ticker {
			continue
		}
		remaining := a.Amount - tx.Amount
		if remaining <= 0 {
			// La tenencia llegó a cero: se elimina, nunca se conserva
			// con cantidad no positiva
			return session.Portfolio.RemoveAsset(a.ID)
		}
		return session.Portfolio.UpdateAsset(a.ID, models.AssetPatch{Amount: &remaining})
	}
	return nil
}

// GetUserTransactions devuelve todas las transacciones del usuario y
// refresca el espejo local con la respuesta del backend.
func GetUserTransactions(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	transactions, err := txRepo.GetUserTransactions(session.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener las transacciones"})
		return
	}

	// El backend es autoritativo: reemplazar la lista local
	session.Portfolio.SetTransactions(transactions)

	c.JSON(http.StatusOK, gin.H{"transactions": transactions})
}

// GetTransactionDetails obtiene los detalles de una transacción específica
func GetTransactionDetails(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	transactionID := c.Param("id")
	details, err := txRepo.GetTransactionDetails(session.UserID, transactionID)
	if err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transacción no encontrada"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, details)
}

// DeleteTransaction elimina una transacción existente. Las transacciones son
// inmutables: eliminar es la única mutación permitida sobre una ya creada.
func DeleteTransaction(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	transactionID := c.Param("id")

	// Verificar que la transacción pertenezca al usuario
	transaction, err := txRepo.GetTransaction(transactionID)
	if err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transacción no encontrada"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	if transaction.UserID != session.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "No tienes permiso para eliminar esta transacción"})
		return
	}

	if err := txRepo.DeleteTransaction(session.UserID, transactionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Reconstruir activos y espejo local con el estado del backend
	refreshSessionFromBackend(session)

	c.JSON(http.StatusOK, gin.H{"message": "Transacción eliminada exitosamente"})
}

// DeleteTransactionsByTicker elimina todas las transacciones de un ticker específico
func DeleteTransactionsByTicker(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	ticker := c.Param("ticker")
	if err := txRepo.DeleteTransactionsByTicker(session.UserID, ticker); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	refreshSessionFromBackend(session)

	c.JSON(http.StatusOK, gin.H{"message": "Todas las transacciones de " + ticker + " han sido eliminadas"})
}

// GetRecentTransactions obtiene las transacciones más recientes del usuario
func GetRecentTransactions(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	limitStr := c.DefaultQuery("limit", "5")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = 5 // Valor predeterminado
	}

	transactions, err := txRepo.GetRecentTransactions(session.UserID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, transactions)
}

// refreshSessionFromBackend recarga activos y transacciones de la sesión
// desde el backend después de una mutación destructiva.
func refreshSessionFromBackend(session *store.Session) {
	assets, err := txRepo.BuildAssets(session.UserID)
	if err != nil {
		log.Printf("Error reconstruyendo activos de %s: %v", session.UserID, err)
	} else {
		session.Portfolio.SetAssets(assets)
	}

	transactions, err := txRepo.GetUserTransactions(session.UserID)
	if err != nil {
		log.Printf("Error recargando transacciones de %s: %v", session.UserID, err)
		return
	}
	session.Portfolio.SetTransactions(transactions)
}
