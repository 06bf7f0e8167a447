package store

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/CryptoFolio/CryptoFolio_Api.git/internal/models"
)

// Errores comunes de los stores. Toda mutación sobre un id inexistente
// devuelve ErrNotFound de forma explícita y consistente; nunca corrompe
// entradas no relacionadas.
var (
	ErrNotFound           = errors.New("registro no encontrado")
	ErrInvariantViolation = errors.New("la operación viola un invariante del activo")
)

// Portfolio es la colección en memoria de activos y transacciones de la
// sesión de un usuario. Todas las escrituras pasan por las operaciones del
// store y los accesores devuelven copias, de modo que ningún consumidor
// puede mutar las colecciones internas por fuera.
type Portfolio struct {
	mu              sync.RWMutex
	assets          []models.Asset
	transactions    []models.CryptoTransaction
	selectedAssetID string
	isLoading       bool
}

func NewPortfolio() *Portfolio {
	return &Portfolio{}
}

// SetAssets reemplaza la colección completa de activos. Se usa al cargar el
// portafolio desde el backend; el llamador es responsable de entregar
// registros válidos.
func (p *Portfolio) SetAssets(assets []models.Asset) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.assets = make([]models.Asset, len(assets))
	copy(p.assets, assets)
}

// AddAsset agrega un activo nuevo. Si ya existe un activo con el mismo
// ticker, se fusionan en una sola fila: cantidad sumada y precio de compra
// promedio ponderado por cantidad. Así se mantiene una fila por moneda en
// lugar de crear duplicados.
func (p *Portfolio) AddAsset(a models.Asset) error {
	if a.Amount <= 0 || a.PurchasePrice <= 0 || a.CurrentPrice <= 0 {
		return fmt.Errorf("%w: amount, purchase_price y current_price deben ser mayores a cero", ErrInvariantViolation)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if a.LastUpdated.IsZero() {
		a.LastUpdated = time.Now()
	}

	for i := range p.assets {
		if p.assets[i].Ticker != a.Ticker {
			continue
		}
		existing := &p.assets[i]
		totalAmount := existing.Amount + a.Amount
		existing.PurchasePrice = (existing.Amount*existing.PurchasePrice + a.Amount*a.PurchasePrice) / totalAmount
		existing.Amount = totalAmount
		existing.CurrentPrice = a.CurrentPrice
		existing.LastUpdated = a.LastUpdated
		if a.ImageURL != "" {
			existing.ImageURL = a.ImageURL
		}
		return nil
	}

	p.assets = append(p.assets, a)
	return nil
}

// UpdateAsset fusiona los campos presentes del patch en el activo con el id
// dado. Un patch que dejaría el activo con cantidad o precio no positivos se
// rechaza con ErrInvariantViolation: la eliminación es siempre una operación
// explícita (RemoveAsset), nunca un efecto colateral del update.
func (p *Portfolio) UpdateAsset(id string, patch models.AssetPatch) error {
	if patch.Amount != nil && *patch.Amount <= 0 {
		return fmt.Errorf("%w: amount debe ser mayor a cero", ErrInvariantViolation)
	}
	if patch.PurchasePrice != nil && *patch.PurchasePrice <= 0 {
		return fmt.Errorf("%w: purchase_price debe ser mayor a cero", ErrInvariantViolation)
	}
	if patch.CurrentPrice != nil && *patch.CurrentPrice <= 0 {
		return fmt.Errorf("%w: current_price debe ser mayor a cero", ErrInvariantViolation)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for i := range p.assets {
		if p.assets[i].ID != id {
			continue
		}
		a := &p.assets[i]
		if patch.CryptoName != nil {
			a.CryptoName = *patch.CryptoName
		}
		if patch.Amount != nil {
			a.Amount = *patch.Amount
		}
		if patch.PurchasePrice != nil {
			a.PurchasePrice = *patch.PurchasePrice
		}
		if patch.CurrentPrice != nil {
			a.CurrentPrice = *patch.CurrentPrice
		}
		if patch.ImageURL != nil {
			a.ImageURL = *patch.ImageURL
		}
		a.LastUpdated = time.Now()
		return nil
	}
	return fmt.Errorf("%w: activo %s", ErrNotFound, id)
}

// RemoveAsset elimina el activo con el id dado.
func (p *Portfolio) RemoveAsset(id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := range p.assets {
		if p.assets[i].ID == id {
			p.assets = append(p.assets[:i], p.assets[i+1:]...)
			if p.selectedAssetID == id {
				p.selectedAssetID = ""
			}
			return nil
		}
	}
	return fmt.Errorf("%w: activo %s", ErrNotFound, id)
}

// AddTransaction agrega la transacción al espejo local. No modifica la
// colección de activos: registrar la transacción y actualizar el activo son
// operaciones independientes, y el llamador debe invocar ambas (el activo
// primero) para obtener una vista consistente.
func (p *Portfolio) AddTransaction(tx models.CryptoTransaction) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.transactions = append(p.transactions, tx)
}

// SetTransactions reemplaza el espejo local de transacciones con la
// respuesta del servidor. El backend es la fuente autoritativa de la lista.
func (p *Portfolio) SetTransactions(txs []models.CryptoTransaction) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.transactions = make([]models.CryptoTransaction, len(txs))
	copy(p.transactions, txs)
}

// SetSelectedAsset marca el activo seleccionado. Una cadena vacía significa
// ninguno.
func (p *Portfolio) SetSelectedAsset(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.selectedAssetID = id
}

func (p *Portfolio) SelectedAsset() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.selectedAssetID
}

func (p *Portfolio) SetLoading(loading bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.isLoading = loading
}

func (p *Portfolio) IsLoading() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.isLoading
}

// Assets devuelve una copia de la colección de activos.
func (p *Portfolio) Assets() []models.Asset {
	p.mu.RLock()
	defer p.mu.RUnlock()
	assets := make([]models.Asset, len(p.assets))
	copy(assets, p.assets)
	return assets
}

// Asset busca un activo por id.
func (p *Portfolio) Asset(id string) (models.Asset, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, a := range p.assets {
		if a.ID == id {
			return a, true
		}
	}
	return models.Asset{}, false
}

// Transactions devuelve una copia del espejo local de transacciones.
func (p *Portfolio) Transactions() []models.CryptoTransaction {
	p.mu.RLock()
	defer p.mu.RUnlock()
	txs := make([]models.CryptoTransaction, len(p.transactions))
	copy(txs, p.transactions)
	return txs
}

// Clear descarta activos y transacciones. Se usa cuando la identidad del
// usuario deja de estar disponible; las preferencias persistidas no se tocan.
func (p *Portfolio) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.assets = nil
	p.transactions = nil
	p.selectedAssetID = ""
	p.isLoading = false
}
