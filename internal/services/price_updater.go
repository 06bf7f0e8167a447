package services

import (
	"log"
	"sync"
	"time"

	"github.com/CryptoFolio/CryptoFolio_Api.git/internal/metrics"
	"github.com/CryptoFolio/CryptoFolio_Api.git/internal/models"
	"github.com/CryptoFolio/CryptoFolio_Api.git/internal/store"
)

// SnapshotSaver es lo que el actualizador necesita del repositorio de
// snapshots.
type SnapshotSaver interface {
	SaveDailySnapshot(userID string, totalValue, totalInvested, profit, profitPercentage float64) error
}

// PriceUpdater refresca periódicamente los precios actuales de los activos
// de las sesiones vivas y guarda el snapshot diario del portafolio. Es el
// único actor en segundo plano del proceso.
type PriceUpdater struct {
	interval  time.Duration
	container *store.Container
	snapshots SnapshotSaver

	mutex     sync.Mutex
	isRunning bool
	stopChan  chan struct{}
}

// NewPriceUpdater crea un nuevo servicio de actualización de precios.
func NewPriceUpdater(interval time.Duration, container *store.Container, snapshots SnapshotSaver) *PriceUpdater {
	return &PriceUpdater{
		interval:  interval,
		container: container,
		snapshots: snapshots,
		stopChan:  make(chan struct{}),
	}
}

// Start inicia el ciclo de actualización en segundo plano.
func (u *PriceUpdater) Start() {
	u.mutex.Lock()
	defer u.mutex.Unlock()

	if u.isRunning {
		return
	}
	u.isRunning = true
	u.stopChan = make(chan struct{})

	go u.run()
	log.Printf("Actualizador de precios iniciado (intervalo: %v)", u.interval)
}

// Stop detiene el ciclo de actualización.
func (u *PriceUpdater) Stop() {
	u.mutex.Lock()
	defer u.mutex.Unlock()

	if !u.isRunning {
		return
	}
	u.isRunning = false
	close(u.stopChan)
	log.Println("Actualizador de precios detenido")
}

func (u *PriceUpdater) run() {
	ticker := time.NewTicker(u.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			u.UpdateAll()
		case <-u.stopChan:
			return
		}
	}
}

// UpdateAll refresca los precios de todas las sesiones vivas. También se
// invoca desde el endpoint de administración para forzar una actualización.
func (u *PriceUpdater) UpdateAll() {
	for _, session := range u.container.ActiveSessions() {
		if err := u.updateSession(session); err != nil {
			log.Printf("Error actualizando precios para %s: %v", session.UserID, err)
		}
	}
}

func (u *PriceUpdater) updateSession(session *store.Session) error {
	assets := session.Portfolio.Assets()
	if len(assets) == 0 {
		return nil
	}

	tickers := make([]string, len(assets))
	for i, a := range assets {
		tickers[i] = a.Ticker
	}

	prices, err := GetMultipleCryptoPrices(tickers)
	if err != nil {
		return err
	}

	for _, a := range assets {
		price, ok := prices[a.Ticker]
		if !ok || price <= 0 {
			continue
		}
		patch := models.AssetPatch{CurrentPrice: &price}
		if err := session.Portfolio.UpdateAsset(a.ID, patch); err != nil {
			// El activo pudo haberse eliminado entre la lectura y el update
			log.Printf("No se actualizó el precio de %s: %v", a.Ticker, err)
		}
	}

	return u.saveSnapshot(session)
}

func (u *PriceUpdater) saveSnapshot(session *store.Session) error {
	assets := session.Portfolio.Assets()
	totals, err := metrics.PortfolioTotals(assets)
	if err != nil {
		return err
	}

	var totalInvested float64
	for _, a := range assets {
		totalInvested += a.Amount * a.PurchasePrice
	}

	var profitPercentage float64
	if totalInvested > 0 {
		profitPercentage = (totals.TotalProfitLoss / totalInvested) * 100
	}

	return u.snapshots.SaveDailySnapshot(
		session.UserID,
		totals.TotalValue,
		totalInvested,
		totals.TotalProfitLoss,
		profitPercentage,
	)
}
