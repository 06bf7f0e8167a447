package store

import (
	"sync"

	"github.com/CryptoFolio/CryptoFolio_Api.git/internal/models"
)

// Settings mantiene el único objeto de preferencias de una sesión de
// usuario. No valida valores más allá de la forma del tipo: los formularios
// de la capa de presentación son responsables de entregar valores sensatos.
type Settings struct {
	mu      sync.RWMutex
	current models.Settings
}

// NewSettings crea el store inicializado con los valores por defecto.
func NewSettings() *Settings {
	return &Settings{current: models.DefaultSettings()}
}

// NewSettingsFrom crea el store a partir de preferencias ya persistidas.
func NewSettingsFrom(s models.Settings) *Settings {
	return &Settings{current: s}
}

// Get devuelve una copia del objeto actual.
func (s *Settings) Get() models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update fusiona el patch de forma superficial, un nivel de profundidad por
// grupo: cada grupo presente reemplaza al grupo completo. Para actualizar un
// solo campo dentro de un grupo el llamador debe enviar el grupo entero con
// el resto de los campos ya poblados. Devuelve el objeto resultante.
func (s *Settings) Update(patch models.SettingsPatch) models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	if patch.Currency != nil {
		s.current.Currency = *patch.Currency
	}
	if patch.Language != nil {
		s.current.Language = *patch.Language
	}
	if patch.RTL != nil {
		s.current.RTL = *patch.RTL
	}
	if patch.Notifications != nil {
		s.current.Notifications = *patch.Notifications
	}
	if patch.Display != nil {
		s.current.Display = *patch.Display
	}
	if patch.Security != nil {
		s.current.Security = *patch.Security
	}
	if patch.Privacy != nil {
		s.current.Privacy = *patch.Privacy
	}
	if patch.Accessibility != nil {
		s.current.Accessibility = *patch.Accessibility
	}
	if patch.Mobile != nil {
		s.current.Mobile = *patch.Mobile
	}
	return s.current
}

// Reset reemplaza el objeto completo con los valores por defecto de forma
// atómica. Es idempotente: aplicarlo dos veces deja el mismo resultado.
func (s *Settings) Reset() models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = models.DefaultSettings()
	return s.current
}
