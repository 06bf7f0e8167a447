package store

import (
	"fmt"
	"log"
	"sync"

	"github.com/CryptoFolio/CryptoFolio_Api.git/internal/models"
)

// PersistedState es el subconjunto del estado que sobrevive entre sesiones:
// solo las preferencias y la identidad. Los activos y transacciones del
// portafolio se excluyen a propósito y se vuelven a cargar desde el backend
// de transacciones en cada sesión.
type PersistedState struct {
	Settings models.Settings `json:"settings"`
	User     models.User     `json:"user"`
}

// Persister es el colaborador de persistencia del contenedor. El core llama
// a SavePersisted en cada mutación y no implementa reintentos: la política
// de reintento, si existe, es del colaborador.
type Persister interface {
	LoadPersisted(userID string) (PersistedState, bool, error)
	SavePersisted(userID string, state PersistedState) error
}

// Session agrupa los stores de un usuario autenticado. Las mutaciones de
// preferencias pasan por la sesión para aplicar la escritura write-through
// del subconjunto persistido.
type Session struct {
	UserID    string
	Portfolio *Portfolio
	Settings  *Settings

	mu        sync.Mutex
	user      models.User
	persister Persister
}

// Container es el contenedor de estado del proceso: un punto de creación
// explícito y sin globales ambientales, con una sesión por usuario
// autenticado. Sustituible en tests a través de la interfaz Persister.
type Container struct {
	mu        sync.Mutex
	persister Persister
	sessions  map[string]*Session
}

func NewContainer(p Persister) *Container {
	return &Container{
		persister: p,
		sessions:  make(map[string]*Session),
	}
}

// Session devuelve la sesión del usuario, creándola si no existe. En la
// primera creación hidrata el subconjunto persistido: las preferencias y la
// identidad; el portafolio arranca vacío siempre.
func (c *Container) Session(userID string) (*Session, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: sesión sin usuario", ErrNotFound)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if s, ok := c.sessions[userID]; ok {
		return s, nil
	}

	s := &Session{
		UserID:    userID,
		Portfolio: NewPortfolio(),
		Settings:  NewSettings(),
		persister: c.persister,
	}

	persisted, found, err := c.persister.LoadPersisted(userID)
	if err != nil {
		return nil, fmt.Errorf("error al hidratar el estado persistido: %w", err)
	}
	if found {
		s.Settings = NewSettingsFrom(persisted.Settings)
		s.user = persisted.User
	}

	c.sessions[userID] = s
	return s, nil
}

// HandleAuthChange procesa una transición de identidad. Cuando el usuario
// deja de estar autenticado (logout, borrado en el proveedor de identidad)
// se descarta su portafolio en memoria; el subconjunto persistido queda
// intacto para la próxima sesión.
func (c *Container) HandleAuthChange(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if s, ok := c.sessions[userID]; ok {
		s.Portfolio.Clear()
		delete(c.sessions, userID)
		log.Printf("Sesión de %s descartada por cambio de identidad", userID)
	}
}

// ActiveSessions devuelve las sesiones vivas del proceso. Lo usa el
// actualizador de precios para refrescar los portafolios en memoria.
func (c *Container) ActiveSessions() []*Session {
	c.mu.Lock()
	defer c.mu.Unlock()

	sessions := make([]*Session, 0, len(c.sessions))
	for _, s := range c.sessions {
		sessions = append(sessions, s)
	}
	return sessions
}

// persistedSubset es el selector tipado del estado que se persiste. Cambiar
// qué sobrevive a una recarga es un cambio de una línea aquí, no una lista
// ad hoc repartida por el código.
func persistedSubset(user models.User, settings models.Settings) PersistedState {
	return PersistedState{
		Settings: settings,
		User:     user,
	}
}

// User devuelve la identidad asociada a la sesión.
func (s *Session) User() models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// SetUser actualiza la identidad de la sesión y persiste el subconjunto.
func (s *Session) SetUser(u models.User) error {
	s.mu.Lock()
	s.user = u
	s.mu.Unlock()
	return s.persist()
}

// UpdateSettings aplica el patch al store de preferencias y persiste el
// subconjunto. El estado en memoria queda actualizado aunque la escritura
// falle; el error se devuelve para que el llamador decida qué hacer.
func (s *Session) UpdateSettings(patch models.SettingsPatch) (models.Settings, error) {
	updated := s.Settings.Update(patch)
	return updated, s.persist()
}

// ResetSettings restaura los valores por defecto y persiste el subconjunto.
func (s *Session) ResetSettings() (models.Settings, error) {
	reset := s.Settings.Reset()
	return reset, s.persist()
}

func (s *Session) persist() error {
	s.mu.Lock()
	user := s.user
	s.mu.Unlock()

	if err := s.persister.SavePersisted(s.UserID, persistedSubset(user, s.Settings.Get())); err != nil {
		log.Printf("Error al persistir el estado de %s: %v", s.UserID, err)
		return err
	}
	return nil
}
