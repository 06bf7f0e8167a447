package store

import (
	"errors"
	"testing"

	"github.com/CryptoFolio/CryptoFolio_Api.git/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePersister guarda el estado en memoria y registra los IDs persistidos.
type fakePersister struct {
	states  map[string]PersistedState
	saves   []string
	failing bool
}

func newFakePersister() *fakePersister {
	return &fakePersister{states: make(map[string]PersistedState)}
}

func (f *fakePersister) LoadPersisted(userID string) (PersistedState, bool, error) {
	state, ok := f.states[userID]
	return state, ok, nil
}

func (f *fakePersister) SavePersisted(userID string, state PersistedState) error {
	if f.failing {
		return errors.New("disco lleno")
	}
	f.states[userID] = state
	f.saves = append(f.saves, userID)
	return nil
}

func TestSessionCreatesOncePerUser(t *testing.T) {
	c := NewContainer(newFakePersister())

	s1, err := c.Session("user_1")
	require.NoError(t, err)
	s2, err := c.Session("user_1")
	require.NoError(t, err)

	assert.Same(t, s1, s2)

	other, err := c.Session("user_2")
	require.NoError(t, err)
	assert.NotSame(t, s1, other)
}

func TestSessionRejectsEmptyUserID(t *testing.T) {
	c := NewContainer(newFakePersister())
	_, err := c.Session("")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionHydratesPersistedSubset(t *testing.T) {
	p := newFakePersister()
	settings := models.DefaultSettings()
	settings.Currency = "EUR"
	p.states["user_1"] = PersistedState{
		Settings: settings,
		User:     models.User{ID: "user_1", Email: "ana@example.com"},
	}

	c := NewContainer(p)
	s, err := c.Session("user_1")
	require.NoError(t, err)

	assert.Equal(t, "EUR", s.Settings.Get().Currency)
	assert.Equal(t, "ana@example.com", s.User().Email)
	// El portafolio nunca se hidrata: siempre arranca vacío.
	assert.Empty(t, s.Portfolio.Assets())
}

func TestUpdateSettingsPersistsSubset(t *testing.T) {
	p := newFakePersister()
	c := NewContainer(p)

	s, err := c.Session("user_1")
	require.NoError(t, err)
	require.NoError(t, s.SetUser(models.User{ID: "user_1", Email: "ana@example.com"}))
	require.NoError(t, s.Portfolio.AddAsset(models.Asset{
		ID: "btc", Ticker: "BTC", Amount: 1, PurchasePrice: 100, CurrentPrice: 200,
	}))

	currency := "ARS"
	updated, err := s.UpdateSettings(models.SettingsPatch{Currency: &currency})
	require.NoError(t, err)
	assert.Equal(t, "ARS", updated.Currency)

	// Lo persistido es exactamente el subconjunto {settings, user}: el
	// portafolio no viaja al colaborador de persistencia.
	saved := p.states["user_1"]
	assert.Equal(t, "ARS", saved.Settings.Currency)
	assert.Equal(t, "ana@example.com", saved.User.Email)
}

func TestUpdateSettingsKeepsMemoryOnPersistFailure(t *testing.T) {
	p := newFakePersister()
	p.failing = true
	c := NewContainer(p)

	s, err := c.Session("user_1")
	require.NoError(t, err)

	currency := "EUR"
	updated, err := s.UpdateSettings(models.SettingsPatch{Currency: &currency})
	assert.Error(t, err)
	// El estado en memoria queda actualizado aunque la escritura falle.
	assert.Equal(t, "EUR", updated.Currency)
	assert.Equal(t, "EUR", s.Settings.Get().Currency)
}

func TestResetSettingsPersists(t *testing.T) {
	p := newFakePersister()
	c := NewContainer(p)

	s, err := c.Session("user_1")
	require.NoError(t, err)

	currency := "EUR"
	_, err = s.UpdateSettings(models.SettingsPatch{Currency: &currency})
	require.NoError(t, err)

	reset, err := s.ResetSettings()
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSettings(), reset)
	assert.Equal(t, "USD", p.states["user_1"].Settings.Currency)
}

func TestHandleAuthChangeDiscardsSessionKeepsPersisted(t *testing.T) {
	p := newFakePersister()
	c := NewContainer(p)

	s, err := c.Session("user_1")
	require.NoError(t, err)
	require.NoError(t, s.SetUser(models.User{ID: "user_1"}))
	require.NoError(t, s.Portfolio.AddAsset(models.Asset{
		ID: "btc", Ticker: "BTC", Amount: 1, PurchasePrice: 100, CurrentPrice: 200,
	}))

	currency := "EUR"
	_, err = s.UpdateSettings(models.SettingsPatch{Currency: &currency})
	require.NoError(t, err)

	c.HandleAuthChange("user_1")

	// El portafolio en memoria se descarta y la sesión desaparece.
	assert.Empty(t, s.Portfolio.Assets())
	assert.Empty(t, c.ActiveSessions())

	// El subconjunto persistido queda intacto para la próxima sesión.
	fresh, err := c.Session("user_1")
	require.NoError(t, err)
	assert.Equal(t, "EUR", fresh.Settings.Get().Currency)
	assert.Empty(t, fresh.Portfolio.Assets())
}

func TestActiveSessions(t *testing.T) {
	c := NewContainer(newFakePersister())

	_, err := c.Session("user_1")
	require.NoError(t, err)
	_, err = c.Session("user_2")
	require.NoError(t, err)

	assert.Len(t, c.ActiveSessions(), 2)
}
