package store

import (
	"testing"

	"github.com/CryptoFolio/CryptoFolio_Api.git/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSettingsStartsWithDefaults(t *testing.T) {
	s := NewSettings()
	got := s.Get()

	assert.Equal(t, "USD", got.Currency)
	assert.Equal(t, "en", got.Language)
	assert.False(t, got.RTL)
	assert.True(t, got.Notifications.Email)
	assert.True(t, got.Notifications.PriceAlerts)
	assert.False(t, got.Notifications.Push)
	assert.Equal(t, "dashboard", got.Display.DefaultView)
	assert.Equal(t, 30, got.Security.SessionTimeoutMinutes)
	assert.Equal(t, models.DefaultSettings(), got)
}

func TestUpdateMergesShallow(t *testing.T) {
	s := NewSettings()

	currency := "EUR"
	got := s.Update(models.SettingsPatch{Currency: &currency})

	assert.Equal(t, "EUR", got.Currency)
	// El resto no cambia.
	assert.Equal(t, "en", got.Language)
	assert.True(t, got.Notifications.Email)
}

func TestUpdateReplacesGroupWholesale(t *testing.T) {
	s := NewSettings()

	// Un grupo presente reemplaza al grupo completo: enviar solo push=true
	// pisa también email, que por defecto era true.
	got := s.Update(models.SettingsPatch{
		Notifications: &models.NotificationSettings{Push: true},
	})

	assert.True(t, got.Notifications.Push)
	assert.False(t, got.Notifications.Email, "la fusión es superficial, no por campo interno")
	assert.False(t, got.Notifications.PriceAlerts)

	// Los grupos ausentes del patch quedan intactos.
	assert.Equal(t, "dashboard", got.Display.DefaultView)
}

func TestUpdateRoundTrip(t *testing.T) {
	s := NewSettings()

	language := "es"
	rtl := true
	s.Update(models.SettingsPatch{Language: &language, RTL: &rtl})

	got := s.Get()
	assert.Equal(t, "es", got.Language)
	assert.True(t, got.RTL)
}

func TestResetIsAtomicAndIdempotent(t *testing.T) {
	s := NewSettings()

	currency := "ARS"
	s.Update(models.SettingsPatch{
		Currency: &currency,
		Security: &models.SecuritySettings{TwoFactor: true, SessionTimeoutMinutes: 5},
	})
	require.NotEqual(t, models.DefaultSettings(), s.Get())

	first := s.Reset()
	assert.Equal(t, models.DefaultSettings(), first)

	second := s.Reset()
	assert.Equal(t, first, second)
}

func TestGetReturnsCopy(t *testing.T) {
	s := NewSettings()

	got := s.Get()
	got.Currency = "BTC"

	assert.Equal(t, "USD", s.Get().Currency)
}
