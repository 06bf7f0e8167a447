package models

// Settings agrupa las preferencias del usuario. Existe exactamente un objeto
// Settings por sesión de usuario; cada campo tiene un valor por defecto
// definido en DefaultSettings.
type Settings struct {
	Currency      string                `json:"currency"`
	Language      string                `json:"language"`
	RTL           bool                  `json:"rtl"`
	Notifications NotificationSettings  `json:"notifications"`
	Display       DisplaySettings       `json:"display"`
	Security      SecuritySettings      `json:"security"`
	Privacy       PrivacySettings       `json:"privacy"`
	Accessibility AccessibilitySettings `json:"accessibility"`
	Mobile        MobileSettings        `json:"mobile"`
}

type NotificationSettings struct {
	PriceAlerts      bool `json:"price_alerts"`
	News             bool `json:"news"`
	PortfolioUpdates bool `json:"portfolio_updates"`
	Email            bool `json:"email"`
	Push             bool `json:"push"`
}

type DisplaySettings struct {
	ShowSmallBalances bool   `json:"show_small_balances"`
	DefaultView       string `json:"default_view"`
	ChartPeriod       string `json:"chart_period"`
	ChartType         string `json:"chart_type"`
}

type SecuritySettings struct {
	TwoFactor             bool `json:"two_factor"`
	SessionTimeoutMinutes int  `json:"session_timeout_minutes"`
}

type PrivacySettings struct {
	SharePortfolio bool `json:"share_portfolio"`
	Analytics      bool `json:"analytics"`
}

type AccessibilitySettings struct {
	ReduceMotion bool `json:"reduce_motion"`
	HighContrast bool `json:"high_contrast"`
}

type MobileSettings struct {
	BiometricUnlock bool `json:"biometric_unlock"`
	DataSaver       bool `json:"data_saver"`
}

// SettingsPatch es una actualización parcial de Settings. La fusión es
// superficial: cada grupo presente reemplaza al grupo completo, nunca se
// fusionan los campos internos de un grupo.
type SettingsPatch struct {
	Currency      *string                `json:"currency,omitempty"`
	Language      *string                `json:"language,omitempty"`
	RTL           *bool                  `json:"rtl,omitempty"`
	Notifications *NotificationSettings  `json:"notifications,omitempty"`
	Display       *DisplaySettings       `json:"display,omitempty"`
	Security      *SecuritySettings      `json:"security,omitempty"`
	Privacy       *PrivacySettings       `json:"privacy,omitempty"`
	Accessibility *AccessibilitySettings `json:"accessibility,omitempty"`
	Mobile        *MobileSettings        `json:"mobile,omitempty"`
}

// DefaultSettings devuelve el objeto Settings con todos los valores por defecto.
func DefaultSettings() Settings {
	return Settings{
		Currency: "USD",
		Language: "en",
		RTL:      false,
		Notifications: NotificationSettings{
			PriceAlerts:      true,
			News:             false,
			PortfolioUpdates: true,
			Email:            true,
			Push:             false,
		},
		Display: DisplaySettings{
			ShowSmallBalances: true,
			DefaultView:       "dashboard",
			ChartPeriod:       "7d",
			ChartType:         "line",
		},
		Security: SecuritySettings{
			TwoFactor:             false,
			SessionTimeoutMinutes: 30,
		},
		Privacy: PrivacySettings{
			SharePortfolio: false,
			Analytics:      true,
		},
		Accessibility: AccessibilitySettings{
			ReduceMotion: false,
			HighContrast: false,
		},
		Mobile: MobileSettings{
			BiometricUnlock: false,
			DataSaver:       false,
		},
	}
}
