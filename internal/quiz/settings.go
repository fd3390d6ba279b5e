package quiz

// Entitlement describes what the current user may see.
type Entitlement string

const (
	EntitlementFree    Entitlement = "free"
	EntitlementPremium Entitlement = "premium"
)

// Settings is supplied by the embedding configuration provider. In demo
// mode, explanations are rendered but visually obscured behind an
// upgrade call-to-action rather than withheld.
type Settings struct {
	DemoMode    bool
	Entitlement Entitlement
}

// SettingsProvider supplies presentation settings to the quiz screens.
type SettingsProvider interface {
	Settings() Settings
}

// StaticSettings is a SettingsProvider with fixed values.
type StaticSettings Settings

func (s StaticSettings) Settings() Settings { return Settings(s) }
