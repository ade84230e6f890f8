package driving

import "github.com/custodia-labs/mplemon/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings, with defaults filled in.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// Set parses value for a dotted setting key and persists it.
	// Unknown keys fail with domain.ErrUnsupportedType.
	Set(key, value string) error

	// Unset removes a stored value so the default applies again.
	Unset(key string) error

	// Keys returns the supported setting keys in display order.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// Path returns where settings are stored.
	Path() string
}
