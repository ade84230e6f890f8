package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/mplemon/internal/core/domain"
	"github.com/custodia-labs/mplemon/internal/core/ports/driven"
	"github.com/custodia-labs/mplemon/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyJWTRealm      = "jwt.realm"
	keyJWTIssuer     = "jwt.issuer"
	keyJWTHeaderKey  = "jwt.header_key"
	keyJWTPackage    = "jwt.package"
	keyJWTTokenValid = "jwt.token_valid"
	keyJWTRoles      = "jwt.roles"

	keyPayaraVersion             = "payara.version"
	keyPayaraContextRoot         = "payara.context_root"
	keyPayaraPluginVersion       = "payara.plugin_version"
	keyPayaraRealmGroupName      = "payara.realm_group_name"
	keyPayaraRealmGroupTable     = "payara.realm_group_table"
	keyPayaraRealmPasswordColumn = "payara.realm_password_column"
	keyPayaraRealmUserNameColumn = "payara.realm_user_name_column"
	keyPayaraRealmUserTable      = "payara.realm_user_table"

	keyFormatIndent = "format.indent"
)

// settingKind tells Set how to parse a value.
type settingKind int

const (
	kindString settingKind = iota
	kindPositiveInt
	kindList
)

var settingKinds = map[string]settingKind{
	keyJWTRealm:                  kindString,
	keyJWTIssuer:                 kindString,
	keyJWTHeaderKey:              kindString,
	keyJWTPackage:                kindString,
	keyJWTTokenValid:             kindPositiveInt,
	keyJWTRoles:                  kindList,
	keyPayaraVersion:             kindString,
	keyPayaraContextRoot:         kindString,
	keyPayaraPluginVersion:       kindString,
	keyPayaraRealmGroupName:      kindString,
	keyPayaraRealmGroupTable:     kindString,
	keyPayaraRealmPasswordColumn: kindString,
	keyPayaraRealmUserNameColumn: kindString,
	keyPayaraRealmUserTable:      kindString,
	keyFormatIndent:              kindPositiveInt,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		JWT: domain.JWTSettings{
			Realm:      s.getString(keyJWTRealm, defaults.JWT.Realm),
			Issuer:     s.getString(keyJWTIssuer, defaults.JWT.Issuer),
			HeaderKey:  s.getString(keyJWTHeaderKey, defaults.JWT.HeaderKey),
			Package:    s.getString(keyJWTPackage, defaults.JWT.Package),
			TokenValid: s.getInt(keyJWTTokenValid, defaults.JWT.TokenValid),
			Roles:      s.getList(keyJWTRoles, defaults.JWT.Roles),
		},
		Payara: domain.PayaraSettings{
			Version:             s.getString(keyPayaraVersion, defaults.Payara.Version),
			ContextRoot:         s.getString(keyPayaraContextRoot, defaults.Payara.ContextRoot),
			PluginVersion:       s.getString(keyPayaraPluginVersion, defaults.Payara.PluginVersion),
			RealmGroupName:      s.getString(keyPayaraRealmGroupName, defaults.Payara.RealmGroupName),
			RealmGroupTable:     s.getString(keyPayaraRealmGroupTable, defaults.Payara.RealmGroupTable),
			RealmPasswordColumn: s.getString(keyPayaraRealmPasswordColumn, defaults.Payara.RealmPasswordColumn),
			RealmUserNameColumn: s.getString(keyPayaraRealmUserNameColumn, defaults.Payara.RealmUserNameColumn),
			RealmUserTable:      s.getString(keyPayaraRealmUserTable, defaults.Payara.RealmUserTable),
		},
		Format: domain.FormatSettings{
			Indent: s.getInt(keyFormatIndent, defaults.Format.Indent),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyJWTRealm, settings.JWT.Realm},
		{keyJWTIssuer, settings.JWT.Issuer},
		{keyJWTHeaderKey, settings.JWT.HeaderKey},
		{keyJWTPackage, settings.JWT.Package},
		{keyJWTTokenValid, settings.JWT.TokenValid},
		{keyJWTRoles, settings.JWT.Roles},
		{keyPayaraVersion, settings.Payara.Version},
		{keyPayaraContextRoot, settings.Payara.ContextRoot},
		{keyPayaraPluginVersion, settings.Payara.PluginVersion},
		{keyPayaraRealmGroupName, settings.Payara.RealmGroupName},
		{keyPayaraRealmGroupTable, settings.Payara.RealmGroupTable},
		{keyPayaraRealmPasswordColumn, settings.Payara.RealmPasswordColumn},
		{keyPayaraRealmUserNameColumn, settings.Payara.RealmUserNameColumn},
		{keyPayaraRealmUserTable, settings.Payara.RealmUserTable},
		{keyFormatIndent, settings.Format.Indent},
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set parses value according to key and persists it.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := settingKinds[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrUnsupportedType, key)
	}

	var parsed any
	switch kind {
	case kindPositiveInt:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: %s must be a positive integer, got %q", domain.ErrInvalidInput, key, value)
		}
		parsed = n
	case kindList:
		list := SplitList(value)
		if len(list) == 0 {
			return fmt.Errorf("%w: %s needs at least one value", domain.ErrInvalidInput, key)
		}
		parsed = list
	default:
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: %s cannot be empty, use unset to restore the default", domain.ErrInvalidInput, key)
		}
		parsed = value
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Unset removes a stored value so the default applies again.
func (s *SettingsService) Unset(key string) error {
	if _, ok := settingKinds[key]; !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrUnsupportedType, key)
	}
	if err := s.configStore.Delete(key); err != nil {
		return fmt.Errorf("unset %s: %w", key, err)
	}
	return nil
}

// Keys returns the supported setting keys in display order.
func (s *SettingsService) Keys() []string {
	return []string{
		keyJWTRealm, keyJWTIssuer, keyJWTHeaderKey, keyJWTPackage, keyJWTTokenValid, keyJWTRoles,
		keyPayaraVersion, keyPayaraContextRoot, keyPayaraPluginVersion,
		keyPayaraRealmGroupName, keyPayaraRealmGroupTable, keyPayaraRealmPasswordColumn,
		keyPayaraRealmUserNameColumn, keyPayaraRealmUserTable,
		keyFormatIndent,
	}
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Path returns where settings are stored.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

// SplitList splits a comma-separated value, trimming items and dropping
// empty ones.
func SplitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getList(key string, defaultVal []string) []string {
	val := s.configStore.GetStringSlice(key)
	if len(val) == 0 {
		return append([]string(nil), defaultVal...)
	}
	return val
}
