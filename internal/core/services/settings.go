package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/horizon/internal/core/domain"
	"github.com/custodia-labs/horizon/internal/core/ports/driven"
	"github.com/custodia-labs/horizon/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyPageSize          = "library.page_size"
	KeyDefaultScope      = "library.default_scope"
	KeyDefaultCombinator = "library.default_combinator"
	KeySnapshotPath      = "library.snapshot_path"
	KeyDataDir           = "storage.data_dir"
	KeyHTTPAddr          = "server.http_addr"
	KeyRateLimit         = "server.rate_limit"
	KeyRateBurst         = "server.rate_burst"
)

// SettingsKeys lists every recognised key in display order.
var SettingsKeys = []string{
	KeyPageSize, KeyDefaultScope, KeyDefaultCombinator, KeySnapshotPath,
	KeyDataDir, KeyHTTPAddr, KeyRateLimit, KeyRateBurst,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings. Invalid stored values fall
// back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Library: domain.LibrarySettings{
			PageSize:          s.getPositiveInt(KeyPageSize, defaults.Library.PageSize),
			DefaultScope:      s.getScope(defaults.Library.DefaultScope),
			DefaultCombinator: s.getCombinator(defaults.Library.DefaultCombinator),
			SnapshotPath:      s.configStore.GetString(KeySnapshotPath),
		},
		Storage: domain.StorageSettings{
			DataDir: s.configStore.GetString(KeyDataDir), // Empty means the default data directory
		},
		Server: domain.ServerSettings{
			HTTPAddr:  s.getString(KeyHTTPAddr, defaults.Server.HTTPAddr),
			RateLimit: s.getPositiveFloat(KeyRateLimit, defaults.Server.RateLimit),
			RateBurst: s.getPositiveInt(KeyRateBurst, defaults.Server.RateBurst),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	values := []struct {
		key   string
		value any
	}{
		{KeyPageSize, settings.Library.PageSize},
		{KeyDefaultScope, settings.Library.DefaultScope.String()},
		{KeyDefaultCombinator, settings.Library.DefaultCombinator.String()},
		{KeySnapshotPath, settings.Library.SnapshotPath},
		{KeyDataDir, settings.Storage.DataDir},
		{KeyHTTPAddr, settings.Server.HTTPAddr},
		{KeyRateLimit, settings.Server.RateLimit},
		{KeyRateBurst, settings.Server.RateBurst},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	return nil
}

// Set updates a single setting from its string form.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	value = strings.TrimSpace(value)

	switch key {
	case KeyPageSize:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, domain.ErrInvalidInput)
		}
		settings.Library.PageSize = n
	case KeyDefaultScope:
		scope := domain.Scope(strings.ToLower(value))
		if !scope.IsValid() {
			return fmt.Errorf("%s %q: %w", key, value, domain.ErrInvalidInput)
		}
		settings.Library.DefaultScope = scope
	case KeyDefaultCombinator:
		combinator := domain.Combinator(strings.ToLower(value))
		if !combinator.IsValid() {
			return fmt.Errorf("%s %q: %w", key, value, domain.ErrInvalidInput)
		}
		settings.Library.DefaultCombinator = combinator
	case KeySnapshotPath:
		settings.Library.SnapshotPath = value
	case KeyDataDir:
		settings.Storage.DataDir = value
	case KeyHTTPAddr:
		if value == "" {
			return fmt.Errorf("%s: %w", key, domain.ErrInvalidInput)
		}
		settings.Server.HTTPAddr = value
	case KeyRateLimit:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", key, domain.ErrInvalidInput)
		}
		settings.Server.RateLimit = f
	case KeyRateBurst:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, domain.ErrInvalidInput)
		}
		settings.Server.RateBurst = n
	default:
		return fmt.Errorf("unknown setting %q: %w", key, domain.ErrInvalidInput)
	}

	return s.Save(settings)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getPositiveInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getPositiveFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getScope(defaultVal domain.Scope) domain.Scope {
	scope := domain.Scope(s.configStore.GetString(KeyDefaultScope))
	if !scope.IsValid() {
		return defaultVal
	}
	return scope
}

func (s *SettingsService) getCombinator(defaultVal domain.Combinator) domain.Combinator {
	combinator := domain.Combinator(s.configStore.GetString(KeyDefaultCombinator))
	if !combinator.IsValid() {
		return defaultVal
	}
	return combinator
}
