package domain

const unknownDescription = "Unknown"

// Default values for library settings.
const (
	DefaultPageSize   = 20
	DefaultHTTPAddr   = ":8470"
	DefaultRateLimit  = 20.0
	DefaultRateBurst  = 40
	defaultScope      = ScopeAll
	defaultCombinator = CombinatorAny
)

// LibrarySettings controls how library views are presented.
type LibrarySettings struct {
	// PageSize is the initial and incremental window per collection.
	PageSize int

	// DefaultScope applies when a query names no scope.
	DefaultScope Scope

	// DefaultCombinator applies when a query names no combinator.
	DefaultCombinator Combinator

	// SnapshotPath is an optional YAML/JSON snapshot to load or watch.
	SnapshotPath string
}

// StorageSettings controls persistence.
type StorageSettings struct {
	// DataDir holds the SQLite database. Empty means ~/.horizon/data.
	DataDir string
}

// ServerSettings controls the HTTP surface.
type ServerSettings struct {
	// HTTPAddr is the listen address.
	HTTPAddr string

	// RateLimit is the sustained requests per second.
	RateLimit float64

	// RateBurst is the maximum burst size.
	RateBurst int
}

// AppSettings aggregates all configurable settings.
type AppSettings struct {
	Library LibrarySettings
	Storage StorageSettings
	Server  ServerSettings
}

// DefaultAppSettings returns the settings used when nothing is configured.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Library: LibrarySettings{
			PageSize:          DefaultPageSize,
			DefaultScope:      defaultScope,
			DefaultCombinator: defaultCombinator,
		},
		Server: ServerSettings{
			HTTPAddr:  DefaultHTTPAddr,
			RateLimit: DefaultRateLimit,
			RateBurst: DefaultRateBurst,
		},
	}
}

// Validate checks settings before they are persisted.
func (s *AppSettings) Validate() error {
	if s.Library.PageSize <= 0 {
		return ErrInvalidInput
	}
	if !s.Library.DefaultScope.IsValid() || !s.Library.DefaultCombinator.IsValid() {
		return ErrInvalidInput
	}
	if s.Server.RateLimit <= 0 || s.Server.RateBurst <= 0 {
		return ErrInvalidInput
	}
	return nil
}
