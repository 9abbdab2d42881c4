package types

import "errors"

// Config holds backend selection and parameters for Backend.Attach.
type Config struct {
	Backend string `json:"backend" yaml:"backend"`
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// Owner is the admin account recorded when a fresh registry is
	// created. Ignored when the data directory already holds a snapshot.
	Owner string `json:"owner" yaml:"owner"`

	// Info describes a freshly created registry. Zero value means
	// DefaultRegistryInfo.
	Info RegistryInfo `json:"info" yaml:"info"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
)

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
	ErrOwnerEmpty     = errors.New("owner must not be empty")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.Owner == "" {
		return ErrOwnerEmpty
	}
	return nil
}
