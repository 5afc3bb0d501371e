// SPDX-License-Identifier: MPL-2.0

package config

import "context"

// LoadOptions selects where clpconfig reads its configuration from. The zero
// value searches the user config directory, then LocalConfigFileName in the
// working directory.
type LoadOptions struct {
	// ConfigFilePath is the --config file. When set no other location is
	// searched, and a missing file is an error.
	ConfigFilePath string
	// ConfigDirPath replaces ConfigDir().
	ConfigDirPath string
	// WorkDir is searched for LocalConfigFileName instead of the working
	// directory.
	WorkDir string
}

// Provider loads the clpconfig configuration.
type Provider interface {
	Load(ctx context.Context, opts LoadOptions) (*Config, error)
}

// fileProvider reads CUE files through viper.
type fileProvider struct{}

// NewProvider returns the file-backed Provider used by clpconfig.
func NewProvider() Provider {
	return fileProvider{}
}

// Load returns the validated configuration, or the defaults when no file
// is found.
func (fileProvider) Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	cfg, _, err := loadWithOptions(ctx, opts)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}
