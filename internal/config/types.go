// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/clp-go/clp/internal/backend"
	"github.com/clp-go/clp/internal/render"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
	// ColorSchemeNone disables colors and styling.
	ColorSchemeNone ColorScheme = "none"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidOutputConfig is the sentinel error wrapped by InvalidOutputConfigError.
	ErrInvalidOutputConfig = errors.New("invalid output config")
	// ErrInvalidUIConfig is the sentinel error wrapped by InvalidUIConfigError.
	ErrInvalidUIConfig = errors.New("invalid UI config")
	// ErrInvalidBackendsConfig is the sentinel error wrapped by InvalidBackendsConfigError.
	ErrInvalidBackendsConfig = errors.New("invalid backends config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidOutputConfigError is returned when an OutputConfig has invalid fields.
	// It wraps ErrInvalidOutputConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidOutputConfigError struct {
		FieldErrors []error
	}

	// InvalidUIConfigError is returned when a UIConfig has invalid fields.
	// It wraps ErrInvalidUIConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidUIConfigError struct {
		FieldErrors []error
	}

	// InvalidBackendsConfigError is returned when a BackendsConfig names an
	// unknown role or backend. It wraps ErrInvalidBackendsConfig for
	// errors.Is() compatibility and collects field-level validation errors.
	InvalidBackendsConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Output configures how snapshots are printed
		Output OutputConfig `json:"output" mapstructure:"output"`
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui"`
		// Backends configures backend selection
		Backends BackendsConfig `json:"backends" mapstructure:"backends"`
	}

	// OutputConfig configures snapshot output.
	OutputConfig struct {
		// Format is the default output format of 'clpconfig show'
		Format render.Format `json:"format" mapstructure:"format"`
		// ShowAbsent lists absent flags as well as present ones
		ShowAbsent bool `json:"show_absent" mapstructure:"show_absent"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables verbose output
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}

	// BackendsConfig configures backend selection.
	BackendsConfig struct {
		// Prefer maps a role to backend names tried before the default order
		Prefer map[string][]string `json:"prefer" mapstructure:"prefer"`
	}
)

// Preferences returns the backend preferences keyed by role.
func (c BackendsConfig) Preferences() map[backend.Role][]string {
	prefs := make(map[backend.Role][]string, len(c.Prefer))
	for role, names := range c.Prefer {
		prefs[backend.Role(role)] = slices.Clone(names)
	}
	return prefs
}

// IsValid returns whether every role and backend name is known.
func (c BackendsConfig) IsValid() (bool, []error) {
	var errs []error
	roles := make([]string, 0, len(c.Prefer))
	for role := range c.Prefer {
		roles = append(roles, role)
	}
	slices.Sort(roles)
	for _, role := range roles {
		r := backend.Role(role)
		if valid, fieldErrs := r.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
			continue
		}
		for _, name := range c.Prefer[role] {
			if _, err := backend.Lookup(r, name); err != nil {
				errs = append(errs, err)
			}
		}
	}
	if len(errs) > 0 {
		return false, []error{&InvalidBackendsConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidBackendsConfigError.
func (e *InvalidBackendsConfigError) Error() string {
	return fmt.Sprintf("invalid backends config: %s", joinErrors(e.FieldErrors))
}

// Unwrap returns ErrInvalidBackendsConfig for errors.Is() compatibility.
func (e *InvalidBackendsConfigError) Unwrap() error { return ErrInvalidBackendsConfig }

// IsValid returns whether the OutputConfig has valid fields.
// It delegates to Format.IsValid(); bool fields need no validation.
func (c OutputConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Format.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidOutputConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidOutputConfigError.
func (e *InvalidOutputConfigError) Error() string {
	return fmt.Sprintf("invalid output config: %s", joinErrors(e.FieldErrors))
}

// Unwrap returns ErrInvalidOutputConfig for errors.Is() compatibility.
func (e *InvalidOutputConfigError) Unwrap() error { return ErrInvalidOutputConfig }

// IsValid returns whether the UIConfig has valid fields.
// It delegates to ColorScheme.IsValid(); bool fields need no validation.
func (c UIConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidUIConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidUIConfigError.
func (e *InvalidUIConfigError) Error() string {
	return fmt.Sprintf("invalid UI config: %s", joinErrors(e.FieldErrors))
}

// Unwrap returns ErrInvalidUIConfig for errors.Is() compatibility.
func (e *InvalidUIConfigError) Unwrap() error { return ErrInvalidUIConfig }

// IsValid returns whether the Config has valid fields.
// It delegates to Output.IsValid(), UI.IsValid() and Backends.IsValid().
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Output.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Backends.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s", joinErrors(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light, none)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight, ColorSchemeNone:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Format:     render.FormatText,
			ShowAbsent: false,
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
		Backends: BackendsConfig{
			Prefer: map[string][]string{},
		},
	}
}

func joinErrors(errs []error) string {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}
