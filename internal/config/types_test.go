// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"

	"github.com/clp-go/clp/internal/backend"
	"github.com/clp-go/clp/internal/render"
)

func TestColorScheme_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cs    ColorScheme
		valid bool
	}{
		{ColorSchemeAuto, true},
		{ColorSchemeDark, true},
		{ColorSchemeLight, true},
		{ColorSchemeNone, true},
		{"", false},
		{"solarized", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.cs), func(t *testing.T) {
			t.Parallel()

			valid, errs := tt.cs.IsValid()
			if valid != tt.valid {
				t.Errorf("ColorScheme(%q).IsValid() = %v, want %v", tt.cs, valid, tt.valid)
			}
			if !tt.valid {
				if len(errs) != 1 || !errors.Is(errs[0], ErrInvalidColorScheme) {
					t.Errorf("errors = %v, want ErrInvalidColorScheme", errs)
				}
				var csErr *InvalidColorSchemeError
				if !errors.As(errs[0], &csErr) || csErr.Value != tt.cs {
					t.Errorf("errors.As(*InvalidColorSchemeError) failed for %v", errs[0])
				}
			}
		})
	}
}

func TestDefaultConfig_IsValid(t *testing.T) {
	t.Parallel()

	if valid, errs := DefaultConfig().IsValid(); !valid {
		t.Errorf("DefaultConfig().IsValid() = false, %v", errs)
	}
}

func TestConfig_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		mutate   func(*Config)
		sentinel error
	}{
		{"bad format", func(c *Config) { c.Output.Format = "yaml" }, ErrInvalidOutputConfig},
		{"bad color scheme", func(c *Config) { c.UI.ColorScheme = "neon" }, ErrInvalidUIConfig},
		{"unknown role", func(c *Config) { c.Backends.Prefer["solver"] = []string{"clp"} }, ErrInvalidBackendsConfig},
		{"unknown backend", func(c *Config) { c.Backends.Prefer["factorization"] = []string{"pardiso"} }, ErrInvalidBackendsConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			valid, errs := cfg.IsValid()
			if valid {
				t.Fatal("IsValid() = true, want false")
			}
			if len(errs) != 1 || !errors.Is(errs[0], ErrInvalidConfig) {
				t.Fatalf("errors = %v, want ErrInvalidConfig", errs)
			}
			var cfgErr *InvalidConfigError
			if !errors.As(errs[0], &cfgErr) || len(cfgErr.FieldErrors) != 1 {
				t.Fatalf("errors.As(*InvalidConfigError) = %v", errs[0])
			}
			if !errors.Is(cfgErr.FieldErrors[0], tt.sentinel) {
				t.Errorf("field error = %v, want %v", cfgErr.FieldErrors[0], tt.sentinel)
			}
		})
	}
}

func TestBackendsConfig_IsValidReportsEveryProblem(t *testing.T) {
	t.Parallel()

	cfg := BackendsConfig{Prefer: map[string][]string{
		"factorization": {"mumps", "pardiso", "spooles"},
		"solver":        {"clp"},
	}}
	valid, errs := cfg.IsValid()
	if valid {
		t.Fatal("IsValid() = true, want false")
	}
	var be *InvalidBackendsConfigError
	if !errors.As(errs[0], &be) {
		t.Fatalf("errors.As(*InvalidBackendsConfigError) failed for %v", errs[0])
	}
	if len(be.FieldErrors) != 3 {
		t.Fatalf("FieldErrors = %v, want 3 entries", be.FieldErrors)
	}
	if !errors.Is(be.FieldErrors[0], backend.ErrUnknownBackend) || !errors.Is(be.FieldErrors[2], backend.ErrInvalidRole) {
		t.Errorf("FieldErrors = %v", be.FieldErrors)
	}
}

func TestBackendsConfig_Preferences(t *testing.T) {
	t.Parallel()

	cfg := BackendsConfig{Prefer: map[string][]string{"dataset": {"netlib", "sample"}}}
	prefs := cfg.Preferences()
	got := prefs[backend.RoleDataset]
	if len(got) != 2 || got[0] != "netlib" || got[1] != "sample" {
		t.Fatalf("Preferences()[dataset] = %v", got)
	}

	got[0] = "changed"
	if cfg.Prefer["dataset"][0] != "netlib" {
		t.Error("Preferences() must not alias the config slices")
	}
}

func TestOutputConfig_Format(t *testing.T) {
	t.Parallel()

	for _, f := range render.Formats() {
		if valid, errs := (OutputConfig{Format: f}).IsValid(); !valid {
			t.Errorf("OutputConfig{Format: %q}.IsValid() = false, %v", f, errs)
		}
	}
}
