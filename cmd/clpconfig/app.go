// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/clp-go/clp/internal/buildcfg"
	"github.com/clp-go/clp/internal/config"
	"github.com/clp-go/clp/pkg/capability"
)

type (
	// App wires CLI services and shared dependencies. It is the composition root for
	// the CLI layer: all Cobra command handlers receive the session built from an App
	// and read configuration and capabilities through its services.
	App struct {
		Config   ConfigProvider
		Snapshot SnapshotLoader
		stdout   io.Writer
		stderr   io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp. Tests can supply their own
	// snapshot and config sources.
	Dependencies struct {
		Config   ConfigProvider
		Snapshot SnapshotLoader
		Stdout   io.Writer
		Stderr   io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	// This abstraction enables testing with custom config sources or mock implementations.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// SnapshotLoader returns the capability snapshot the CLI reports on.
	SnapshotLoader func() (*capability.Snapshot, error)
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Snapshot == nil {
		deps.Snapshot = loadBuildSnapshot
	}

	return &App{
		Config:   deps.Config,
		Snapshot: deps.Snapshot,
		stdout:   deps.Stdout,
		stderr:   deps.Stderr,
	}
}

// loadBuildSnapshot builds the snapshot of this binary and installs it as the
// process-wide capability snapshot.
func loadBuildSnapshot() (*capability.Snapshot, error) {
	snap, err := buildcfg.Load()
	if err != nil {
		return nil, err
	}
	if err := capability.Init(snap); err != nil {
		if errors.Is(err, capability.ErrAlreadyInitialized) {
			return capability.Default(), nil
		}
		return nil, err
	}
	return snap, nil
}
