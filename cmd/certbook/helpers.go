// Shared helpers for certbook CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mesh-intelligence/certbook/internal/hostenv"
	"github.com/mesh-intelligence/certbook/internal/sqlite"
	"github.com/mesh-intelligence/certbook/pkg/registry"
	"github.com/mesh-intelligence/certbook/pkg/types"
)

// attachBackend resolves the data directory, creates a SQLite backend, and
// attaches it. The caller must defer backend.Detach().
func attachBackend() (*sqlite.Backend, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := types.Config{
		Backend: types.BackendSQLite,
		DataDir: dataDir,
		Owner:   resolveCaller(),
	}

	backend := sqlite.NewBackend()
	if err := backend.Attach(cfg); err != nil {
		return nil, fmt.Errorf("attach backend: %w", err)
	}

	return backend, nil
}

// newEnv builds the host environment for one CLI invocation: the resolved
// caller, the configured byte price, and the --deposit flag value attached.
// Host log lines go to stderr so they never mix with command output.
func newEnv() *hostenv.Local {
	env := hostenv.New(resolveCaller(), configByteCost, os.Stderr)
	env.SetDeposit(flagDeposit)
	return env
}

// runMutation attaches the backend, runs fn against the registry with a
// fresh host environment, and commits the snapshot together with any audit
// events the operation emitted. Nothing is committed when fn fails.
func runMutation(fn func(reg *registry.Registry, env *hostenv.Local) error) error {
	backend, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	reg, err := backend.Registry()
	if err != nil {
		return err
	}

	env := newEnv()
	if err := fn(reg, env); err != nil {
		return err
	}

	if err := backend.Commit(env.DrainEvents()); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// runQuery attaches the backend and runs fn against the registry without
// committing anything.
func runQuery(fn func(reg *registry.Registry) error) error {
	backend, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	reg, err := backend.Registry()
	if err != nil {
		return err
	}
	return fn(reg)
}

// parseMetadataFlag unmarshals a --metadata JSON value into dst. An empty
// value leaves dst at its zero value.
func parseMetadataFlag(value string, dst any) error {
	if value == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(value), dst); err != nil {
		return fmt.Errorf("parse metadata: %w", err)
	}
	return nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(output))
	return nil
}
