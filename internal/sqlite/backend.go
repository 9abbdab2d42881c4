package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/certbook/pkg/registry"
	"github.com/mesh-intelligence/certbook/pkg/types"
)

// dbFileName is the SQLite database file created inside the data
// directory.
const dbFileName = "certbook.db"

// Backend persists a registry to SQLite. The registry itself runs in
// memory; Commit writes a full snapshot plus any newly emitted audit
// events, and Attach rebuilds the registry from the last snapshot.
type Backend struct {
	mu       sync.Mutex
	attached bool
	config   types.Config
	db       *sql.DB
	reg      *registry.Registry
}

// NewBackend creates a new SQLite backend instance. The backend is not
// attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{}
}

// Attach initializes the backend with the given configuration. Creates
// DataDir if it does not exist, initializes the schema, and loads the last
// persisted snapshot; a fresh data directory gets a new registry owned by
// config.Owner. Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, dbFileName))
	if err != nil {
		return err
	}
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	for _, ddl := range indexDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("creating indexes: %w", err)
		}
	}

	b.db = db
	b.config = config

	reg, err := b.loadRegistry()
	if err != nil {
		db.Close()
		b.db = nil
		return fmt.Errorf("loading snapshot: %w", err)
	}
	b.reg = reg
	b.attached = true
	return nil
}

// Detach persists the current snapshot and releases all resources. After
// Detach, operations return ErrBackendDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil // idempotent
	}
	if err := b.saveSnapshot(b.reg.Snapshot()); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	if err := b.db.Close(); err != nil {
		return err
	}
	b.db = nil
	b.reg = nil
	b.attached = false
	return nil
}

// Registry returns the attached in-memory registry. Mutations performed on
// it are not durable until Commit.
func (b *Backend) Registry() (*registry.Registry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil, types.ErrBackendDetached
	}
	return b.reg, nil
}

// Commit persists the current registry snapshot and appends the given
// audit event lines to the events table, all in one transaction.
func (b *Backend) Commit(eventLines []string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrBackendDetached
	}
	snap := b.reg.Snapshot()

	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := writeSnapshot(tx, snap); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := appendEvents(tx, eventLines); err != nil {
		return fmt.Errorf("appending events: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}

// saveSnapshot persists snap in its own transaction.
func (b *Backend) saveSnapshot(snap registry.Snapshot) error {
	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := writeSnapshot(tx, snap); err != nil {
		return err
	}
	return tx.Commit()
}
