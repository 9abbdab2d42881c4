package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/mesh-intelligence/certbook/pkg/registry"
	"github.com/mesh-intelligence/certbook/pkg/types"
)

// writeSnapshot replaces the snapshot tables with snap. Index entries keep
// their iteration order in the ord column so enumeration is stable across
// a reload.
func writeSnapshot(tx *sql.Tx, snap registry.Snapshot) error {
	for _, table := range []string{"registry", "jobs", "categories", "tokens", "index_entries"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	info, err := json.Marshal(snap.Info)
	if err != nil {
		return fmt.Errorf("marshaling registry info: %w", err)
	}
	if _, err := tx.Exec(
		"INSERT INTO registry (id, owner_id, info, token_counter) VALUES (0, ?, ?, ?)",
		snap.OwnerID, string(info), int64(snap.TokenCounter),
	); err != nil {
		return fmt.Errorf("persisting registry row: %w", err)
	}

	for id, js := range snap.Jobs {
		meta, err := json.Marshal(js.Metadata)
		if err != nil {
			return fmt.Errorf("marshaling job %s: %w", id, err)
		}
		if _, err := tx.Exec(
			"INSERT INTO jobs (job_id, owner_id, metadata) VALUES (?, ?, ?)",
			id, js.OwnerID, string(meta),
		); err != nil {
			return fmt.Errorf("persisting job %s: %w", id, err)
		}
	}
	for id, cs := range snap.Categories {
		meta, err := json.Marshal(cs.Metadata)
		if err != nil {
			return fmt.Errorf("marshaling category %s: %w", id, err)
		}
		if _, err := tx.Exec(
			"INSERT INTO categories (category_id, owner_id, metadata) VALUES (?, ?, ?)",
			id, cs.OwnerID, string(meta),
		); err != nil {
			return fmt.Errorf("persisting category %s: %w", id, err)
		}
	}
	for id, ts := range snap.Tokens {
		meta, err := json.Marshal(ts.Metadata)
		if err != nil {
			return fmt.Errorf("marshaling token %s: %w", id, err)
		}
		if _, err := tx.Exec(
			"INSERT INTO tokens (token_id, owner_id, category_id, metadata) VALUES (?, ?, ?, ?)",
			id, ts.OwnerID, ts.CategoryID, string(meta),
		); err != nil {
			return fmt.Errorf("persisting token %s: %w", id, err)
		}
	}

	indexes := map[string]map[string][]string{
		indexJobsPerOwner:       snap.JobsPerOwner,
		indexCategoriesPerOwner: snap.CategoriesPerOwner,
		indexTokensPerOwner:     snap.TokensPerOwner,
		indexTokensPerCategory:  snap.TokensPerCategory,
	}
	for name, entries := range indexes {
		for key, ids := range entries {
			for ord, id := range ids {
				if _, err := tx.Exec(
					"INSERT INTO index_entries (index_name, index_key, entity_id, ord) VALUES (?, ?, ?, ?)",
					name, key, id, ord,
				); err != nil {
					return fmt.Errorf("persisting index entry %s/%s/%s: %w", name, key, id, err)
				}
			}
		}
	}
	return nil
}

// loadRegistry rebuilds the registry from the persisted snapshot, or
// creates a fresh one from the config when no snapshot exists yet.
func (b *Backend) loadRegistry() (*registry.Registry, error) {
	var ownerID, infoJSON string
	var counter int64
	err := b.db.QueryRow("SELECT owner_id, info, token_counter FROM registry WHERE id = 0").
		Scan(&ownerID, &infoJSON, &counter)
	if err == sql.ErrNoRows {
		reg := registry.New(b.config.Owner, b.config.Info)
		if err := b.saveSnapshot(reg.Snapshot()); err != nil {
			return nil, fmt.Errorf("persisting fresh registry: %w", err)
		}
		return reg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading registry row: %w", err)
	}

	var info types.RegistryInfo
	if err := json.Unmarshal([]byte(infoJSON), &info); err != nil {
		return nil, fmt.Errorf("unmarshaling registry info: %w", err)
	}
	snap := registry.Snapshot{
		OwnerID:      ownerID,
		Info:         info,
		TokenCounter: uint64(counter),
		Jobs:         make(map[string]registry.JobState),
		Categories:   make(map[string]registry.CategoryState),
		Tokens:       make(map[string]registry.TokenState),
	}

	if err := b.loadJobs(&snap); err != nil {
		return nil, err
	}
	if err := b.loadCategories(&snap); err != nil {
		return nil, err
	}
	if err := b.loadTokens(&snap); err != nil {
		return nil, err
	}
	if err := b.loadIndexes(&snap); err != nil {
		return nil, err
	}
	return registry.FromSnapshot(snap), nil
}

func (b *Backend) loadJobs(snap *registry.Snapshot) error {
	rows, err := b.db.Query("SELECT job_id, owner_id, metadata FROM jobs")
	if err != nil {
		return fmt.Errorf("querying jobs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, owner, metaJSON string
		if err := rows.Scan(&id, &owner, &metaJSON); err != nil {
			return fmt.Errorf("scanning job: %w", err)
		}
		var meta types.JobMetadata
		if err := json.Unmarshal([]byte(metaJSON), &meta); err != nil {
			return fmt.Errorf("unmarshaling job %s metadata: %w", id, err)
		}
		snap.Jobs[id] = registry.JobState{OwnerID: owner, Metadata: meta}
	}
	return rows.Err()
}

func (b *Backend) loadCategories(snap *registry.Snapshot) error {
	rows, err := b.db.Query("SELECT category_id, owner_id, metadata FROM categories")
	if err != nil {
		return fmt.Errorf("querying categories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, owner, metaJSON string
		if err := rows.Scan(&id, &owner, &metaJSON); err != nil {
			return fmt.Errorf("scanning category: %w", err)
		}
		var meta types.CategoryMetadata
		if err := json.Unmarshal([]byte(metaJSON), &meta); err != nil {
			return fmt.Errorf("unmarshaling category %s metadata: %w", id, err)
		}
		snap.Categories[id] = registry.CategoryState{OwnerID: owner, Metadata: meta}
	}
	return rows.Err()
}

func (b *Backend) loadTokens(snap *registry.Snapshot) error {
	rows, err := b.db.Query("SELECT token_id, owner_id, category_id, metadata FROM tokens")
	if err != nil {
		return fmt.Errorf("querying tokens: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, owner, category, metaJSON string
		if err := rows.Scan(&id, &owner, &category, &metaJSON); err != nil {
			return fmt.Errorf("scanning token: %w", err)
		}
		var meta types.TokenMetadata
		if err := json.Unmarshal([]byte(metaJSON), &meta); err != nil {
			return fmt.Errorf("unmarshaling token %s metadata: %w", id, err)
		}
		snap.Tokens[id] = registry.TokenState{OwnerID: owner, CategoryID: category, Metadata: meta}
	}
	return rows.Err()
}

func (b *Backend) loadIndexes(snap *registry.Snapshot) error {
	snap.JobsPerOwner = make(map[string][]string)
	snap.CategoriesPerOwner = make(map[string][]string)
	snap.TokensPerOwner = make(map[string][]string)
	snap.TokensPerCategory = make(map[string][]string)

	rows, err := b.db.Query(
		"SELECT index_name, index_key, entity_id FROM index_entries ORDER BY index_name, index_key, ord",
	)
	if err != nil {
		return fmt.Errorf("querying index entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name, key, id string
		if err := rows.Scan(&name, &key, &id); err != nil {
			return fmt.Errorf("scanning index entry: %w", err)
		}
		switch name {
		case indexJobsPerOwner:
			snap.JobsPerOwner[key] = append(snap.JobsPerOwner[key], id)
		case indexCategoriesPerOwner:
			snap.CategoriesPerOwner[key] = append(snap.CategoriesPerOwner[key], id)
		case indexTokensPerOwner:
			snap.TokensPerOwner[key] = append(snap.TokensPerOwner[key], id)
		case indexTokensPerCategory:
			snap.TokensPerCategory[key] = append(snap.TokensPerCategory[key], id)
		default:
			return fmt.Errorf("index entry %s/%s/%s: unknown index name", name, key, id)
		}
	}
	return rows.Err()
}
