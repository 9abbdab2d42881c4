// Package sqlite implements the SQLite storage backend for the certbook
// registry. The registry state lives in memory; this backend persists full
// snapshots of it and appends every emitted audit event line to an
// append-only events table.
package sqlite

// Schema DDL. The snapshot tables are rewritten wholesale on every commit;
// the events table only ever grows.
const (
	createRegistry = `CREATE TABLE IF NOT EXISTS registry (
    id INTEGER PRIMARY KEY CHECK (id = 0),
    owner_id TEXT NOT NULL,
    info TEXT NOT NULL,
    token_counter INTEGER NOT NULL
);`

	createJobs = `CREATE TABLE IF NOT EXISTS jobs (
    job_id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL,
    metadata TEXT NOT NULL
);`

	createCategories = `CREATE TABLE IF NOT EXISTS categories (
    category_id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL,
    metadata TEXT NOT NULL
);`

	createTokens = `CREATE TABLE IF NOT EXISTS tokens (
    token_id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL,
    category_id TEXT NOT NULL,
    metadata TEXT NOT NULL
);`

	createIndexEntries = `CREATE TABLE IF NOT EXISTS index_entries (
    index_name TEXT NOT NULL,
    index_key TEXT NOT NULL,
    entity_id TEXT NOT NULL,
    ord INTEGER NOT NULL,
    PRIMARY KEY (index_name, index_key, entity_id)
);`

	createEvents = `CREATE TABLE IF NOT EXISTS events (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    event_id TEXT NOT NULL UNIQUE,
    emitted_at TEXT NOT NULL,
    line TEXT NOT NULL
);`
)

// Index DDL for common queries.
const (
	idxJobsOwner      = `CREATE INDEX IF NOT EXISTS idx_jobs_owner ON jobs(owner_id);`
	idxTokensOwner    = `CREATE INDEX IF NOT EXISTS idx_tokens_owner ON tokens(owner_id);`
	idxTokensCategory = `CREATE INDEX IF NOT EXISTS idx_tokens_category ON tokens(category_id);`
	idxIndexEntries   = `CREATE INDEX IF NOT EXISTS idx_index_entries_key ON index_entries(index_name, index_key, ord);`
)

// Secondary index names used in the index_entries table.
const (
	indexJobsPerOwner       = "jobs_per_owner"
	indexCategoriesPerOwner = "categories_per_owner"
	indexTokensPerOwner     = "tokens_per_owner"
	indexTokensPerCategory  = "tokens_per_category"
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createRegistry,
	createJobs,
	createCategories,
	createTokens,
	createIndexEntries,
	createEvents,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxJobsOwner,
	idxTokensOwner,
	idxTokensCategory,
	idxIndexEntries,
}
