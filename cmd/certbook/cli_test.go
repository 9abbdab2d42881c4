// Round-trip test driving the CLI command tree against a temp data
// directory and checking the persisted result through the backend.
package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/certbook/internal/sqlite"
	"github.com/mesh-intelligence/certbook/pkg/types"
)

func runCLI(t *testing.T, configDir, dataDir string, args ...string) error {
	t.Helper()
	full := append(args,
		"--config-dir", configDir,
		"--data-dir", dataDir,
	)
	rootCmd.SetArgs(full)
	return rootCmd.Execute()
}

func TestCLIRoundTrip(t *testing.T) {
	configDir := t.TempDir()
	dataDir := t.TempDir()

	require.NoError(t, runCLI(t, configDir, dataDir,
		"init", "--caller", "alice"))

	require.NoError(t, runCLI(t, configDir, dataDir,
		"category", "add", "golang-basics",
		"--caller", "alice", "--deposit", "10000",
		"--metadata", `{"title":"Go Basics"}`))

	require.NoError(t, runCLI(t, configDir, dataDir,
		"job", "add", "job-1",
		"--caller", "alice", "--deposit", "10000",
		"--metadata", `{"extra":"Backend engineer"}`))

	require.NoError(t, runCLI(t, configDir, dataDir,
		"cert", "mint",
		"--category", "golang-basics", "--receiver", "bob",
		"--caller", "alice", "--deposit", "10000",
		"--metadata", `{"title":"Go Basics - Bob"}`))

	require.NoError(t, runCLI(t, configDir, dataDir,
		"job", "rm", "job-1",
		"--caller", "alice", "--deposit", "1"))

	// Inspect the persisted state directly.
	backend := sqlite.NewBackend()
	require.NoError(t, backend.Attach(types.Config{
		Backend: types.BackendSQLite,
		DataDir: dataDir,
		Owner:   "alice",
	}))
	t.Cleanup(func() { backend.Detach() })

	reg, err := backend.Registry()
	require.NoError(t, err)

	assert.Nil(t, reg.JobInfo("job-1"))
	require.NotNil(t, reg.CategoryInfo("golang-basics"))

	token := reg.Token("0")
	require.NotNil(t, token)
	assert.Equal(t, "bob", token.OwnerID)
	assert.Equal(t, "golang-basics", token.CategoryID)

	// One audit line per mutation: category_create, job_create, nft_mint,
	// job_delete. Certificate queries and init add nothing.
	records, err := backend.Events(0)
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Contains(t, records[0].Line, "category_create")
	assert.Contains(t, records[1].Line, "job_create")
	assert.Contains(t, records[2].Line, "nft_mint")
	assert.Contains(t, records[3].Line, "job_delete")
}

func TestCLIRejectsUnknownJob(t *testing.T) {
	configDir := t.TempDir()
	dataDir := t.TempDir()

	err := runCLI(t, configDir, dataDir,
		"job", "get", "no-such-job", "--caller", "alice")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrNotFound)
}
