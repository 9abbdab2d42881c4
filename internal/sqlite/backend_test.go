package sqlite

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/certbook/internal/hostenv"
	"github.com/mesh-intelligence/certbook/pkg/types"
)

func testConfig(t *testing.T) types.Config {
	t.Helper()
	return types.Config{
		Backend: types.BackendSQLite,
		DataDir: t.TempDir(),
		Owner:   "admin",
	}
}

func newTestEnv(caller string) *hostenv.Local {
	env := hostenv.New(caller, 1, nil)
	env.Clock = func() uint64 { return 1_735_689_600_000 }
	env.SetDeposit(10_000)
	return env
}

func TestAttachCreatesFreshRegistry(t *testing.T) {
	backend := NewBackend()
	cfg := testConfig(t)

	require.NoError(t, backend.Attach(cfg))
	t.Cleanup(func() { backend.Detach() })

	reg, err := backend.Registry()
	require.NoError(t, err)
	assert.Equal(t, "admin", reg.Owner())
	assert.Equal(t, types.DefaultRegistryInfo(), reg.Info())
}

func TestAttachValidatesConfig(t *testing.T) {
	tests := []struct {
		name    string
		config  types.Config
		wantErr error
	}{
		{
			name:    "empty backend",
			config:  types.Config{DataDir: "x", Owner: "admin"},
			wantErr: types.ErrBackendEmpty,
		},
		{
			name:    "unknown backend",
			config:  types.Config{Backend: "postgres", DataDir: "x", Owner: "admin"},
			wantErr: types.ErrBackendUnknown,
		},
		{
			name:    "empty owner",
			config:  types.Config{Backend: types.BackendSQLite, DataDir: "x"},
			wantErr: types.ErrOwnerEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := NewBackend()
			assert.ErrorIs(t, backend.Attach(tt.config), tt.wantErr)
		})
	}
}

func TestAttachTwiceFails(t *testing.T) {
	backend := NewBackend()
	cfg := testConfig(t)

	require.NoError(t, backend.Attach(cfg))
	t.Cleanup(func() { backend.Detach() })

	assert.ErrorIs(t, backend.Attach(cfg), types.ErrAlreadyAttached)
}

func TestDetachIsIdempotent(t *testing.T) {
	backend := NewBackend()
	require.NoError(t, backend.Attach(testConfig(t)))

	require.NoError(t, backend.Detach())
	require.NoError(t, backend.Detach())

	_, err := backend.Registry()
	assert.ErrorIs(t, err, types.ErrBackendDetached)
	_, err = backend.Events(0)
	assert.ErrorIs(t, err, types.ErrBackendDetached)
}

func TestCommitAndReload(t *testing.T) {
	cfg := testConfig(t)

	backend := NewBackend()
	require.NoError(t, backend.Attach(cfg))

	reg, err := backend.Registry()
	require.NoError(t, err)

	env := newTestEnv("alice")
	require.NoError(t, reg.CategoryCreate(env, "golang-basics",
		types.CategoryMetadata{Title: strptrT("Go Basics")}))
	require.NoError(t, reg.JobCreate(env, "job-1",
		types.JobMetadata{Extra: strptrT("Backend engineer")}))
	for i := 0; i < 3; i++ {
		_, err := reg.Mint(env, "bob", "golang-basics", types.TokenMetadata{})
		require.NoError(t, err)
	}
	wantOrder := reg.CertsByCategory("golang-basics", 0, 0)
	wantCounter := reg.NextTokenID()
	wantUsage := reg.StorageUsage()

	require.NoError(t, backend.Commit(env.DrainEvents()))
	require.NoError(t, backend.Detach())

	// A second backend on the same data directory sees the same state,
	// including index iteration order and the token counter.
	reopened := NewBackend()
	require.NoError(t, reopened.Attach(cfg))
	t.Cleanup(func() { reopened.Detach() })

	reg2, err := reopened.Registry()
	require.NoError(t, err)
	assert.Equal(t, "admin", reg2.Owner())
	assert.Equal(t, wantCounter, reg2.NextTokenID())
	assert.Equal(t, wantUsage, reg2.StorageUsage())
	assert.Equal(t, wantOrder, reg2.CertsByCategory("golang-basics", 0, 0))

	job := reg2.JobInfo("job-1")
	require.NotNil(t, job)
	assert.Equal(t, "Backend engineer", *job.Metadata.Extra)
}

func TestCommitAppendsEvents(t *testing.T) {
	cfg := testConfig(t)

	backend := NewBackend()
	require.NoError(t, backend.Attach(cfg))

	lines := []string{
		`EVENT_JSON:{"standard":"cecert","version":"0.1.0","event":"category_create","data":[]}`,
		`EVENT_JSON:{"standard":"nep171","version":"1.0.0","event":"nft_mint","data":[]}`,
	}
	require.NoError(t, backend.Commit(lines))
	require.NoError(t, backend.Commit([]string{
		`EVENT_JSON:{"standard":"nep171","version":"1.0.0","event":"nft_transfer","data":[]}`,
	}))

	records, err := backend.Events(0)
	require.NoError(t, err)
	require.Len(t, records, 3)

	// Emission order is preserved and every row carries a distinct id.
	assert.Equal(t, lines[0], records[0].Line)
	assert.Equal(t, lines[1], records[1].Line)
	assert.Contains(t, records[2].Line, "nft_transfer")
	assert.NotEqual(t, records[0].EventID, records[1].EventID)

	// A limited read windows to the newest rows, oldest first.
	newest, err := backend.Events(2)
	require.NoError(t, err)
	require.Len(t, newest, 2)
	assert.Equal(t, lines[1], newest[0].Line)
	assert.Contains(t, newest[1].Line, "nft_transfer")

	require.NoError(t, backend.Detach())

	// The log survives a reload.
	reopened := NewBackend()
	require.NoError(t, reopened.Attach(cfg))
	t.Cleanup(func() { reopened.Detach() })

	after, err := reopened.Events(0)
	require.NoError(t, err)
	assert.Len(t, after, 3)
}

func TestEventsAreAppendOnlyAcrossSnapshots(t *testing.T) {
	cfg := testConfig(t)

	backend := NewBackend()
	require.NoError(t, backend.Attach(cfg))

	reg, err := backend.Registry()
	require.NoError(t, err)

	env := newTestEnv("alice")
	require.NoError(t, reg.JobCreate(env, "job-1", types.JobMetadata{}))
	require.NoError(t, backend.Commit(env.DrainEvents()))

	env.SetDeposit(1)
	require.NoError(t, reg.JobDelete(env, "job-1"))
	require.NoError(t, backend.Commit(env.DrainEvents()))
	require.NoError(t, backend.Detach())

	// The job is gone from the snapshot but both events remain.
	reopened := NewBackend()
	require.NoError(t, reopened.Attach(cfg))
	t.Cleanup(func() { reopened.Detach() })

	reg2, err := reopened.Registry()
	require.NoError(t, err)
	assert.Nil(t, reg2.JobInfo("job-1"))

	records, err := reopened.Events(0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.True(t, strings.Contains(records[0].Line, "job_create"))
	assert.True(t, strings.Contains(records[1].Line, "job_delete"))
}

// strptrT returns a pointer to s.
func strptrT(s string) *string {
	return &s
}
