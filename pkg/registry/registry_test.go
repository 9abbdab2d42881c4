package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/certbook/internal/hostenv"
	"github.com/mesh-intelligence/certbook/pkg/types"
)

// testClockMillis is 2025-01-01T00:00:00Z, the instant every test clock
// reports unless a test overrides it.
const testClockMillis = uint64(1_735_689_600_000)

// newTestEnv builds a host environment with a frozen clock, a byte price of
// one, and a deposit large enough for any single growth operation.
func newTestEnv(caller string) *hostenv.Local {
	env := hostenv.New(caller, 1, nil)
	env.Clock = func() uint64 { return testClockMillis }
	env.SetDeposit(10_000)
	return env
}

func TestNewRegistryDefaults(t *testing.T) {
	reg := New("admin", types.RegistryInfo{})

	assert.Equal(t, "admin", reg.Owner())
	assert.Equal(t, types.DefaultRegistryInfo(), reg.Info())
	assert.Equal(t, uint64(0), reg.NextTokenID())
	assert.Equal(t, uint64(0), reg.StorageUsage())
}

func TestNewRegistryExplicitInfo(t *testing.T) {
	info := types.RegistryInfo{Spec: "certbook-1.0.0", Name: "Acme Certs", Symbol: "ACME"}
	reg := New("admin", info)

	assert.Equal(t, info, reg.Info())
}

func TestSnapshotRoundTrip(t *testing.T) {
	reg := New("admin", types.RegistryInfo{})
	env := newTestEnv("alice")

	require.NoError(t, reg.CategoryCreate(env, "golang-basics", types.CategoryMetadata{Title: strptr("Go Basics")}))
	require.NoError(t, reg.JobCreate(env, "job-1", types.JobMetadata{Extra: strptr("Backend engineer")}))
	_, err := reg.Mint(env, "bob", "golang-basics", types.TokenMetadata{Title: strptr("Go Basics - Bob")})
	require.NoError(t, err)
	_, err = reg.Mint(env, "bob", "golang-basics", types.TokenMetadata{})
	require.NoError(t, err)

	restored := FromSnapshot(reg.Snapshot())

	assert.Equal(t, reg.Owner(), restored.Owner())
	assert.Equal(t, reg.Info(), restored.Info())
	assert.Equal(t, reg.NextTokenID(), restored.NextTokenID())
	assert.Equal(t, reg.StorageUsage(), restored.StorageUsage())
	assert.Equal(t, reg.JobInfo("job-1"), restored.JobInfo("job-1"))
	assert.Equal(t, reg.Token("0"), restored.Token("0"))

	// Index iteration order survives the round trip.
	assert.Equal(t,
		reg.CertsByCategory("golang-basics", 0, 0),
		restored.CertsByCategory("golang-basics", 0, 0))
	assert.Equal(t,
		reg.TokensForOwner("bob", 0, 0),
		restored.TokensForOwner("bob", 0, 0))
}

func TestSnapshotIsIndependentCopy(t *testing.T) {
	reg := New("admin", types.RegistryInfo{})
	env := newTestEnv("alice")
	require.NoError(t, reg.JobCreate(env, "job-1", types.JobMetadata{}))

	snap := reg.Snapshot()

	env.SetDeposit(1)
	require.NoError(t, reg.JobDelete(env, "job-1"))
	require.Nil(t, reg.JobInfo("job-1"))

	// The snapshot still holds the deleted job.
	restored := FromSnapshot(snap)
	assert.NotNil(t, restored.JobInfo("job-1"))
}

func TestEnumerationPaginationPartitions(t *testing.T) {
	reg := New("admin", types.RegistryInfo{})
	env := newTestEnv("alice")
	require.NoError(t, reg.CategoryCreate(env, "golang-basics", types.CategoryMetadata{}))

	for i := 0; i < 5; i++ {
		_, err := reg.Mint(env, "bob", "golang-basics", types.TokenMetadata{})
		require.NoError(t, err)
	}

	// Walking pages of two partitions the full enumeration: no duplicates,
	// no gaps, same order.
	var paged []string
	for from := 0; from < 5; from += 2 {
		for _, v := range reg.TokensForOwner("bob", from, 2) {
			paged = append(paged, v.TokenID)
		}
	}

	var full []string
	for _, v := range reg.TokensForOwner("bob", 0, 0) {
		full = append(full, v.TokenID)
	}
	assert.Equal(t, full, paged)
	assert.Len(t, full, 5)
}

func TestEnumerationUnknownKeysYieldEmpty(t *testing.T) {
	reg := New("admin", types.RegistryInfo{})

	assert.Empty(t, reg.JobsForOwner("nobody", 0, 0))
	assert.Empty(t, reg.CategoriesForOwner("nobody", 0, 0))
	assert.Empty(t, reg.TokensForOwner("nobody", 0, 0))
	assert.Empty(t, reg.CertsByCategory("no-such-category", 0, 0))
}

func TestDefaultPageLimitApplied(t *testing.T) {
	reg := New("admin", types.RegistryInfo{})
	env := newTestEnv("alice")
	require.NoError(t, reg.CategoryCreate(env, "golang-basics", types.CategoryMetadata{}))

	env.SetDeposit(100_000)
	for i := 0; i < DefaultPageLimit+10; i++ {
		_, err := reg.Mint(env, "bob", "golang-basics", types.TokenMetadata{})
		require.NoError(t, err)
	}

	assert.Len(t, reg.TokensForOwner("bob", 0, 0), DefaultPageLimit)
	assert.Len(t, reg.TokensForOwner("bob", 0, DefaultPageLimit+10), DefaultPageLimit+10)
}
