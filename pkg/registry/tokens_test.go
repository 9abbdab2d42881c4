package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/certbook/internal/hostenv"
	"github.com/mesh-intelligence/certbook/pkg/types"
)

// newCategoryFixture builds a registry with one category owned by alice.
func newCategoryFixture(t *testing.T) (*Registry, *hostenv.Local) {
	t.Helper()
	reg := New("admin", types.RegistryInfo{})
	env := newTestEnv("alice")
	require.NoError(t, reg.CategoryCreate(env, "golang-basics", types.CategoryMetadata{}))
	return reg, env
}

func TestMint(t *testing.T) {
	reg, env := newCategoryFixture(t)

	tokenID, err := reg.Mint(env, "bob", "golang-basics", types.TokenMetadata{Title: strptr("Go Basics - Bob")})
	require.NoError(t, err)
	assert.Equal(t, "0", tokenID)

	view := reg.Token(tokenID)
	require.NotNil(t, view)
	assert.Equal(t, "bob", view.OwnerID)
	assert.Equal(t, "golang-basics", view.CategoryID)
	assert.Equal(t, "Go Basics - Bob", *view.Metadata.Title)
	assert.Equal(t, testClockMillis, *view.Metadata.IssuedAt)

	assert.Len(t, reg.TokensForOwner("bob", 0, 0), 1)
	assert.Len(t, reg.CertsByCategory("golang-basics", 0, 0), 1)
	assert.Equal(t, uint64(1), reg.NextTokenID())
}

func TestMintAuthorization(t *testing.T) {
	reg, env := newCategoryFixture(t)

	// Only the category owner may mint, even to themselves.
	env.SetCaller("bob")
	_, err := reg.Mint(env, "bob", "golang-basics", types.TokenMetadata{})
	assert.ErrorIs(t, err, types.ErrUnauthorized)

	_, err = reg.Mint(env, "bob", "no-such-category", types.TokenMetadata{})
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestTokenIDsMonotonicAcrossDelete(t *testing.T) {
	reg, env := newCategoryFixture(t)

	first, err := reg.Mint(env, "bob", "golang-basics", types.TokenMetadata{})
	require.NoError(t, err)
	second, err := reg.Mint(env, "bob", "golang-basics", types.TokenMetadata{})
	require.NoError(t, err)
	assert.Equal(t, "0", first)
	assert.Equal(t, "1", second)

	env.SetCaller("bob")
	env.SetDeposit(1)
	require.NoError(t, reg.CertDelete(env, second))

	// A deleted id is never handed out again.
	env.SetCaller("alice")
	env.SetDeposit(10_000)
	third, err := reg.Mint(env, "bob", "golang-basics", types.TokenMetadata{})
	require.NoError(t, err)
	assert.Equal(t, "2", third)
}

func TestBulkMint(t *testing.T) {
	reg, env := newCategoryFixture(t)

	ids, err := reg.BulkMint(env, []string{"bob", "carol", "dave"}, "golang-basics",
		make([]types.TokenMetadata, 3))
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "1", "2"}, ids)

	assert.Len(t, reg.CertsByCategory("golang-basics", 0, 0), 3)
	assert.Len(t, reg.TokensForOwner("carol", 0, 0), 1)

	// One mint event per issued token.
	assert.Len(t, env.Events(), 4) // category_create + three nft_mint
}

func TestBulkMintLengthMismatch(t *testing.T) {
	reg, env := newCategoryFixture(t)

	_, err := reg.BulkMint(env, []string{"bob", "carol"}, "golang-basics",
		make([]types.TokenMetadata, 1))
	assert.ErrorIs(t, err, types.ErrLengthMismatch)
	assert.Equal(t, uint64(0), reg.NextTokenID())
}

func TestCertUpdateByProvider(t *testing.T) {
	reg, env := newCategoryFixture(t)

	tokenID, err := reg.Mint(env, "bob", "golang-basics", types.TokenMetadata{Title: strptr("v1")})
	require.NoError(t, err)
	eventsBefore := len(env.Events())

	// The certificate provider, not the holder, maintains the metadata.
	require.NoError(t, reg.CertUpdate(env, tokenID, types.TokenMetadata{Title: strptr("v2")}))
	assert.Equal(t, "v2", *reg.Token(tokenID).Metadata.Title)

	// Token updates emit no audit event.
	assert.Len(t, env.Events(), eventsBefore)

	env.SetCaller("bob")
	err = reg.CertUpdate(env, tokenID, types.TokenMetadata{Title: strptr("v3")})
	assert.ErrorIs(t, err, types.ErrUnauthorized)
}

func TestCertUpdateKeepsCopies(t *testing.T) {
	reg, env := newCategoryFixture(t)

	copies := uint64(1)
	tokenID, err := reg.Mint(env, "bob", "golang-basics", types.TokenMetadata{Copies: &copies})
	require.NoError(t, err)

	other := uint64(99)
	require.NoError(t, reg.CertUpdate(env, tokenID, types.TokenMetadata{Copies: &other}))
	assert.Equal(t, copies, *reg.Token(tokenID).Metadata.Copies)
}

func TestCertDeleteByHolder(t *testing.T) {
	reg, env := newCategoryFixture(t)

	tokenID, err := reg.Mint(env, "bob", "golang-basics", types.TokenMetadata{})
	require.NoError(t, err)
	eventsBefore := len(env.Events())

	// The provider cannot delete a certificate it does not hold.
	env.SetDeposit(1)
	assert.ErrorIs(t, reg.CertDelete(env, tokenID), types.ErrUnauthorized)

	env.SetCaller("bob")
	require.NoError(t, reg.CertDelete(env, tokenID))

	assert.Nil(t, reg.Token(tokenID))
	assert.Empty(t, reg.TokensForOwner("bob", 0, 0))
	assert.Empty(t, reg.CertsByCategory("golang-basics", 0, 0))

	// Token deletes emit no audit event.
	assert.Len(t, env.Events(), eventsBefore)
}

func TestTransfer(t *testing.T) {
	reg, env := newCategoryFixture(t)

	tokenID, err := reg.Mint(env, "bob", "golang-basics", types.TokenMetadata{Title: strptr("Go Basics - Bob")})
	require.NoError(t, err)

	env.SetCaller("bob")
	require.NoError(t, reg.Transfer(env, tokenID, "carol", strptr("congrats")))

	view := reg.Token(tokenID)
	assert.Equal(t, "carol", view.OwnerID)
	assert.Equal(t, "golang-basics", view.CategoryID)
	assert.Equal(t, "Go Basics - Bob", *view.Metadata.Title)

	// The owner index moved; the category index did not.
	assert.Empty(t, reg.TokensForOwner("bob", 0, 0))
	assert.Len(t, reg.TokensForOwner("carol", 0, 0), 1)
	byCategory := reg.CertsByCategory("golang-basics", 0, 0)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "carol", byCategory[0].OwnerID)
}

func TestTransferRejections(t *testing.T) {
	reg, env := newCategoryFixture(t)

	tokenID, err := reg.Mint(env, "bob", "golang-basics", types.TokenMetadata{})
	require.NoError(t, err)

	// Only the holder may transfer.
	err = reg.Transfer(env, tokenID, "carol", nil)
	assert.ErrorIs(t, err, types.ErrUnauthorized)

	env.SetCaller("bob")
	err = reg.Transfer(env, tokenID, "bob", nil)
	assert.ErrorIs(t, err, types.ErrSelfTransfer)

	err = reg.Transfer(env, "999", "carol", nil)
	assert.ErrorIs(t, err, types.ErrNotFound)

	assert.Equal(t, "bob", reg.Token(tokenID).OwnerID)
}
