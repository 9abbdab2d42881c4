package registry

import (
	"fmt"
	"strconv"

	"github.com/mesh-intelligence/certbook/pkg/types"
)

// assertCategoryOwner verifies that account owns the category. Minting and
// certificate maintenance are governed by the category owner, not by
// whoever holds an individual token.
func (r *Registry) assertCategoryOwner(account, categoryID string) error {
	e, ok := r.categories[categoryID]
	if !ok {
		return fmt.Errorf("category %q: %w", categoryID, types.ErrNotFound)
	}
	if e.owner != account {
		return fmt.Errorf("category %q: %w", categoryID, types.ErrUnauthorized)
	}
	return nil
}

// assertCertProvider verifies that account owns the category the token was
// minted into.
func (r *Registry) assertCertProvider(account, tokenID string) error {
	e, ok := r.tokens[tokenID]
	if !ok {
		return fmt.Errorf("token %q: %w", tokenID, types.ErrNotFound)
	}
	return r.assertCategoryOwner(account, e.category)
}

// Mint issues one certificate token to receiver inside categoryID and
// returns the assigned token id. Only the category owner may mint. Token
// ids come from the registry counter, which increments on every mint and
// never goes back.
func (r *Registry) Mint(env types.Env, receiver, categoryID string, metadata types.TokenMetadata) (string, error) {
	if err := r.assertCategoryOwner(env.Caller(), categoryID); err != nil {
		return "", err
	}
	var tokenID string
	err := r.settle(env, depositAtLeastOne, func() error {
		tokenID = r.mintToken(env, receiver, categoryID, metadata)
		return nil
	})
	if err != nil {
		return "", err
	}
	return tokenID, nil
}

// BulkMint issues one token per receiver inside categoryID, all settled as
// a single operation, and returns the assigned ids in order. The receiver
// and metadata slices must be the same length.
func (r *Registry) BulkMint(env types.Env, receivers []string, categoryID string, metadatas []types.TokenMetadata) ([]string, error) {
	if err := r.assertCategoryOwner(env.Caller(), categoryID); err != nil {
		return nil, err
	}
	if len(receivers) != len(metadatas) {
		return nil, types.ErrLengthMismatch
	}
	var tokenIDs []string
	err := r.settle(env, depositAtLeastOne, func() error {
		tokenIDs = make([]string, len(receivers))
		for i, receiver := range receivers {
			tokenIDs[i] = r.mintToken(env, receiver, categoryID, metadatas[i])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tokenIDs, nil
}

// mintToken performs one mint inside an already-settled mutation.
func (r *Registry) mintToken(env types.Env, receiver, categoryID string, metadata types.TokenMetadata) string {
	tokenID := strconv.FormatUint(r.tokenCounter, 10)
	r.tokenCounter++

	now := env.NowMillis()
	meta := metadata
	meta.IssuedAt = u64ptr(now)
	meta.UpdatedAt = u64ptr(now)

	r.tokens[tokenID] = &tokenEntry{owner: receiver, category: categoryID, meta: meta}
	r.tokensPerOwner.add(receiver, tokenID)
	r.tokensPerCategory.add(categoryID, tokenID)

	r.emit(EventLog{
		Standard: NFTStandardName,
		Version:  NFTMetadataSpec,
		Event:    EventNftMint,
		Data: []NftMintLog{{
			OwnerID:  receiver,
			TokenIDs: []string{tokenID},
		}},
	})
	return tokenID
}

// CertUpdate overwrites the caller-mutable metadata fields of a token.
// Authorization belongs to the certificate provider, i.e. the owner of the
// token's category, not the token holder. No audit event is emitted for
// token updates; indexers relying on the event stream do not see them.
func (r *Registry) CertUpdate(env types.Env, tokenID string, metadata types.TokenMetadata) error {
	if err := r.assertCertProvider(env.Caller(), tokenID); err != nil {
		return err
	}
	return r.settle(env, depositAtLeastOne, func() error {
		e := r.tokens[tokenID]
		e.meta.ApplyUpdate(metadata)
		e.meta.UpdatedAt = u64ptr(env.NowMillis())
		return nil
	})
}

// CertDelete removes a token, its metadata, and both of its index
// memberships. Only the token holder may delete. Like CertUpdate, the
// operation emits no audit event.
func (r *Registry) CertDelete(env types.Env, tokenID string) error {
	e, ok := r.tokens[tokenID]
	if !ok {
		return fmt.Errorf("token %q: %w", tokenID, types.ErrNotFound)
	}
	if e.owner != env.Caller() {
		return fmt.Errorf("token %q: %w", tokenID, types.ErrUnauthorized)
	}
	return r.settle(env, depositExactlyOne, func() error {
		if err := r.tokensPerOwner.remove(e.owner, tokenID); err != nil {
			return fmt.Errorf("token %q owner index: %w", tokenID, err)
		}
		if err := r.tokensPerCategory.remove(e.category, tokenID); err != nil {
			return fmt.Errorf("token %q category index: %w", tokenID, err)
		}
		delete(r.tokens, tokenID)
		return nil
	})
}

// Transfer moves a token from the caller to receiver. Metadata and
// category membership are untouched; only the owner record and the owner
// index change. The optional memo is carried into the transfer event.
func (r *Registry) Transfer(env types.Env, tokenID, receiver string, memo *string) error {
	e, ok := r.tokens[tokenID]
	if !ok {
		return fmt.Errorf("token %q: %w", tokenID, types.ErrNotFound)
	}
	if e.owner != env.Caller() {
		return fmt.Errorf("token %q: %w", tokenID, types.ErrUnauthorized)
	}
	if e.owner == receiver {
		return fmt.Errorf("token %q: %w", tokenID, types.ErrSelfTransfer)
	}
	return r.settle(env, depositAtLeastOne, func() error {
		oldOwner := e.owner
		if err := r.tokensPerOwner.remove(oldOwner, tokenID); err != nil {
			return fmt.Errorf("token %q owner index: %w", tokenID, err)
		}
		r.tokensPerOwner.add(receiver, tokenID)
		e.owner = receiver

		r.emit(EventLog{
			Standard: NFTStandardName,
			Version:  NFTMetadataSpec,
			Event:    EventNftTransfer,
			Data: []NftTransferLog{{
				OldOwnerID: oldOwner,
				NewOwnerID: receiver,
				TokenIDs:   []string{tokenID},
				Memo:       memo,
			}},
		})
		return nil
	})
}

// Token returns the joined record+metadata view of a token, or nil if the
// id is unknown. Pure query.
func (r *Registry) Token(tokenID string) *types.TokenView {
	e, ok := r.tokens[tokenID]
	if !ok {
		return nil
	}
	return &types.TokenView{TokenID: tokenID, OwnerID: e.owner, CategoryID: e.category, Metadata: e.meta}
}

// TokensForOwner lists the owner's tokens in index order, skipping from
// entries and returning at most limit (DefaultPageLimit when limit is not
// positive). Unknown owners yield an empty slice.
func (r *Registry) TokensForOwner(owner string, from, limit int) []types.TokenView {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	ids := r.tokensPerOwner.page(owner, from, limit)
	views := make([]types.TokenView, 0, len(ids))
	for _, id := range ids {
		if v := r.Token(id); v != nil {
			views = append(views, *v)
		}
	}
	return views
}

// CertsByCategory lists the tokens minted into a category in index order,
// skipping from entries and returning at most limit (DefaultPageLimit when
// limit is not positive). Transfers do not affect category membership.
// Unknown categories yield an empty slice.
func (r *Registry) CertsByCategory(categoryID string, from, limit int) []types.TokenView {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	ids := r.tokensPerCategory.page(categoryID, from, limit)
	views := make([]types.TokenView, 0, len(ids))
	for _, id := range ids {
		if v := r.Token(id); v != nil {
			views = append(views, *v)
		}
	}
	return views
}
