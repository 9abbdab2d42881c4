package registry

import (
	"fmt"

	"github.com/mesh-intelligence/certbook/pkg/types"
)

// CategoryCreate registers a new certificate category owned by the caller.
// The id is caller-chosen and must be unused; IssuedAt and UpdatedAt are
// stamped by the registry regardless of the supplied metadata.
func (r *Registry) CategoryCreate(env types.Env, categoryID string, metadata types.CategoryMetadata) error {
	if categoryID == "" {
		return types.ErrInvalidID
	}
	return r.settle(env, depositAtLeastOne, func() error {
		if _, exists := r.categories[categoryID]; exists {
			return fmt.Errorf("category %q: %w", categoryID, types.ErrDuplicateID)
		}
		caller := env.Caller()
		now := env.NowMillis()
		meta := metadata
		meta.IssuedAt = u64ptr(now)
		meta.UpdatedAt = u64ptr(now)

		r.categories[categoryID] = &categoryEntry{owner: caller, meta: meta}
		r.categoriesPerOwner.add(caller, categoryID)

		r.emit(EventLog{
			Standard: CertStandardName,
			Version:  CertVersion,
			Event:    EventCategoryCreate,
			Data: []CategoryCreateLog{{
				AuthorizedID:      strptr(caller),
				OwnerID:           caller,
				CategoryIDs:       []string{categoryID},
				CategoryMetadatas: []types.CategoryMetadata{meta},
			}},
		})
		return nil
	})
}

// CategoryUpdate overwrites the caller-mutable metadata fields of an
// existing category. Only the category owner may update; UpdatedAt is
// stamped by the registry. The emitted event carries the metadata before
// and after the change.
func (r *Registry) CategoryUpdate(env types.Env, categoryID string, metadata types.CategoryMetadata) error {
	e, ok := r.categories[categoryID]
	if !ok {
		return fmt.Errorf("category %q: %w", categoryID, types.ErrNotFound)
	}
	if e.owner != env.Caller() {
		return fmt.Errorf("category %q: %w", categoryID, types.ErrUnauthorized)
	}
	return r.settle(env, depositAtLeastOne, func() error {
		old := e.meta
		e.meta.ApplyUpdate(metadata)
		e.meta.UpdatedAt = u64ptr(env.NowMillis())

		r.emit(EventLog{
			Standard: CertStandardName,
			Version:  CertVersion,
			Event:    EventCategoryUpdate,
			Data: []CategoryUpdateLog{{
				AuthorizedID:         strptr(env.Caller()),
				CategoryIDs:          []string{categoryID},
				OldCategoryMetadatas: []types.CategoryMetadata{old},
				NewCategoryMetadatas: []types.CategoryMetadata{e.meta},
			}},
		})
		return nil
	})
}

// CategoryDelete removes a category, its metadata, and its owner-index
// membership. Only the category owner may delete, and only once no token
// remains indexed under the category; there is no cascade delete.
func (r *Registry) CategoryDelete(env types.Env, categoryID string) error {
	e, ok := r.categories[categoryID]
	if !ok {
		return fmt.Errorf("category %q: %w", categoryID, types.ErrNotFound)
	}
	if e.owner != env.Caller() {
		return fmt.Errorf("category %q: %w", categoryID, types.ErrUnauthorized)
	}
	if _, busy := r.tokensPerCategory[categoryID]; busy {
		return fmt.Errorf("category %q: %w", categoryID, types.ErrCategoryNotEmpty)
	}
	return r.settle(env, depositExactlyOne, func() error {
		if err := r.categoriesPerOwner.remove(e.owner, categoryID); err != nil {
			return fmt.Errorf("category %q owner index: %w", categoryID, err)
		}
		delete(r.categories, categoryID)

		r.emit(EventLog{
			Standard: CertStandardName,
			Version:  CertVersion,
			Event:    EventCategoryDelete,
			Data: []CategoryDeleteLog{{
				AuthorizedID: strptr(env.Caller()),
				CategoryIDs:  []string{categoryID},
			}},
		})
		return nil
	})
}

// CategoryInfo returns the joined record+metadata view of a category, or
// nil if the id is unknown. Pure query.
func (r *Registry) CategoryInfo(categoryID string) *types.CategoryView {
	e, ok := r.categories[categoryID]
	if !ok {
		return nil
	}
	return &types.CategoryView{CategoryID: categoryID, OwnerID: e.owner, Metadata: e.meta}
}

// CategoriesForOwner lists the owner's categories in index order, skipping
// from entries and returning at most limit (DefaultPageLimit when limit is
// not positive). Unknown owners yield an empty slice.
func (r *Registry) CategoriesForOwner(owner string, from, limit int) []types.CategoryView {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	ids := r.categoriesPerOwner.page(owner, from, limit)
	views := make([]types.CategoryView, 0, len(ids))
	for _, id := range ids {
		if v := r.CategoryInfo(id); v != nil {
			views = append(views, *v)
		}
	}
	return views
}
