package registry

import "github.com/mesh-intelligence/certbook/pkg/types"

// JobState is the snapshot form of one job entry.
type JobState struct {
	OwnerID  string            `json:"owner_id"`
	Metadata types.JobMetadata `json:"metadata"`
}

// CategoryState is the snapshot form of one category entry.
type CategoryState struct {
	OwnerID  string                 `json:"owner_id"`
	Metadata types.CategoryMetadata `json:"metadata"`
}

// TokenState is the snapshot form of one token entry.
type TokenState struct {
	OwnerID    string              `json:"owner_id"`
	CategoryID string              `json:"category_id"`
	Metadata   types.TokenMetadata `json:"metadata"`
}

// Snapshot is the complete, self-contained state of a registry. Backends
// persist it and the settlement protocol restores it when a call fails.
// Index slices are recorded in iteration order so enumeration and
// pagination survive a round trip.
type Snapshot struct {
	OwnerID      string                   `json:"owner_id"`
	Info         types.RegistryInfo       `json:"info"`
	TokenCounter uint64                   `json:"token_counter"`
	Jobs         map[string]JobState      `json:"jobs"`
	Categories   map[string]CategoryState `json:"categories"`
	Tokens       map[string]TokenState    `json:"tokens"`

	JobsPerOwner       map[string][]string `json:"jobs_per_owner"`
	CategoriesPerOwner map[string][]string `json:"categories_per_owner"`
	TokensPerOwner     map[string][]string `json:"tokens_per_owner"`
	TokensPerCategory  map[string][]string `json:"tokens_per_category"`
}

// Snapshot captures the current registry state.
func (r *Registry) Snapshot() Snapshot {
	s := Snapshot{
		OwnerID:            r.ownerID,
		Info:               r.info,
		TokenCounter:       r.tokenCounter,
		Jobs:               make(map[string]JobState, len(r.jobs)),
		Categories:         make(map[string]CategoryState, len(r.categories)),
		Tokens:             make(map[string]TokenState, len(r.tokens)),
		JobsPerOwner:       indexState(r.jobsPerOwner),
		CategoriesPerOwner: indexState(r.categoriesPerOwner),
		TokensPerOwner:     indexState(r.tokensPerOwner),
		TokensPerCategory:  indexState(r.tokensPerCategory),
	}
	for id, e := range r.jobs {
		s.Jobs[id] = JobState{OwnerID: e.owner, Metadata: e.meta}
	}
	for id, e := range r.categories {
		s.Categories[id] = CategoryState{OwnerID: e.owner, Metadata: e.meta}
	}
	for id, e := range r.tokens {
		s.Tokens[id] = TokenState{OwnerID: e.owner, CategoryID: e.category, Metadata: e.meta}
	}
	return s
}

// FromSnapshot rebuilds a registry from a snapshot. Index sets come back in
// the recorded order.
func FromSnapshot(s Snapshot) *Registry {
	r := New(s.OwnerID, s.Info)
	r.tokenCounter = s.TokenCounter
	for id, js := range s.Jobs {
		r.jobs[id] = &jobEntry{owner: js.OwnerID, meta: js.Metadata}
	}
	for id, cs := range s.Categories {
		r.categories[id] = &categoryEntry{owner: cs.OwnerID, meta: cs.Metadata}
	}
	for id, ts := range s.Tokens {
		r.tokens[id] = &tokenEntry{owner: ts.OwnerID, category: ts.CategoryID, meta: ts.Metadata}
	}
	restoreIndex(r.jobsPerOwner, s.JobsPerOwner)
	restoreIndex(r.categoriesPerOwner, s.CategoriesPerOwner)
	restoreIndex(r.tokensPerOwner, s.TokensPerOwner)
	restoreIndex(r.tokensPerCategory, s.TokensPerCategory)
	return r
}

// restore replaces the registry state with a previously captured snapshot.
// Pending events from the failed call are dropped with it.
func (r *Registry) restore(s Snapshot) {
	fresh := FromSnapshot(s)
	*r = *fresh
}

func indexState(ix index) map[string][]string {
	out := make(map[string][]string, len(ix))
	for key, set := range ix {
		out[key] = set.IDs()
	}
	return out
}

func restoreIndex(ix index, state map[string][]string) {
	for key, ids := range state {
		for _, id := range ids {
			ix.add(key, id)
		}
	}
}
