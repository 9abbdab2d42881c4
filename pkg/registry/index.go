package registry

import "github.com/mesh-intelligence/certbook/pkg/types"

// index is a secondary index: a set of entity ids per index key (an owner
// account or a category id). A key with zero members has no entry at all;
// absence, not an empty set, is the invariant.
type index map[string]*idSet

// add inserts id under key, creating the set on first insertion.
func (ix index) add(key, id string) {
	set, ok := ix[key]
	if !ok {
		set = newIDSet()
		ix[key] = set
	}
	set.Add(id)
}

// remove deletes id from the set under key, dropping the set entry when it
// becomes empty. A missing key or membership means the index disagrees with
// primary storage, which valid API use can never produce; the error marks
// the state as defective rather than recoverable.
func (ix index) remove(key, id string) error {
	set, ok := ix[key]
	if !ok {
		return types.ErrIndexInconsistency
	}
	if !set.Remove(id) {
		return types.ErrIndexInconsistency
	}
	if set.Len() == 0 {
		delete(ix, key)
	}
	return nil
}

// page returns up to limit member ids under key starting at offset from.
// Unknown keys yield an empty slice, not an error.
func (ix index) page(key string, from, limit int) []string {
	set, ok := ix[key]
	if !ok {
		return []string{}
	}
	return set.Page(from, limit)
}

// clone returns an independent copy of the index.
func (ix index) clone() index {
	c := make(index, len(ix))
	for key, set := range ix {
		c[key] = set.clone()
	}
	return c
}
