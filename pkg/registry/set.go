package registry

// idSet is an ordered set of entity ids. Iteration order is the set's own:
// appends go to the end, and removal moves the last id into the vacated
// slot. The order is stable between mutations but is neither sorted nor
// pure insertion order, and callers must not rely on anything beyond that
// stability.
type idSet struct {
	order []string
	pos   map[string]int
}

func newIDSet() *idSet {
	return &idSet{pos: make(map[string]int)}
}

// Add appends id to the set. Adding a present id is a no-op.
func (s *idSet) Add(id string) {
	if _, ok := s.pos[id]; ok {
		return
	}
	s.pos[id] = len(s.order)
	s.order = append(s.order, id)
}

// Remove deletes id from the set by swapping the last element into its
// slot. Returns false if id was not a member.
func (s *idSet) Remove(id string) bool {
	i, ok := s.pos[id]
	if !ok {
		return false
	}
	last := len(s.order) - 1
	moved := s.order[last]
	s.order[i] = moved
	s.pos[moved] = i
	s.order = s.order[:last]
	delete(s.pos, id)
	return true
}

// Contains reports whether id is a member.
func (s *idSet) Contains(id string) bool {
	_, ok := s.pos[id]
	return ok
}

// Len returns the number of members.
func (s *idSet) Len() int {
	return len(s.order)
}

// IDs returns the members in iteration order. The slice is a copy.
func (s *idSet) IDs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Page returns up to limit members starting at offset from, in iteration
// order. An offset past the end yields an empty slice.
func (s *idSet) Page(from, limit int) []string {
	if from < 0 {
		from = 0
	}
	if from >= len(s.order) {
		return []string{}
	}
	end := from + limit
	if limit <= 0 || end > len(s.order) {
		end = len(s.order)
	}
	out := make([]string, end-from)
	copy(out, s.order[from:end])
	return out
}

// clone returns an independent copy of the set, preserving order.
func (s *idSet) clone() *idSet {
	c := &idSet{
		order: make([]string, len(s.order)),
		pos:   make(map[string]int, len(s.pos)),
	}
	copy(c.order, s.order)
	for id, i := range s.pos {
		c.pos[id] = i
	}
	return c
}
