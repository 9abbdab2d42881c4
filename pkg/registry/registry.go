package registry

import (
	"encoding/json"

	"github.com/mesh-intelligence/certbook/pkg/types"
)

// DefaultPageLimit is applied by the enumeration queries when the caller
// passes a non-positive limit.
const DefaultPageLimit = 50

// Storage cost model, in bytes. Every stored record, metadata payload, and
// index entry is charged its key and value bytes plus a fixed bookkeeping
// overhead, so growing and freeing the same entry always settle to the
// same figure.
const (
	recordOverhead     = 16 // per primary record or metadata payload
	setOverhead        = 16 // per existing index set entry
	membershipOverhead = 4  // per id held in an index set
)

// jobEntry pairs a job record with its metadata. The two exist and die
// together; there is no way to store one facet without the other.
type jobEntry struct {
	owner string
	meta  types.JobMetadata
}

// categoryEntry pairs a category record with its metadata.
type categoryEntry struct {
	owner string
	meta  types.CategoryMetadata
}

// tokenEntry pairs a token record with its metadata.
type tokenEntry struct {
	owner    string
	category string
	meta     types.TokenMetadata
}

// Registry is the top-level aggregate: primary stores and secondary
// indices for the three entity families, the token id counter, and the
// audit events pending emission. It is not safe for concurrent use; the
// execution model is one call at a time.
type Registry struct {
	ownerID string
	info    types.RegistryInfo

	// tokenCounter is the next token id. It only ever increases; token
	// ids are never reused, not even after delete.
	tokenCounter uint64

	jobs       map[string]*jobEntry
	categories map[string]*categoryEntry
	tokens     map[string]*tokenEntry

	jobsPerOwner       index
	categoriesPerOwner index
	tokensPerOwner     index
	tokensPerCategory  index

	// pending holds audit events built during the current mutation. They
	// reach the host only after the mutation and its settlement succeed.
	pending []EventLog
}

// New creates an empty registry administered by ownerID. A zero info is
// replaced by types.DefaultRegistryInfo.
func New(ownerID string, info types.RegistryInfo) *Registry {
	if info.Spec == "" && info.Name == "" && info.Symbol == "" {
		info = types.DefaultRegistryInfo()
	}
	return &Registry{
		ownerID:            ownerID,
		info:               info,
		jobs:               make(map[string]*jobEntry),
		categories:         make(map[string]*categoryEntry),
		tokens:             make(map[string]*tokenEntry),
		jobsPerOwner:       make(index),
		categoriesPerOwner: make(index),
		tokensPerOwner:     make(index),
		tokensPerCategory:  make(index),
	}
}

// Owner returns the admin account the registry was created with.
func (r *Registry) Owner() string {
	return r.ownerID
}

// Info returns the registry descriptor. Pure view.
func (r *Registry) Info() types.RegistryInfo {
	return r.info
}

// NextTokenID returns the id the next mint will assign.
func (r *Registry) NextTokenID() uint64 {
	return r.tokenCounter
}

// StorageUsage returns the bytes of storage the registry currently
// occupies under the cost model. It is recomputed from the full state on
// every call, so a grown and then freed entry always nets to zero.
func (r *Registry) StorageUsage() uint64 {
	var n uint64
	for id, e := range r.jobs {
		n += recordCost(id, len(e.owner))
		n += metadataCost(id, e.meta)
	}
	for id, e := range r.categories {
		n += recordCost(id, len(e.owner))
		n += metadataCost(id, e.meta)
	}
	for id, e := range r.tokens {
		n += recordCost(id, len(e.owner)+len(e.category))
		n += metadataCost(id, e.meta)
	}
	for _, ix := range []index{r.jobsPerOwner, r.categoriesPerOwner, r.tokensPerOwner, r.tokensPerCategory} {
		for key, set := range ix {
			n += setOverhead + uint64(len(key))
			for _, id := range set.order {
				n += membershipOverhead + uint64(len(id))
			}
		}
	}
	return n
}

// recordCost is the storage charge for one primary record: its key, its
// value bytes, and the fixed overhead.
func recordCost(id string, valueBytes int) uint64 {
	return recordOverhead + uint64(len(id)) + uint64(valueBytes)
}

// metadataCost is the storage charge for one metadata payload, measured as
// its serialized size.
func metadataCost(id string, meta any) uint64 {
	return recordOverhead + uint64(len(id)) + jsonLen(meta)
}

// jsonLen returns the length of v's JSON encoding. The metadata types
// contain only marshalable fields, so the encoding cannot fail.
func jsonLen(v any) uint64 {
	data, err := json.Marshal(v)
	if err != nil {
		return 0
	}
	return uint64(len(data))
}

// emit queues an audit event for emission after the current mutation
// settles.
func (r *Registry) emit(ev EventLog) {
	r.pending = append(r.pending, ev)
}
