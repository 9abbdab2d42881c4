package types

// JobMetadata is the mutable payload paired with a job record. Timestamps
// are set by the registry; callers cannot supply them.
type JobMetadata struct {
	IssuedAt      *uint64 `json:"issued_at,omitempty"`  // Unix epoch millis, set on create.
	UpdatedAt     *uint64 `json:"updated_at,omitempty"` // Unix epoch millis, set on every write.
	Extra         *string `json:"extra,omitempty"`      // Free-form, often stringified JSON.
	Reference     *string `json:"reference,omitempty"`  // URL to an off-chain JSON file.
	ReferenceHash []byte  `json:"reference_hash,omitempty"`
}

// ApplyUpdate overwrites the caller-mutable fields of m from in. The
// timestamps are left alone; the registry stamps UpdatedAt itself.
func (m *JobMetadata) ApplyUpdate(in JobMetadata) {
	m.Extra = in.Extra
	m.Reference = in.Reference
	m.ReferenceHash = in.ReferenceHash
}

// CategoryMetadata is the mutable payload paired with a category record.
// Unlike the other payloads it serializes every field, absent ones as null;
// off-chain indexers rely on that shape.
type CategoryMetadata struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	Media         *string `json:"media"`
	MediaHash     []byte  `json:"media_hash"`
	IssuedAt      *uint64 `json:"issued_at"`
	UpdatedAt     *uint64 `json:"updated_at"`
	Fields        *string `json:"fields"` // Stringified JSON schema for certificates in the category.
	Extra         *string `json:"extra"`
	Reference     *string `json:"reference"`
	ReferenceHash []byte  `json:"reference_hash"`
}

// ApplyUpdate overwrites the caller-mutable fields of m from in. Fields is
// fixed at creation; timestamps belong to the registry.
func (m *CategoryMetadata) ApplyUpdate(in CategoryMetadata) {
	m.Title = in.Title
	m.Description = in.Description
	m.Media = in.Media
	m.MediaHash = in.MediaHash
	m.Extra = in.Extra
	m.Reference = in.Reference
	m.ReferenceHash = in.ReferenceHash
}

// TokenMetadata is the mutable payload paired with a certificate token.
type TokenMetadata struct {
	Title         *string `json:"title,omitempty"`
	Description   *string `json:"description,omitempty"`
	Media         *string `json:"media,omitempty"`
	MediaHash     []byte  `json:"media_hash,omitempty"`
	Copies        *uint64 `json:"copies,omitempty"`
	IssuedAt      *uint64 `json:"issued_at,omitempty"`
	ExpiresAt     *uint64 `json:"expires_at,omitempty"`
	StartsAt      *uint64 `json:"starts_at,omitempty"`
	UpdatedAt     *uint64 `json:"updated_at,omitempty"`
	Extra         *string `json:"extra,omitempty"`
	Reference     *string `json:"reference,omitempty"`
	ReferenceHash []byte  `json:"reference_hash,omitempty"`
}

// ApplyUpdate overwrites the caller-mutable fields of m from in. Copies and
// the timestamps are not caller-mutable.
func (m *TokenMetadata) ApplyUpdate(in TokenMetadata) {
	m.Title = in.Title
	m.Description = in.Description
	m.Media = in.Media
	m.MediaHash = in.MediaHash
	m.ExpiresAt = in.ExpiresAt
	m.StartsAt = in.StartsAt
	m.Extra = in.Extra
	m.Reference = in.Reference
	m.ReferenceHash = in.ReferenceHash
}

// RegistryInfo describes the registry itself. It is fixed at construction
// and readable through a pure view.
type RegistryInfo struct {
	Spec          string  `json:"spec"`   // Version of the registry descriptor, e.g. "certbook-1.0.0".
	Name          string  `json:"name"`   // Human-readable registry name.
	Symbol        string  `json:"symbol"` // Short ticker-style symbol.
	Icon          *string `json:"icon,omitempty"`
	BaseURI       *string `json:"base_uri,omitempty"`
	Reference     *string `json:"reference,omitempty"`
	ReferenceHash []byte  `json:"reference_hash,omitempty"`
}

// DefaultRegistryInfo returns the descriptor used when a registry is
// created without an explicit one.
func DefaultRegistryInfo() RegistryInfo {
	return RegistryInfo{
		Spec:   "certbook-1.0.0",
		Name:   "Certbook Registry",
		Symbol: "CERT",
	}
}
