package registry

import (
	"encoding/json"
	"fmt"

	"github.com/mesh-intelligence/certbook/pkg/types"
)

// Audit event standards. Token events follow the NFT events convention so
// existing indexers pick them up; job and category events carry their own
// standard names.
const (
	NFTStandardName = "nep171"
	NFTMetadataSpec = "1.0.0"

	CertStandardName = "cecert"
	CertVersion      = "0.1.0"

	CareerStandardName = "cecareer"
	CareerVersion      = "0.1.0"
)

// Audit event variant tags.
const (
	EventJobCreate      = "job_create"
	EventJobUpdate      = "job_update"
	EventJobDelete      = "job_delete"
	EventCategoryCreate = "category_create"
	EventCategoryUpdate = "category_update"
	EventCategoryDelete = "category_delete"
	EventNftMint        = "nft_mint"
	EventNftTransfer    = "nft_transfer"
)

// EventLog is one audit event. Its String form is the wire format consumed
// by off-chain indexers and must stay byte-stable: a fixed "EVENT_JSON:"
// prefix followed by the JSON object with fields in this exact order.
type EventLog struct {
	Standard string `json:"standard"`
	Version  string `json:"version"`
	Event    string `json:"event"`
	Data     any    `json:"data"`
}

// String renders the event in the audit wire format.
func (e EventLog) String() string {
	// The payload structs hold only marshalable fields; an encoding error
	// here is unreachable.
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Sprintf("EVENT_JSON:{\"standard\":%q,\"version\":%q,\"event\":%q,\"data\":[]}", e.Standard, e.Version, e.Event)
	}
	return "EVENT_JSON:" + string(data)
}

// JobCreateLog is the payload of a job_create event.
type JobCreateLog struct {
	AuthorizedID *string             `json:"authorized_id"`
	OwnerID      string              `json:"owner_id"`
	JobIDs       []string            `json:"job_ids"`
	JobMetadatas []types.JobMetadata `json:"job_metadatas"`
}

// JobUpdateLog is the payload of a job_update event. It carries the
// metadata both before and after the update.
type JobUpdateLog struct {
	AuthorizedID    *string             `json:"authorized_id"`
	JobIDs          []string            `json:"job_ids"`
	OldJobMetadatas []types.JobMetadata `json:"old_job_metadatas"`
	NewJobMetadatas []types.JobMetadata `json:"new_job_metadatas"`
}

// JobDeleteLog is the payload of a job_delete event.
type JobDeleteLog struct {
	AuthorizedID *string  `json:"authorized_id"`
	JobIDs       []string `json:"job_ids"`
}

// CategoryCreateLog is the payload of a category_create event.
type CategoryCreateLog struct {
	AuthorizedID      *string                  `json:"authorized_id"`
	OwnerID           string                   `json:"owner_id"`
	CategoryIDs       []string                 `json:"category_ids"`
	CategoryMetadatas []types.CategoryMetadata `json:"category_metadatas"`
}

// CategoryUpdateLog is the payload of a category_update event. It carries
// the metadata both before and after the update.
type CategoryUpdateLog struct {
	AuthorizedID         *string                  `json:"authorized_id"`
	CategoryIDs          []string                 `json:"category_ids"`
	OldCategoryMetadatas []types.CategoryMetadata `json:"old_category_metadatas"`
	NewCategoryMetadatas []types.CategoryMetadata `json:"new_category_metadatas"`
}

// CategoryDeleteLog is the payload of a category_delete event.
type CategoryDeleteLog struct {
	AuthorizedID *string  `json:"authorized_id"`
	CategoryIDs  []string `json:"category_ids"`
}

// NftMintLog is the payload of an nft_mint event.
type NftMintLog struct {
	OwnerID  string   `json:"owner_id"`
	TokenIDs []string `json:"token_ids"`
	Memo     *string  `json:"memo,omitempty"`
}

// NftTransferLog is the payload of an nft_transfer event.
type NftTransferLog struct {
	AuthorizedID *string  `json:"authorized_id,omitempty"`
	OldOwnerID   string   `json:"old_owner_id"`
	NewOwnerID   string   `json:"new_owner_id"`
	TokenIDs     []string `json:"token_ids"`
	Memo         *string  `json:"memo,omitempty"`
}

// strptr returns a pointer to s, for the nullable authorized_id fields.
func strptr(s string) *string {
	return &s
}

// u64ptr returns a pointer to v, for the optional timestamp fields.
func u64ptr(v uint64) *uint64 {
	return &v
}
