package types

// Job is the primary record for a job posting. The id is caller-chosen and
// unique among jobs; the owner never changes after creation.
type Job struct {
	OwnerID string `json:"owner_id"`
}

// Category is the primary record for a certificate category. The id is
// caller-chosen and unique among categories; the owner is the only account
// allowed to mint tokens into the category.
type Category struct {
	OwnerID string `json:"owner_id"`
}

// Token is the primary record for a certificate token. The id is assigned
// by the registry counter. OwnerID changes only through Transfer;
// CategoryID is fixed at mint.
type Token struct {
	OwnerID    string `json:"owner_id"`
	CategoryID string `json:"category_id"`
}

// JobView joins a job record with its metadata for presentation.
type JobView struct {
	JobID    string      `json:"job_id"`
	OwnerID  string      `json:"owner_id"`
	Metadata JobMetadata `json:"metadata"`
}

// CategoryView joins a category record with its metadata for presentation.
type CategoryView struct {
	CategoryID string           `json:"category_id"`
	OwnerID    string           `json:"owner_id"`
	Metadata   CategoryMetadata `json:"metadata"`
}

// TokenView joins a token record with its metadata for presentation.
type TokenView struct {
	TokenID    string        `json:"token_id"`
	OwnerID    string        `json:"owner_id"`
	CategoryID string        `json:"category_id"`
	Metadata   TokenMetadata `json:"metadata"`
}
