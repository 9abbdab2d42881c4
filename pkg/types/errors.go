package types

import "errors"

// Registry operation errors. Every mutating operation fails with one of
// these before any state change becomes observable; a failed call leaves
// the registry exactly as it was.
var (
	// ErrInvalidID is returned when a caller-chosen id is empty.
	ErrInvalidID = errors.New("invalid entity id")

	// ErrDuplicateID is returned when a create targets an id that already
	// has a record.
	ErrDuplicateID = errors.New("entity id already exists")

	// ErrNotFound is returned when an operation targets a missing record.
	ErrNotFound = errors.New("entity not found")

	// ErrUnauthorized is returned when the caller fails the ownership or
	// provider check for the targeted entity.
	ErrUnauthorized = errors.New("caller is not authorized")

	// ErrSelfTransfer is returned when a token transfer names the current
	// owner as the receiver.
	ErrSelfTransfer = errors.New("receiver already owns the token")

	// ErrCategoryNotEmpty is returned when a category delete is blocked by
	// tokens still indexed under the category.
	ErrCategoryNotEmpty = errors.New("category still has tokens")

	// ErrLengthMismatch is returned by bulk mint when the receiver and
	// metadata slices differ in length.
	ErrLengthMismatch = errors.New("receivers and metadatas must be the same length")
)

// Deposit settlement errors.
var (
	// ErrDepositPolicy is returned when the attached deposit violates the
	// operation's deposit policy before any mutation runs.
	ErrDepositPolicy = errors.New("attached deposit violates deposit policy")

	// ErrInsufficientDeposit is returned when the attached deposit does not
	// cover the storage grown by the mutation.
	ErrInsufficientDeposit = errors.New("attached deposit does not cover storage cost")
)

// ErrIndexInconsistency reports a secondary index that disagrees with
// primary storage. It is unreachable through valid API use; observing it
// means the registry state is defective.
var ErrIndexInconsistency = errors.New("secondary index inconsistent with primary storage")

// Backend lifecycle errors.
var (
	ErrBackendDetached = errors.New("backend is detached")
	ErrAlreadyAttached = errors.New("backend is already attached")
)
