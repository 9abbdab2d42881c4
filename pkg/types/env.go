package types

// Env is the ambient execution context supplied by the host for every
// registry call. The registry never trusts caller-supplied identity or
// time; both come only from here. Amounts are in the host's minimal
// currency unit, so 1 is the smallest attachable deposit.
type Env interface {
	// Caller returns the identity of the account making the current call.
	Caller() string

	// AttachedDeposit returns the deposit attached to the current call.
	AttachedDeposit() uint64

	// StorageByteCost returns the price of one byte of registry storage.
	StorageByteCost() uint64

	// NowMillis returns the host's monotonic time in Unix epoch
	// milliseconds.
	NowMillis() uint64

	// ContentHash returns the host's content-addressed digest of data.
	ContentHash(data []byte) [32]byte

	// Transfer sends amount to the named account. Fire-and-forget: the
	// registry neither retries nor rolls back a failed transfer.
	Transfer(to string, amount uint64)

	// LogEvent publishes one audit event line for off-chain consumers.
	LogEvent(line string)
}
