// Package hostenv provides a local implementation of the registry host
// environment: configured caller identity, per-call attached deposits, a
// fixed storage byte price, wall-clock or stubbed time, sha256 content
// hashing, and a recorded ledger of outgoing transfers and audit events.
package hostenv

import (
	"crypto/sha256"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mesh-intelligence/certbook/pkg/types"
)

// Transfer is one outgoing payment recorded by the environment. Transfers
// are fire-and-forget from the registry's perspective; the ledger exists
// for the host's own bookkeeping and for tests.
type Transfer struct {
	To     string
	Amount uint64
}

// Local implements types.Env for a single-operator deployment: the caller
// identity and byte price come from configuration, time from the system
// clock, and payments are logged rather than executed.
type Local struct {
	caller   string
	deposit  uint64
	byteCost uint64

	// Clock supplies the current time in Unix epoch milliseconds. Tests
	// replace it with a deterministic source.
	Clock func() uint64

	logger    *log.Logger
	transfers []Transfer
	events    []string
}

// New creates a Local environment for caller with the given storage byte
// price. Log output goes to w; a nil w discards it.
func New(caller string, byteCost uint64, w io.Writer) *Local {
	if w == nil {
		w = io.Discard
	}
	logger := log.NewWithOptions(w, log.Options{ReportTimestamp: true, Prefix: "host"})
	return &Local{
		caller:   caller,
		byteCost: byteCost,
		Clock:    func() uint64 { return uint64(time.Now().UnixMilli()) },
		logger:   logger,
	}
}

// SetCaller changes the identity reported for subsequent calls.
func (l *Local) SetCaller(caller string) {
	l.caller = caller
}

// SetDeposit attaches a deposit to the next registry call. The value stays
// attached until changed.
func (l *Local) SetDeposit(amount uint64) {
	l.deposit = amount
}

// Caller returns the configured caller identity.
func (l *Local) Caller() string {
	return l.caller
}

// AttachedDeposit returns the deposit attached to the current call.
func (l *Local) AttachedDeposit() uint64 {
	return l.deposit
}

// StorageByteCost returns the configured price per storage byte.
func (l *Local) StorageByteCost() uint64 {
	return l.byteCost
}

// NowMillis returns the clock's current time.
func (l *Local) NowMillis() uint64 {
	return l.Clock()
}

// ContentHash returns the sha256 digest of data.
func (l *Local) ContentHash(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// Transfer records an outgoing payment in the ledger and logs it.
func (l *Local) Transfer(to string, amount uint64) {
	l.transfers = append(l.transfers, Transfer{To: to, Amount: amount})
	l.logger.Info("transfer", "to", to, "amount", amount)
}

// LogEvent records an audit event line and logs it.
func (l *Local) LogEvent(line string) {
	l.events = append(l.events, line)
	l.logger.Debug("event", "line", line)
}

// Transfers returns the recorded outgoing payments.
func (l *Local) Transfers() []Transfer {
	return l.transfers
}

// Events returns the audit event lines recorded so far without draining
// them.
func (l *Local) Events() []string {
	return l.events
}

// DrainEvents returns the recorded audit event lines and clears the
// buffer. Backends call this after a successful operation to persist the
// new lines.
func (l *Local) DrainEvents() []string {
	out := l.events
	l.events = nil
	return out
}

var _ types.Env = (*Local)(nil)
