package registry

import "github.com/mesh-intelligence/certbook/pkg/types"

// depositPolicy gates entry to a settled mutation.
type depositPolicy int

const (
	// depositAtLeastOne admits any deposit of one unit or more. Used by
	// operations that may grow storage.
	depositAtLeastOne depositPolicy = iota

	// depositExactlyOne admits a deposit of exactly one unit. Used by pure
	// deletions, which cannot net-grow storage, so a larger deposit would
	// only be an accidental overpayment.
	depositExactlyOne
)

// refundDustThreshold is the largest refund that is not worth a transfer.
// A refund must exceed one minimal unit to be sent back.
const refundDustThreshold = 1

// settle wraps one mutation in the storage accounting protocol:
//
//  1. reject deposits that violate policy, before anything runs;
//  2. snapshot state and storage usage, then run the mutation;
//  3. on growth, require deposit >= grown bytes x byte cost and refund the
//     excess past the dust threshold;
//  4. on shrinkage, transfer the freed-byte value to the caller and treat
//     the required cost as zero.
//
// Any failure, from the mutation itself or from an insufficient deposit,
// restores the snapshot so the call has no observable effect. Audit events
// queued by the mutation are emitted only after settlement succeeds.
func (r *Registry) settle(env types.Env, policy depositPolicy, mutate func() error) error {
	deposit := env.AttachedDeposit()
	switch policy {
	case depositAtLeastOne:
		if deposit < 1 {
			return types.ErrDepositPolicy
		}
	case depositExactlyOne:
		if deposit != 1 {
			return types.ErrDepositPolicy
		}
	}

	before := r.Snapshot()
	usageBefore := r.StorageUsage()
	r.pending = nil

	if err := mutate(); err != nil {
		r.restore(before)
		return err
	}

	usageAfter := r.StorageUsage()
	byteCost := env.StorageByteCost()

	var required uint64
	if usageAfter >= usageBefore {
		required = (usageAfter - usageBefore) * byteCost
		if deposit < required {
			r.restore(before)
			return types.ErrInsufficientDeposit
		}
	} else {
		released := (usageBefore - usageAfter) * byteCost
		if released > 0 {
			env.Transfer(env.Caller(), released)
		}
	}

	if refund := deposit - required; refund > refundDustThreshold {
		env.Transfer(env.Caller(), refund)
	}

	events := r.pending
	r.pending = nil
	for _, ev := range events {
		env.LogEvent(ev.String())
	}
	return nil
}
