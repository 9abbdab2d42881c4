// Package registry implements the certbook entity registry: primary stores
// and secondary indices for jobs, categories, and certificate tokens,
// storage-byte accounting settled against caller-attached deposits, and one
// structured audit event per mutation.
//
// The registry is a sequential state-transition function. One call runs to
// completion before the next begins; a failed call restores the state that
// preceded it, so no partial mutation is ever observable. All ambient
// values (caller, deposit, time, price) come from the injected types.Env.
package registry
