package registry

import (
	"fmt"

	"github.com/mesh-intelligence/certbook/pkg/types"
)

// JobCreate registers a new job owned by the caller. The id is
// caller-chosen and must be unused; IssuedAt and UpdatedAt are stamped by
// the registry regardless of the supplied metadata.
func (r *Registry) JobCreate(env types.Env, jobID string, metadata types.JobMetadata) error {
	if jobID == "" {
		return types.ErrInvalidID
	}
	return r.settle(env, depositAtLeastOne, func() error {
		if _, exists := r.jobs[jobID]; exists {
			return fmt.Errorf("job %q: %w", jobID, types.ErrDuplicateID)
		}
		caller := env.Caller()
		now := env.NowMillis()
		meta := metadata
		meta.IssuedAt = u64ptr(now)
		meta.UpdatedAt = u64ptr(now)

		r.jobs[jobID] = &jobEntry{owner: caller, meta: meta}
		r.jobsPerOwner.add(caller, jobID)

		r.emit(EventLog{
			Standard: CareerStandardName,
			Version:  CareerVersion,
			Event:    EventJobCreate,
			Data: []JobCreateLog{{
				AuthorizedID: strptr(caller),
				OwnerID:      caller,
				JobIDs:       []string{jobID},
				JobMetadatas: []types.JobMetadata{meta},
			}},
		})
		return nil
	})
}

// JobUpdate overwrites the caller-mutable metadata fields of an existing
// job. Only the job owner may update; UpdatedAt is stamped by the registry.
// The emitted event carries the metadata before and after the change.
func (r *Registry) JobUpdate(env types.Env, jobID string, metadata types.JobMetadata) error {
	e, ok := r.jobs[jobID]
	if !ok {
		return fmt.Errorf("job %q: %w", jobID, types.ErrNotFound)
	}
	if e.owner != env.Caller() {
		return fmt.Errorf("job %q: %w", jobID, types.ErrUnauthorized)
	}
	return r.settle(env, depositAtLeastOne, func() error {
		old := e.meta
		e.meta.ApplyUpdate(metadata)
		e.meta.UpdatedAt = u64ptr(env.NowMillis())

		r.emit(EventLog{
			Standard: CareerStandardName,
			Version:  CareerVersion,
			Event:    EventJobUpdate,
			Data: []JobUpdateLog{{
				AuthorizedID:    strptr(env.Caller()),
				JobIDs:          []string{jobID},
				OldJobMetadatas: []types.JobMetadata{old},
				NewJobMetadatas: []types.JobMetadata{e.meta},
			}},
		})
		return nil
	})
}

// JobDelete removes a job, its metadata, and its owner-index membership.
// Only the job owner may delete. The freed-byte value is released back to
// the caller by the settlement protocol.
func (r *Registry) JobDelete(env types.Env, jobID string) error {
	e, ok := r.jobs[jobID]
	if !ok {
		return fmt.Errorf("job %q: %w", jobID, types.ErrNotFound)
	}
	if e.owner != env.Caller() {
		return fmt.Errorf("job %q: %w", jobID, types.ErrUnauthorized)
	}
	return r.settle(env, depositExactlyOne, func() error {
		if err := r.jobsPerOwner.remove(e.owner, jobID); err != nil {
			return fmt.Errorf("job %q owner index: %w", jobID, err)
		}
		delete(r.jobs, jobID)

		r.emit(EventLog{
			Standard: CareerStandardName,
			Version:  CareerVersion,
			Event:    EventJobDelete,
			Data: []JobDeleteLog{{
				AuthorizedID: strptr(env.Caller()),
				JobIDs:       []string{jobID},
			}},
		})
		return nil
	})
}

// JobInfo returns the joined record+metadata view of a job, or nil if the
// id is unknown. Pure query.
func (r *Registry) JobInfo(jobID string) *types.JobView {
	e, ok := r.jobs[jobID]
	if !ok {
		return nil
	}
	return &types.JobView{JobID: jobID, OwnerID: e.owner, Metadata: e.meta}
}

// JobsForOwner lists the owner's jobs in index order, skipping from
// entries and returning at most limit (DefaultPageLimit when limit is not
// positive). Unknown owners yield an empty slice.
func (r *Registry) JobsForOwner(owner string, from, limit int) []types.JobView {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	ids := r.jobsPerOwner.page(owner, from, limit)
	views := make([]types.JobView, 0, len(ids))
	for _, id := range ids {
		if v := r.JobInfo(id); v != nil {
			views = append(views, *v)
		}
	}
	return views
}
