package frontier

import "context"

// JobFinishLocker serializes the check-all-sites-terminal-then-finish
// sequence in maybeFinishJob across frontier processes sharing a store.
// Implementations key the lock by job id; TryLock is non-blocking since
// losing the race simply means another worker is already finishing the
// same job.
type JobFinishLocker interface {
	// TryLock attempts to acquire jobID's lock without blocking. release
	// is non-nil only when ok is true, and must be called once the
	// caller is done with the critical section.
	TryLock(ctx context.Context, jobID string) (ok bool, release func(context.Context), err error)
}
