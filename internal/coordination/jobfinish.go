package coordination

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// jobFinishKeyPrefix namespaces job-finish locks from any other use of
// the same Redis instance.
const jobFinishKeyPrefix = "frontier:job-finish:"

// JobFinishLocker adapts DistributedLock to frontier.JobFinishLocker,
// keying a fresh lock by job id on every call so only one frontier
// process at a time runs the check-all-sites-terminal-then-finish
// sequence for a given job.
type JobFinishLocker struct {
	client *redis.Client
	cfg    LockConfig
}

// NewJobFinishLocker builds a JobFinishLocker backed by client, using
// DefaultLockConfig's TTL as the upper bound on how long the check can
// take before another worker is allowed to assume it died mid-section.
func NewJobFinishLocker(client *redis.Client) *JobFinishLocker {
	return &JobFinishLocker{client: client, cfg: DefaultLockConfig()}
}

// TryLock implements frontier.JobFinishLocker.
func (l *JobFinishLocker) TryLock(ctx context.Context, jobID string) (bool, func(context.Context), error) {
	lock := NewDistributedLock(l.client, jobFinishKeyPrefix+jobID, l.cfg)

	ok, err := lock.TryLock(ctx)
	if err != nil {
		return false, nil, fmt.Errorf("jobfinish: try lock job %s: %w", jobID, err)
	}
	if !ok {
		return false, nil, nil
	}

	release := func(ctx context.Context) {
		_ = lock.Unlock(ctx)
	}
	return true, release, nil
}
