package coordination_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/crawlfrontier/frontier/internal/coordination"
)

func TestJobFinishLockerSerializesByJobID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis not reachable: %v", err)
	}

	locker := coordination.NewJobFinishLocker(client)

	ok1, release1, err := locker.TryLock(ctx, "job-1")
	if err != nil || !ok1 {
		t.Fatalf("first TryLock: ok=%v err=%v", ok1, err)
	}
	defer release1(ctx)

	ok2, _, err := locker.TryLock(ctx, "job-1")
	if err != nil {
		t.Fatalf("second TryLock: %v", err)
	}
	if ok2 {
		t.Error("second TryLock on same job should fail while first is held")
	}

	ok3, release3, err := locker.TryLock(ctx, "job-2")
	if err != nil || !ok3 {
		t.Fatalf("TryLock on different job: ok=%v err=%v", ok3, err)
	}
	release3(ctx)
}
