package benchmark

import (
	"context"
	"testing"
	"time"

	"go.viam.com/test"
)

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := OpenStore(":memory:")
	test.That(t, err, test.ShouldBeNil)
	defer func() {
		test.That(t, store.Close(), test.ShouldBeNil)
	}()

	started := time.Unix(1700000000, 0)
	for i := 2; i >= 1; i-- {
		err := store.Record(ctx, "batch-a", RunResult{
			Index: i, NodesExplored: 10 * i, Attempts: 20 * i, GoalReached: i == 1,
			PathLength: 1.5, Waypoints: 4, Started: started, Duration: time.Millisecond,
		})
		test.That(t, err, test.ShouldBeNil)
	}
	test.That(t, store.Record(ctx, "batch-b", RunResult{Index: 1, Started: started}), test.ShouldBeNil)

	// a run index can only be recorded once per batch
	test.That(t, store.Record(ctx, "batch-b", RunResult{Index: 1, Started: started}), test.ShouldNotBeNil)

	results, err := store.Results(ctx, "batch-a")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, results, test.ShouldHaveLength, 2)
	test.That(t, results[0].Index, test.ShouldEqual, 1)
	test.That(t, results[0].GoalReached, test.ShouldBeTrue)
	test.That(t, results[1].NodesExplored, test.ShouldEqual, 20)
	test.That(t, results[1].Attempts, test.ShouldEqual, 40)
	test.That(t, results[1].GoalReached, test.ShouldBeFalse)
	test.That(t, results[1].Duration, test.ShouldEqual, time.Millisecond)
	test.That(t, results[1].Started.Equal(started), test.ShouldBeTrue)

	batches, err := store.Batches(ctx)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, batches, test.ShouldResemble, []string{"batch-a", "batch-b"})

	none, err := store.Results(ctx, "missing")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, none, test.ShouldBeEmpty)
}
