package repository

import "sync/atomic"

// Stats is a point-in-time copy of a repository's counters.
type Stats struct {
	LocalWrites          int64
	LocalDeletes         int64
	PushesAttempted      int64
	PushesFailed         int64
	SnapshotsApplied     int64
	SnapshotsSkipped     int64
	RemoteDeletesApplied int64
	Resubscribes         int64
}

type counters struct {
	localWrites          atomic.Int64
	localDeletes         atomic.Int64
	pushesAttempted      atomic.Int64
	pushesFailed         atomic.Int64
	snapshotsApplied     atomic.Int64
	snapshotsSkipped     atomic.Int64
	remoteDeletesApplied atomic.Int64
	resubscribes         atomic.Int64
}

func (c *counters) snapshot() Stats {
	return Stats{
		LocalWrites:          c.localWrites.Load(),
		LocalDeletes:         c.localDeletes.Load(),
		PushesAttempted:      c.pushesAttempted.Load(),
		PushesFailed:         c.pushesFailed.Load(),
		SnapshotsApplied:     c.snapshotsApplied.Load(),
		SnapshotsSkipped:     c.snapshotsSkipped.Load(),
		RemoteDeletesApplied: c.remoteDeletesApplied.Load(),
		Resubscribes:         c.resubscribes.Load(),
	}
}
