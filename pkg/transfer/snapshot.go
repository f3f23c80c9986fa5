package transfer

import "time"

// Snapshot is a point-in-time view of a running or finished transfer.
// It is computed on demand and never stored; two snapshots taken in
// sequence may differ.
type Snapshot struct {
	// BytesRead is the number of bytes read from the source so far.
	BytesRead int64

	// BytesWritten is the number of bytes written to the sink so far.
	// It may briefly trail BytesRead while a chunk is in flight.
	BytesWritten int64

	// Elapsed is the time since the transfer started.
	Elapsed time.Duration

	// Speed is the throughput in bytes per second, averaged over the
	// whole transfer so far. Zero when no time has elapsed.
	Speed float64

	// Total is the expected size in bytes, or 0 when unknown.
	Total int64

	// Percent is the completed fraction in [0, 1]. Meaningful only when
	// Total > 0.
	Percent float64

	// ETA is the estimated time remaining. Meaningful only when HasETA
	// is true, which requires a known total and a nonzero speed.
	ETA    time.Duration
	HasETA bool
}

// Snapshot returns the current progress of the transfer. It never blocks
// and is safe to call from any goroutine, concurrently with the worker's
// updates and with other snapshots.
func (t *Transfer) Snapshot() Snapshot {
	read := t.counter.ReadCount()
	s := Snapshot{
		BytesRead:    read,
		BytesWritten: t.counter.WrittenCount(),
		Elapsed:      time.Since(t.start),
		Total:        t.total,
	}

	if secs := s.Elapsed.Seconds(); secs > 0 {
		s.Speed = float64(read) / secs
	}

	if t.total > 0 {
		s.Percent = float64(read) / float64(t.total)
		if s.Percent > 1 {
			s.Percent = 1
		}
		if s.Speed > 0 {
			remaining := t.total - read
			if remaining < 0 {
				remaining = 0
			}
			s.ETA = time.Duration(float64(remaining) / s.Speed * float64(time.Second))
			s.HasETA = true
		}
	}

	return s
}
