package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/ligustah/xfer/pkg/transfer"
)

// Options configures the progress reporter.
type Options struct {
	// Output is where to write progress output.
	// Default: os.Stderr
	Output io.Writer

	// UpdateInterval is how often to update the progress display.
	// Default: 500ms
	UpdateInterval time.Duration

	// Units selects decimal or binary unit prefixes.
	Units transfer.UnitStyle

	// Label describes the transfer (for the header line).
	Label string
}

// Reporter periodically renders the progress of a transfer as
// human-readable lines.
type Reporter struct {
	t    *transfer.Transfer
	opts Options

	mu      sync.Mutex
	stopped bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewReporter creates a progress reporter for t.
func NewReporter(t *transfer.Transfer, opts Options) *Reporter {
	if opts.Output == nil {
		opts.Output = os.Stderr
	}
	if opts.UpdateInterval == 0 {
		opts.UpdateInterval = 500 * time.Millisecond
	}

	return &Reporter{
		t:      t,
		opts:   opts,
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

// Start begins outputting progress information.
func (r *Reporter) Start() {
	if r.opts.Label != "" {
		fmt.Fprintf(r.opts.Output, "[xfer] %s\n", r.opts.Label)
	}
	go r.updateLoop()
}

// Stop stops the reporter, printing the final summary. It blocks until the
// update loop has exited, so the caller may inspect Output immediately
// after. Safe to call more than once.
func (r *Reporter) Stop() {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.stopped = true
	r.mu.Unlock()

	close(r.stopCh)
	<-r.doneCh
}

// updateLoop periodically updates the progress display.
func (r *Reporter) updateLoop() {
	defer close(r.doneCh)

	ticker := time.NewTicker(r.opts.UpdateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			r.printFinalStatus()
			return
		case <-ticker.C:
			r.printProgress()
		}
	}
}

// printProgress rewrites the current progress line.
func (r *Reporter) printProgress() {
	fmt.Fprintf(r.opts.Output, "\r[xfer] %s    ", r.t.Snapshot().Format(r.opts.Units))
}

// printFinalStatus outputs the final summary.
func (r *Reporter) printFinalStatus() {
	snap := r.t.Snapshot()
	fmt.Fprintf(r.opts.Output, "\r[xfer] %s    \n", snap.Format(r.opts.Units))
	fmt.Fprintf(r.opts.Output, "[xfer] Total: %s in %s (%s/s average)\n",
		transfer.FormatBytes(snap.BytesWritten, r.opts.Units),
		transfer.FormatDuration(snap.Elapsed),
		transfer.FormatBytes(int64(snap.Speed), r.opts.Units),
	)
}
