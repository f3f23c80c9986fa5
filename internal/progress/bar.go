package progress

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/ligustah/xfer/pkg/transfer"
)

// Bar renders a transfer through a terminal progress bar instead of raw
// progress lines. A total of -1 renders a spinner (unknown size).
type Bar struct {
	t        *transfer.Transfer
	bar      *progressbar.ProgressBar
	interval time.Duration

	mu      sync.Mutex
	stopped bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewBar creates a progress bar for t writing to out. Pass total = -1 when
// the transfer size is unknown.
func NewBar(t *transfer.Transfer, total int64, label string, out io.Writer) *Bar {
	if out == nil {
		out = os.Stderr
	}

	bar := progressbar.NewOptions64(total,
		progressbar.OptionSetDescription(label),
		progressbar.OptionSetWriter(out),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetRenderBlankState(true),
	)

	return &Bar{
		t:        t,
		bar:      bar,
		interval: 100 * time.Millisecond,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins updating the bar.
func (b *Bar) Start() {
	go b.updateLoop()
}

// Stop finishes the bar. Blocks until the update loop has exited.
// Safe to call more than once.
func (b *Bar) Stop() {
	b.mu.Lock()
	if b.stopped {
		b.mu.Unlock()
		return
	}
	b.stopped = true
	b.mu.Unlock()

	close(b.stopCh)
	<-b.doneCh
}

func (b *Bar) updateLoop() {
	defer close(b.doneCh)

	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-b.stopCh:
			b.bar.Set64(b.t.Snapshot().BytesWritten)
			b.bar.Finish()
			return
		case <-ticker.C:
			b.bar.Set64(b.t.Snapshot().BytesWritten)
		}
	}
}
