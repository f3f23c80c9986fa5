package transfer

import (
	"io"
	"sync"
	"sync/atomic"
	"time"
)

// defaultBufferSize is the chunk size of the copy loop. It affects
// throughput granularity only, not correctness.
const defaultBufferSize = 64 * 1024

// Flusher is implemented by sinks that buffer writes. The copy worker
// flushes such sinks once the source is exhausted, before reporting
// success.
type Flusher interface {
	Flush() error
}

type options struct {
	expectedSize int64
	bufferSize   int
}

// Option configures a Transfer.
type Option func(*options)

// WithExpectedSize sets the expected total size of the transfer in bytes.
// When set, snapshots include percent complete and an estimated time
// remaining. Values <= 0 leave the total unknown.
func WithExpectedSize(size int64) Option {
	return func(o *options) {
		o.expectedSize = size
	}
}

// WithBufferSize sets the size of the intermediate copy buffer.
// Values <= 0 keep the default of 64 KiB.
func WithBufferSize(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.bufferSize = size
		}
	}
}

// result is the terminal outcome of the copy worker, produced exactly once.
type result struct {
	err error
}

// Transfer monitors a copy from a source reader to a sink writer running
// on a background goroutine.
//
// New starts the copy as a side effect; a Transfer is never idle. Once
// started, the copy runs to natural completion or I/O failure. There is no
// cancellation: a caller wanting early termination must make the source or
// sink fail externally (e.g. via a request context).
type Transfer struct {
	src io.Reader
	dst io.Writer

	counter *ByteCounter
	start   time.Time
	total   int64

	complete atomic.Bool
	done     chan result

	mu       sync.Mutex
	consumed bool
}

// New starts copying src to dst on a background goroutine and returns a
// handle for monitoring the copy. The caller must eventually call Finish
// to collect the outcome and recover src and dst.
func New(src io.Reader, dst io.Writer, opts ...Option) *Transfer {
	o := options{bufferSize: defaultBufferSize}
	for _, opt := range opts {
		opt(&o)
	}

	t := &Transfer{
		src:     src,
		dst:     dst,
		counter: &ByteCounter{},
		start:   time.Now(),
		total:   o.expectedSize,
		done:    make(chan result, 1),
	}
	go t.run(o.bufferSize)
	return t
}

// run is the copy worker. It delivers exactly one result on t.done and
// flips the completion flag only after the result is buffered, so that
// IsComplete() == true guarantees Finish will not block.
func (t *Transfer) run(bufferSize int) {
	var res result
	defer func() {
		if v := recover(); v != nil {
			res.err = &PanicError{Value: v}
		}
		t.done <- res
		t.complete.Store(true)
	}()
	res.err = t.copy(bufferSize)
}

// copy moves bytes chunk by chunk, reporting each side into the counter.
// Partial counts from a failed final chunk stand; there is no rollback.
func (t *Transfer) copy(bufferSize int) error {
	buf := make([]byte, bufferSize)
	for {
		n, rerr := t.src.Read(buf)
		if n > 0 {
			t.counter.AddRead(int64(n))
			wn, werr := t.dst.Write(buf[:n])
			t.counter.AddWritten(int64(wn))
			if werr != nil {
				return &WriteError{Err: werr}
			}
			if wn < n {
				return &WriteError{Err: io.ErrShortWrite}
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return &ReadError{Err: rerr}
		}
	}

	if f, ok := t.dst.(Flusher); ok {
		if err := f.Flush(); err != nil {
			return &WriteError{Err: err}
		}
	}
	return nil
}

// IsComplete reports whether the copy worker has terminated, successfully
// or not. It never blocks, does not consume the outcome, and once true
// stays true. Call Finish to learn the final result.
func (t *Transfer) IsComplete() bool {
	return t.complete.Load()
}

// Counter returns the live byte counter shared with the copy worker.
func (t *Transfer) Counter() *ByteCounter {
	return t.counter
}

// Finish blocks until the copy worker terminates and returns its outcome:
// the source and sink on success, or the error that stopped the copy.
//
// Finish consumes the Transfer. A second call returns ErrFinished rather
// than stale or duplicate data. On failure the source and sink are not
// returned; the counters still reflect the partial progress made.
func (t *Transfer) Finish() (io.Reader, io.Writer, error) {
	t.mu.Lock()
	if t.consumed {
		t.mu.Unlock()
		return nil, nil, ErrFinished
	}
	t.consumed = true
	t.mu.Unlock()

	res := <-t.done
	if res.err != nil {
		return nil, nil, res.err
	}
	return t.src, t.dst, nil
}

// String renders the current snapshot in binary units.
func (t *Transfer) String() string {
	return t.Snapshot().Format(Binary)
}
