package transfer

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"
)

// waitComplete polls IsComplete until it flips or the deadline passes.
func waitComplete(t *testing.T, tr *Transfer) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !tr.IsComplete() {
		if time.Now().After(deadline) {
			t.Fatal("transfer did not complete in time")
		}
		time.Sleep(time.Millisecond)
	}
}

// failingReader yields its data, then fails with err.
type failingReader struct {
	data []byte
	err  error
}

func (r *failingReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, r.err
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, nil
}

// gateReader blocks every Read until the gate is released, then reports EOF.
type gateReader struct {
	gate chan struct{}
}

func (r *gateReader) Read(p []byte) (int, error) {
	<-r.gate
	return 0, io.EOF
}

// failingWriter fails every write with err.
type failingWriter struct {
	err error
}

func (w *failingWriter) Write(p []byte) (int, error) {
	return 0, w.err
}

// shortWriter accepts one byte less than offered.
type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	return len(p) - 1, nil
}

// flushWriter records whether Flush was called and can fail it.
type flushWriter struct {
	flushed  bool
	flushErr error
}

func (w *flushWriter) Write(p []byte) (int, error) {
	return len(p), nil
}

func (w *flushWriter) Flush() error {
	w.flushed = true
	return w.flushErr
}

// panicReader panics on the first Read.
type panicReader struct{}

func (panicReader) Read(p []byte) (int, error) {
	panic("boom")
}

func TestTransferCopiesAllBytes(t *testing.T) {
	const size = 10 * 1024 * 1024
	src := bytes.NewReader(make([]byte, size))
	var dst bytes.Buffer

	tr := New(src, &dst, WithExpectedSize(size))
	waitComplete(t, tr)

	snap := tr.Snapshot()
	if snap.BytesRead != size {
		t.Errorf("expected %d bytes read, got %d", size, snap.BytesRead)
	}
	if snap.BytesWritten != size {
		t.Errorf("expected %d bytes written, got %d", size, snap.BytesWritten)
	}
	if snap.Percent != 1.0 {
		t.Errorf("expected percent 1.0, got %v", snap.Percent)
	}

	gotSrc, gotDst, err := tr.Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if gotSrc != io.Reader(src) {
		t.Error("Finish did not return the original source")
	}
	if gotDst != io.Writer(&dst) {
		t.Error("Finish did not return the original sink")
	}
	if dst.Len() != size {
		t.Errorf("expected %d bytes in sink, got %d", size, dst.Len())
	}
}

func TestFinishTwice(t *testing.T) {
	tr := New(bytes.NewReader([]byte("data")), io.Discard)

	if _, _, err := tr.Finish(); err != nil {
		t.Fatalf("first Finish: %v", err)
	}
	if _, _, err := tr.Finish(); !errors.Is(err, ErrFinished) {
		t.Errorf("expected ErrFinished, got %v", err)
	}
}

func TestSourceReadError(t *testing.T) {
	readErr := errors.New("disk on fire")
	src := &failingReader{data: make([]byte, 512), err: readErr}

	tr := New(src, io.Discard)
	waitComplete(t, tr)

	snap := tr.Snapshot()
	if snap.BytesRead != 512 {
		t.Errorf("expected 512 bytes read before failure, got %d", snap.BytesRead)
	}

	_, _, err := tr.Finish()
	var re *ReadError
	if !errors.As(err, &re) {
		t.Fatalf("expected ReadError, got %v", err)
	}
	if !errors.Is(err, readErr) {
		t.Errorf("expected wrapped %v, got %v", readErr, err)
	}
}

func TestSinkWriteError(t *testing.T) {
	writeErr := errors.New("no space left")
	tr := New(bytes.NewReader(make([]byte, 1024)), &failingWriter{err: writeErr})

	_, _, err := tr.Finish()
	var we *WriteError
	if !errors.As(err, &we) {
		t.Fatalf("expected WriteError, got %v", err)
	}
	if !errors.Is(err, writeErr) {
		t.Errorf("expected wrapped %v, got %v", writeErr, err)
	}
}

func TestShortWrite(t *testing.T) {
	tr := New(bytes.NewReader(make([]byte, 1024)), shortWriter{})

	_, _, err := tr.Finish()
	if !errors.Is(err, io.ErrShortWrite) {
		t.Errorf("expected io.ErrShortWrite, got %v", err)
	}
}

func TestFlushOnCompletion(t *testing.T) {
	w := &flushWriter{}
	tr := New(bytes.NewReader([]byte("data")), w)

	if _, _, err := tr.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if !w.flushed {
		t.Error("expected sink to be flushed")
	}
}

func TestFlushError(t *testing.T) {
	flushErr := errors.New("flush failed")
	w := &flushWriter{flushErr: flushErr}
	tr := New(bytes.NewReader([]byte("data")), w)

	_, _, err := tr.Finish()
	var we *WriteError
	if !errors.As(err, &we) {
		t.Fatalf("expected WriteError, got %v", err)
	}
	if !errors.Is(err, flushErr) {
		t.Errorf("expected wrapped %v, got %v", flushErr, err)
	}
}

func TestIsCompleteMonotone(t *testing.T) {
	gate := make(chan struct{})
	tr := New(&gateReader{gate: gate}, io.Discard)

	for i := 0; i < 10; i++ {
		if tr.IsComplete() {
			t.Fatal("transfer reported complete while worker was blocked")
		}
		time.Sleep(time.Millisecond)
	}

	close(gate)
	waitComplete(t, tr)

	if _, _, err := tr.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if !tr.IsComplete() {
		t.Error("IsComplete flapped back to false after completion")
	}
}

func TestWorkerPanicSurfaces(t *testing.T) {
	tr := New(panicReader{}, io.Discard)

	_, _, err := tr.Finish()
	var pe *PanicError
	if !errors.As(err, &pe) {
		t.Fatalf("expected PanicError, got %v", err)
	}
	if pe.Value != "boom" {
		t.Errorf("expected panic value %q, got %v", "boom", pe.Value)
	}
}

func TestSnapshotUnknownTotal(t *testing.T) {
	tr := New(bytes.NewReader(make([]byte, 4096)), io.Discard)
	waitComplete(t, tr)

	snap := tr.Snapshot()
	if snap.Total != 0 {
		t.Errorf("expected unknown total, got %d", snap.Total)
	}
	if snap.Percent != 0 {
		t.Errorf("expected no percent without a total, got %v", snap.Percent)
	}
	if snap.HasETA {
		t.Error("expected no ETA without a total")
	}
	if snap.Speed < 0 {
		t.Errorf("expected non-negative speed, got %v", snap.Speed)
	}

	if _, _, err := tr.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}
}

func TestSnapshotPercentClamped(t *testing.T) {
	// The source yields more data than the declared total. Percent must
	// still top out at 1.0.
	tr := New(bytes.NewReader(make([]byte, 2048)), io.Discard, WithExpectedSize(1024))
	waitComplete(t, tr)

	snap := tr.Snapshot()
	if snap.Percent != 1.0 {
		t.Errorf("expected percent clamped to 1.0, got %v", snap.Percent)
	}

	if _, _, err := tr.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}
}

func TestWithBufferSize(t *testing.T) {
	const size = 256 * 1024
	var dst bytes.Buffer
	tr := New(bytes.NewReader(make([]byte, size)), &dst, WithBufferSize(1024))

	if _, _, err := tr.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if dst.Len() != size {
		t.Errorf("expected %d bytes copied, got %d", size, dst.Len())
	}
}

func TestFinishAfterFailureKeepsCounts(t *testing.T) {
	readErr := errors.New("source vanished")
	src := &failingReader{data: make([]byte, 100), err: readErr}
	tr := New(src, io.Discard, WithExpectedSize(1000))

	_, _, err := tr.Finish()
	if err == nil {
		t.Fatal("expected transfer failure")
	}

	snap := tr.Snapshot()
	if snap.BytesRead != 100 {
		t.Errorf("expected partial progress of 100 bytes, got %d", snap.BytesRead)
	}
}
