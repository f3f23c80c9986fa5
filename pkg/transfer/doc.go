// Package transfer monitors in-progress copies between readers and writers.
//
// A [Transfer] runs a buffered copy from a source to a sink on a background
// goroutine and keeps live byte counts while it runs. Callers can poll the
// transfer from any goroutine without blocking, render human-readable
// progress lines, and finally join the worker to collect its outcome.
//
// # Usage
//
//	t := transfer.New(src, dst, transfer.WithExpectedSize(size))
//
//	for !t.IsComplete() {
//	    fmt.Println(t.Snapshot().Format(transfer.Binary))
//	    time.Sleep(time.Second)
//	}
//
//	src, dst, err := t.Finish()
//
// # Lifecycle
//
// [New] starts the copy immediately: constructing a Transfer has the side
// effect of spawning its worker goroutine. [Transfer.IsComplete] and
// [Transfer.Snapshot] never block and are valid at any point before
// [Transfer.Finish] returns. Finish blocks until the worker terminates and
// consumes the outcome; it may be called once per Transfer.
//
// # Errors
//
// The copy worker never retries. A failed read surfaces from Finish as a
// [ReadError], a failed write or flush as a [WriteError], and a recovered
// worker panic as a [PanicError]. A second Finish call fails with
// [ErrFinished]. Progress queries never surface transfer errors.
package transfer
