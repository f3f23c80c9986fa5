package transfer

import "sync/atomic"

// ByteCounter tracks the bytes observed on the read and write sides of a
// transfer. The two counts only ever increase. The copy worker is the sole
// writer; any goroutine may read the counts without locking.
//
// The counts may transiently disagree while a chunk is in flight between
// its read and its write. They converge on completion.
type ByteCounter struct {
	read    atomic.Int64
	written atomic.Int64
}

// AddRead records n bytes read from the source. Zero and negative values
// are ignored.
func (c *ByteCounter) AddRead(n int64) {
	if n > 0 {
		c.read.Add(n)
	}
}

// AddWritten records n bytes written to the sink. Zero and negative values
// are ignored.
func (c *ByteCounter) AddWritten(n int64) {
	if n > 0 {
		c.written.Add(n)
	}
}

// ReadCount returns the number of bytes read from the source so far.
func (c *ByteCounter) ReadCount() int64 {
	return c.read.Load()
}

// WrittenCount returns the number of bytes written to the sink so far.
func (c *ByteCounter) WrittenCount() int64 {
	return c.written.Load()
}
