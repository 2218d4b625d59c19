// ABOUTME: sync.Pool of scratch byte buffers for composing terminal writes
// ABOUTME: Oversized buffers are dropped instead of pooled so one huge frame does not pin memory

package pool

import (
	"bytes"
	"sync"
)

// maxRetained caps the capacity of buffers returned to the pool.
const maxRetained = 1 << 20

var bytesBufferPool = sync.Pool{
	New: func() any {
		return new(bytes.Buffer)
	},
}

// GetBytesBuffer returns an empty bytes.Buffer from the pool.
func GetBytesBuffer() *bytes.Buffer {
	buf := bytesBufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// PutBytesBuffer returns a bytes.Buffer to the pool.
func PutBytesBuffer(buf *bytes.Buffer) {
	if buf == nil || buf.Cap() > maxRetained {
		return
	}
	buf.Reset()
	bytesBufferPool.Put(buf)
}
