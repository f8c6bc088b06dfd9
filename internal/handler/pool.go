package handler

import (
	"bytes"
	"sync"
)

const (
	// initialBufferSize fits a typical wager outcome
	initialBufferSize = 1024
	// maxPooledBufferSize keeps large fairness traces from pinning memory
	maxPooledBufferSize = 64 * 1024
)

var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, initialBufferSize))
	},
}

func getBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

// putBuffer returns buf to the pool unless it grew past maxPooledBufferSize
func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > maxPooledBufferSize {
		return
	}
	buf.Reset()
	bufferPool.Put(buf)
}
