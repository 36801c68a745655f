// package buffer provides pooled scratch buffers for rendering audio.
package buffer

import (
	"sync"
)

var pool = sync.Pool{
	New: func() any {
		b := make([]float64, 4096)
		return &b
	},
}

// Get returns a zeroed buffer of the given size. Hand it back with Put when
// done with it.
func Get(size int) []float64 {
	b := *(pool.Get().(*[]float64))
	if cap(b) < size {
		b = make([]float64, size)
	}
	b = b[:size]
	clear(b)
	return b
}

// Put returns a buffer to the pool. The caller must not use b afterwards.
func Put(b []float64) {
	pool.Put(&b)
}
