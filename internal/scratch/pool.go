// Package scratch provides bucketed sync.Pool byte buffers sized to the
// input: two per transform-auto search (spec.md §4.4/§9, via PingPong),
// released on every exit path including estimator errors, and one per
// Untransform call for the owned copy of src.
package scratch

import "sync"

// Size classes for bucketed pools.
const (
	Size1K   = 1024
	Size4K   = 4096
	Size16K  = 16384
	Size64K  = 65536
	Size256K = 262144
	Size1M   = 1048576
	Size4M   = 4194304
)

var sizes = [7]int{Size1K, Size4K, Size16K, Size64K, Size256K, Size1M, Size4M}

var pools [7]sync.Pool

func init() {
	for i := range pools {
		sz := sizes[i]
		pools[i] = sync.Pool{
			New: func() any {
				b := make([]byte, sz)
				return &b
			},
		}
	}
}

func bucketIndex(size int) int {
	for i, sz := range sizes {
		if size <= sz {
			return i
		}
	}
	return len(sizes) - 1
}

// Get returns a byte slice of length size, possibly reused from the pool.
// The caller must call Put when done with it.
func Get(size int) []byte {
	idx := bucketIndex(size)
	bp := pools[idx].Get().(*[]byte)
	b := *bp
	if cap(b) < size {
		b = make([]byte, size)
	}
	return b[:size]
}

// Put returns a byte slice obtained from Get back to the pool.
func Put(b []byte) {
	c := cap(b)
	idx := bucketIndex(c)
	if sizes[idx] != c {
		// Odd-sized slice (grown beyond its bucket); don't pool it.
		return
	}
	b = b[:c]
	pools[idx].Put(&b)
}
