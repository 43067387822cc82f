package scratch

// PingPong owns two equally sized scratch buffers for the auto-search:
// one holds the best candidate transformed so far, the other receives the
// next candidate. Swapping which buffer is "best" after a win avoids
// re-running the winning kernel a second time at the end of the search.
type PingPong struct {
	bufs    [2][]byte
	bestIdx int
	bestSet bool
}

// NewPingPong acquires two scratch buffers of length size from the pool.
func NewPingPong(size int) *PingPong {
	return &PingPong{
		bufs: [2][]byte{Get(size), Get(size)},
	}
}

// Candidate returns the buffer the next kernel invocation should write into:
// whichever of the two is not currently holding the best result.
func (p *PingPong) Candidate() []byte {
	return p.bufs[1-p.bestIdx]
}

// Accept marks the buffer last returned by Candidate as the new best.
func (p *PingPong) Accept() {
	p.bestIdx = 1 - p.bestIdx
	p.bestSet = true
}

// Best returns the buffer holding the best-scoring candidate so far, or nil
// if Accept has never been called.
func (p *PingPong) Best() []byte {
	if !p.bestSet {
		return nil
	}
	return p.bufs[p.bestIdx]
}

// Release returns both buffers to the pool. Safe to call multiple times.
func (p *PingPong) Release() {
	if p.bufs[0] != nil {
		Put(p.bufs[0])
		p.bufs[0] = nil
	}
	if p.bufs[1] != nil {
		Put(p.bufs[1])
		p.bufs[1] = nil
	}
}
