package mpmac

import "sync"

// Sink is the caller-owned match-set accumulator of §4.6: a bitset indexed
// by pattern id for O(1) membership plus an append-only list preserving
// emission order. Adding an id already present is a no-op.
//
// A Sink is not safe for concurrent use; each scanning goroutine must use
// its own (§5). Use [SinkPool] to reuse sinks across scans cheaply.
type Sink struct {
	bits []uint64
	ids  []uint32
}

// NewSink returns a Sink whose bitset covers ids [0, maxID]. maxID must be
// at least the largest pattern id the caller intends to add to this sink;
// see [Context.MaxID].
func NewSink(maxID uint32) *Sink {
	return &Sink{bits: make([]uint64, maxID/64+1)}
}

// Add records id in the sink, returning true iff it was not already
// present (i.e. this is the first occurrence reported this scan).
func (s *Sink) Add(id uint32) bool {
	word := id / 64
	mask := uint64(1) << (id % 64)
	if int(word) >= len(s.bits) {
		// Grow to cover an id beyond what NewSink was sized for, rather
		// than silently dropping it or panicking mid-scan.
		grown := make([]uint64, word+1)
		copy(grown, s.bits)
		s.bits = grown
	}
	if s.bits[word]&mask != 0 {
		return false
	}
	s.bits[word] |= mask
	s.ids = append(s.ids, id)
	return true
}

// Contains reports whether id has been recorded.
func (s *Sink) Contains(id uint32) bool {
	word := id / 64
	if int(word) >= len(s.bits) {
		return false
	}
	return s.bits[word]&(uint64(1)<<(id%64)) != 0
}

// IDs returns the recorded pattern ids in emission order (input-offset-major,
// state-output-order within an offset; see §4.5). Callers needing a
// deterministic cross-run order must sort the result themselves.
func (s *Sink) IDs() []uint32 {
	return s.ids
}

// Len reports how many distinct ids have been recorded.
func (s *Sink) Len() int { return len(s.ids) }

// Reset clears the sink for reuse across scans, without reallocating its
// backing storage.
func (s *Sink) Reset() {
	for i := range s.bits {
		s.bits[i] = 0
	}
	s.ids = s.ids[:0]
}

// SinkPool is a pool of reset-and-reuse [Sink] values, all sized for the
// same maxID. It exists for the concurrency contract of §5: many goroutines
// may [Context.Search] the same prepared context concurrently, each
// supplying its own sink; a SinkPool amortizes the sinks' allocation cost.
type SinkPool struct {
	pool  sync.Pool
	maxID uint32
}

// NewSinkPool returns a pool of sinks sized to cover ids [0, maxID].
func NewSinkPool(maxID uint32) *SinkPool {
	p := &SinkPool{maxID: maxID}
	p.pool.New = func() any { return NewSink(p.maxID) }
	return p
}

// Get returns a reset, ready-to-use sink from the pool.
func (p *SinkPool) Get() *Sink {
	return p.pool.Get().(*Sink)
}

// Put resets sink and returns it to the pool.
func (p *SinkPool) Put(sink *Sink) {
	sink.Reset()
	p.pool.Put(sink)
}
