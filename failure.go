package mpmac

// maxQueueStates is a hard safety cap on the BFS failure queue (§7,
// §9: "a sound implementation should use a growable queue or compute an
// upper bound from the pattern set size"). The queue itself is the
// self-growing ringQueue, so this is reached only by pathological inputs
// far beyond any real pattern set, not the reference's fixed 65536 slots.
const maxQueueStates = 1 << 28

// buildFailure runs the BFS failure-link construction of §4.3 over t and
// returns the failure table (indexed by state, root's entry unused/zero).
//
// Unlike classical Aho-Corasick, it does not union output sets along
// failure links: this port's scan kernel restarts the walk at every input
// offset (scan.go), so any occurrence of a pattern is reached directly
// through its own terminal state when the walk restarts at that
// occurrence's start — merging the failure target's outputs into a
// state's own would only double-report embedded/suffix patterns already
// found by a later restart. See DESIGN.md's failure.go entry for a
// worked repro (patterns {"A","AA"} against "AA").
func buildFailure(t *trie) ([]int32, error) {
	n := t.stateCount()
	failure := make([]int32, n)

	queue := newRingQueue[int32](n)
	enqueued := 0

	// Direct children of the root have failure 0. Because every trie state
	// other than the root is created fresh for exactly one (state, byte)
	// pair, rows[0][c] > 0 identifies a real child uniquely per c.
	for c := 0; c < 256; c++ {
		if s := t.rows[0][c]; s > 0 {
			failure[s] = 0
			queue.PushBack(s)
			enqueued++
			if enqueued > maxQueueStates {
				return nil, ErrQueueOverflow
			}
		}
	}

	for queue.Len() > 0 {
		r := queue.PopFront()
		row := &t.rows[r]
		for c := 0; c < 256; c++ {
			u := row[c]
			if u == -1 {
				continue
			}
			queue.PushBack(u)
			enqueued++
			if enqueued > maxQueueStates {
				return nil, ErrQueueOverflow
			}

			state := failure[r]
			for t.rows[state][c] == -1 {
				state = failure[state]
			}
			failure[u] = t.rows[state][c]
		}
	}

	return failure, nil
}
