package mpmac

// trie holds the goto table (§3) during construction: a dense array of
// 256-wide rows, one per state, plus each state's own output set (pattern
// indices terminating there). Unlike classical Aho-Corasick, this set is
// never unioned with a failure target's outputs (see failure.go).
//
// The sentinel value -1 denotes "no transition" (closeRoot rewrites the
// root's remaining -1 cells to 0 once every pattern has been inserted).
type trie struct {
	rows    [][256]int32
	outputs [][]int32 // outputs[state] = pattern indices (into the frozen array)
}

// newTrie returns a trie containing only the root state (state 0), with
// every transition set to -1 (no transition yet).
func newTrie() *trie {
	t := &trie{}
	t.newState()
	return t
}

func (t *trie) newState() int32 {
	var row [256]int32
	for i := range row {
		row[i] = -1
	}
	t.rows = append(t.rows, row)
	t.outputs = append(t.outputs, nil)
	return int32(len(t.rows) - 1)
}

func (t *trie) stateCount() int { return len(t.rows) }

// fillLevel1Gap pre-allocates a first-level child of the root for every
// distinct first byte (folded) across patterns; the main insertion loop
// would create each of these children anyway. This mirrors the
// reference's DetermineLevel1Gap (§9): behaviourally harmless, it just
// creates the root's children earlier, and the state count is the same
// either way. Retained as the default; callers may skip it via
// WithSkipLevel1Gap.
func (t *trie) fillLevel1Gap(patterns []Pattern) {
	var seen [256]bool
	for i := range patterns {
		p := &patterns[i]
		if len(p.folded) == 0 {
			continue
		}
		seen[p.folded[0]] = true
	}
	for c := 0; c < 256; c++ {
		if seen[c] && t.rows[0][c] == -1 {
			t.rows[0][c] = t.newState()
		}
	}
}

// insert walks down the trie on pattern's folded bytes, allocating new
// states on the first mismatch, and unions patternIndex into the terminal
// state's output set (no duplicates possible: each pattern is inserted at
// most once, by construction of PatternStore.Add).
func (t *trie) insert(pattern []byte, patternIndex int32) {
	state := int32(0)
	for _, c := range pattern {
		next := t.rows[state][c]
		if next == -1 {
			next = t.newState()
			t.rows[state][c] = next
		}
		state = next
	}
	t.outputs[state] = append(t.outputs[state], patternIndex)
}

// closeRoot rewrites any remaining -1 transitions out of state 0 to a
// self-loop on 0, per §4.2's invariant that row 0 has no -1 entries after
// goto construction.
func (t *trie) closeRoot() {
	row := &t.rows[0]
	for c := 0; c < 256; c++ {
		if row[c] == -1 {
			row[c] = 0
		}
	}
}

// buildTrie runs the full §4.2 pipeline over the frozen pattern array,
// using folded bytes (case-insensitive walk; case-sensitive re-checking
// happens at scan time, not here). skipLevel1Gap disables the optional
// pre-fill pass.
func buildTrie(patterns []Pattern, skipLevel1Gap bool) *trie {
	t := newTrie()
	if !skipLevel1Gap {
		t.fillLevel1Gap(patterns)
	}
	for i := range patterns {
		t.insert(patterns[i].folded, int32(i))
	}
	t.closeRoot()
	return t
}
