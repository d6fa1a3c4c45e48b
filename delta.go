package mpmac

// DeltaWidth selects the cell width of a compiled delta table (§3, §4.4).
type DeltaWidth uint8

const (
	// Width16 packs each cell into a uint16: bit 15 is the output flag,
	// bits 0-14 hold the next state (0-32766). Used when state_count <
	// 32767.
	Width16 DeltaWidth = iota
	// Width32 packs each cell into a uint32: bit 24 is the output flag,
	// bits 0-23 hold the next state (0-2^24-1). Bits 25-31 are reserved
	// and always zero.
	Width32
)

const (
	outputBit16 = uint16(1) << 15
	stateMask16 = outputBit16 - 1 // 0x7FFF

	outputBit32 = uint32(1) << 24
	stateMask32 = outputBit32 - 1 // 0xFFFFFF

	maxStates16 = 32767 // first state count that no longer fits Width16
)

// outputVerifyBit marks, within an encoded output-table entry, that the
// pattern requires a scan-time case-sensitive re-check (§3's "auxiliary bit
// inside each stored pattern id"). This port widens the id field to 24
// bits (see SPEC_FULL.md open-question 2), so the flag lives at bit 24
// rather than bit 16.
const outputVerifyBit = uint32(1) << 24

// DeltaTable is the final compiled transition table consumed by the scan
// kernel (§3, §4.4). Exactly one of D16/D32 is populated, selected by
// Width; WithForceBothWidths builds a second DeltaTable rather than filling
// both fields of one.
type DeltaTable struct {
	Width  DeltaWidth
	States int
	D16    []uint16 // len States*256, valid when Width == Width16
	D32    []uint32 // len States*256, valid when Width == Width32
}

// OutputTable maps state -> encoded pattern ids that state emits (§3). Entry
// encoding: low 24 bits hold the pattern id; bit 24 set iff the pattern
// requires case-sensitive verification at scan time.
type OutputTable [][]uint32

// selectWidth picks the delta table width for a given state count, per
// §4.4's variant-selection rule.
func selectWidth(stateCount int) DeltaWidth {
	if stateCount < maxStates16 {
		return Width16
	}
	return Width32
}

// compileOutputTable encodes t's own (never failure-merged; see failure.go)
// output sets into the final OutputTable, given the frozen pattern array
// for id/verify lookup.
func compileOutputTable(t *trie, patterns []Pattern) OutputTable {
	out := make(OutputTable, t.stateCount())
	for state, indices := range t.outputs {
		if len(indices) == 0 {
			continue
		}
		entries := make([]uint32, len(indices))
		for i, pidx := range indices {
			p := &patterns[pidx]
			entry := p.ID
			if p.needsVerify() {
				entry |= outputVerifyBit
			}
			entries[i] = entry
		}
		out[state] = entries
	}
	return out
}

// compileDelta folds t's goto table into a dense delta table of the given
// width, per §4.4: a cell holds goto[r][c] when that transition exists, or
// 0 (the root) otherwise -- the failureless departure from classical AC.
// The output bit is OR'd into every cell whose target state has a
// non-empty output set.
func compileDelta(t *trie, width DeltaWidth) *DeltaTable {
	n := t.stateCount()
	dt := &DeltaTable{Width: width, States: n}

	switch width {
	case Width16:
		if n >= maxStates16 {
			panic("mpmac: compileDelta: state count too large for Width16")
		}
		cells := make([]uint16, n*256)
		for state := 0; state < n; state++ {
			row := &t.rows[state]
			base := state * 256
			for c := 0; c < 256; c++ {
				target := row[c]
				if target == -1 {
					target = 0
				}
				cell := uint16(target)
				if len(t.outputs[target]) > 0 {
					cell |= outputBit16
				}
				cells[base+c] = cell
			}
		}
		dt.D16 = cells
	case Width32:
		cells := make([]uint32, n*256)
		for state := 0; state < n; state++ {
			row := &t.rows[state]
			base := state * 256
			for c := 0; c < 256; c++ {
				target := row[c]
				if target == -1 {
					target = 0
				}
				cell := uint32(target)
				if len(t.outputs[target]) > 0 {
					cell |= outputBit32
				}
				cells[base+c] = cell
			}
		}
		dt.D32 = cells
	default:
		panic("mpmac: compileDelta: unknown width")
	}

	return dt
}
