package mpmac

// patternListEntry is the §4.1 PatternList entry used at scan time: the
// exact bytes a case-sensitive re-check must match against, or a nil/empty
// entry when no re-check is needed (pattern added case-insensitively, or
// case-sensitive but already all-lowercase).
type patternListEntry struct {
	exact []byte
}

// buildPatternList constructs the scan-time pattern list, indexed by
// pattern id up to maxID (§4.7 step 3): every pattern that needs a
// case-sensitive re-check gets an entry; everything else is left zero.
func buildPatternList(patterns []Pattern, maxID uint32) []patternListEntry {
	list := make([]patternListEntry, maxID+1)
	for i := range patterns {
		p := &patterns[i]
		if p.needsVerify() {
			list[p.ID] = patternListEntry{exact: p.exact}
		}
	}
	return list
}

// verify performs the scan-time case-sensitive re-check of §4.5: an
// equal-length byte compare of entry.exact against buf[at:at+len(exact)].
func (e *patternListEntry) verify(buf []byte, at int) bool {
	n := len(e.exact)
	if at+n > len(buf) {
		return false
	}
	for i := 0; i < n; i++ {
		if buf[at+i] != e.exact[i] {
			return false
		}
	}
	return true
}

// search16 runs the §4.5 scan kernel against a Width16 delta table.
// It reports the raw match-event count and populates sink.
func search16(delta []uint16, outputs OutputTable, patlist []patternListEntry, buf []byte, sink *Sink) uint64 {
	var raw uint64
	n := len(buf)
	for i := 0; i < n; i++ {
		var state uint32
		for j := i; j < n; j++ {
			c := toLowerASCII(buf[j])
			cell := delta[state*256+uint32(c)]
			state = uint32(cell & stateMask16)
			if state == 0 {
				break
			}
			if cell&outputBit16 == 0 {
				continue
			}
			for _, enc := range outputs[state] {
				id := enc &^ outputVerifyBit
				if enc&outputVerifyBit != 0 {
					if !patlist[id].verify(buf, i) {
						break
					}
				}
				sink.Add(id)
				raw++
			}
		}
	}
	return raw
}

// search32 is search16's analogue over a Width32 delta table.
func search32(delta []uint32, outputs OutputTable, patlist []patternListEntry, buf []byte, sink *Sink) uint64 {
	var raw uint64
	n := len(buf)
	for i := 0; i < n; i++ {
		var state uint32
		for j := i; j < n; j++ {
			c := toLowerASCII(buf[j])
			cell := delta[state*256+uint32(c)]
			state = cell & stateMask32
			if state == 0 {
				break
			}
			if cell&outputBit32 == 0 {
				continue
			}
			for _, enc := range outputs[state] {
				id := enc &^ outputVerifyBit
				if enc&outputVerifyBit != 0 {
					if !patlist[id].verify(buf, i) {
						break
					}
				}
				sink.Add(id)
				raw++
			}
		}
	}
	return raw
}
