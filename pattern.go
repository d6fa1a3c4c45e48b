package mpmac

// Flag is a bitset of per-pattern options accepted by AddPattern*.
type Flag uint8

const (
	// NoCase marks a pattern as case-insensitive: it is matched against
	// the ASCII-folded input and does not require the scan-time
	// case-sensitive re-check.
	NoCase Flag = 1 << iota
)

// maxPatternID is the largest pattern id the scan-time output encoding can
// carry (see SPEC_FULL.md, open-question decision 2). This port
// widens the reference's 16-bit cap to 24 bits: ids up to 2^24-1 survive
// encoding; the low 24 bits hold the id, bit 24 holds the case-verify flag.
const maxPatternID = 1<<24 - 1

// Pattern is a single registered signature, keyed by caller-chosen ID.
//
// original holds the bytes exactly as supplied. folded holds original with
// ASCII uppercase lowered. exact holds the bytes that must match byte-for-
// byte at scan time when a case-sensitive re-check is required: it equals
// folded when the pattern is case-insensitive (or was already all-lowercase),
// and equals original otherwise.
type Pattern struct {
	ID       uint32
	Flags    Flag
	original []byte
	folded   []byte
	exact    []byte
}

// Len returns the pattern's length in bytes.
func (p *Pattern) Len() int { return len(p.original) }

// NoCase reports whether the pattern was registered case-insensitively.
func (p *Pattern) NoCase() bool { return p.Flags&NoCase != 0 }

// needsVerify reports whether a scan-time byte-exact re-check is required:
// true iff exact differs from folded, i.e. the pattern is case-sensitive
// AND its original bytes contain ASCII uppercase. A case-sensitive pattern
// that happens to already be all-lowercase needs no re-check: the folded
// automaton walk already enforces an exact match.
func (p *Pattern) needsVerify() bool {
	return !bytesEqual(p.exact, p.folded)
}

// PatternStore accumulates unique patterns (by id) during ingestion and
// freezes them into a canonical array at prepare time. It is not safe for
// concurrent use; see SPEC_FULL.md §5 (construction is single-threaded).
type PatternStore struct {
	byID    map[uint32]int // id -> index into patterns, for dedup
	patterns []Pattern

	maxLen int
	minLen int
	maxID  uint32
	frozen bool
}

// NewPatternStore returns an empty pattern store ready for Add calls.
func NewPatternStore() *PatternStore {
	return &PatternStore{byID: make(map[uint32]int)}
}

// Add stores bytes under id with the given flags, folding ASCII case and
// deriving the exact/verify bytes as described on Pattern. A zero-length
// pattern is silently ignored (§7 InvalidArgument). An id already present
// is silently ignored (§7 IdCollision): the first insertion wins.
//
// Add returns ErrPatternIDTooLarge if id exceeds the scan-time encoding
// width; this is the one ingestion-time failure a caller must check for,
// since it cannot be recovered from at Prepare time.
func (s *PatternStore) Add(bytes []byte, id uint32, flags Flag) error {
	if s.frozen {
		panic("mpmac: Add called after Prepare")
	}
	if len(bytes) == 0 {
		return nil
	}
	if id > maxPatternID {
		return ErrPatternIDTooLarge
	}
	if _, dup := s.byID[id]; dup {
		return nil
	}

	p := Pattern{ID: id, Flags: flags}
	p.original = append([]byte(nil), bytes...)
	p.folded = foldASCII(p.original)

	if flags&NoCase != 0 || bytesEqual(p.original, p.folded) {
		p.exact = p.folded
	} else {
		p.exact = append([]byte(nil), p.original...)
	}

	idx := len(s.patterns)
	s.patterns = append(s.patterns, p)
	s.byID[id] = idx

	if len(bytes) > s.maxLen {
		s.maxLen = len(bytes)
	}
	if s.minLen == 0 || len(bytes) < s.minLen {
		s.minLen = len(bytes)
	}
	if id > s.maxID {
		s.maxID = id
	}
	return nil
}

// AddCaseSensitive registers bytes under id without forcing NoCase.
func (s *PatternStore) AddCaseSensitive(bytes []byte, id uint32, flags Flag) error {
	return s.Add(bytes, id, flags&^NoCase)
}

// AddCaseInsensitive registers bytes under id, forcing NoCase.
func (s *PatternStore) AddCaseInsensitive(bytes []byte, id uint32, flags Flag) error {
	return s.Add(bytes, id, flags|NoCase)
}

// Len reports the number of distinct patterns currently stored.
func (s *PatternStore) Len() int { return len(s.patterns) }

// MaxID reports the largest id added so far.
func (s *PatternStore) MaxID() uint32 { return s.maxID }

// Freeze discards the insertion index and returns the canonical, frozen
// pattern array in insertion order. Calling Freeze twice panics: prepare is
// not idempotent (§4.1).
func (s *PatternStore) Freeze() []Pattern {
	if s.frozen {
		panic("mpmac: PatternStore.Freeze called twice")
	}
	s.frozen = true
	s.byID = nil
	return s.patterns
}

// foldASCII returns a copy of b with ASCII uppercase letters lowered.
func foldASCII(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		out[i] = toLowerASCII(c)
	}
	return out
}

func toLowerASCII(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
