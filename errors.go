package mpmac

import "errors"

// Sentinel errors for the construction-time error taxonomy of the matcher.
// They are returned, not panicked; callers that want to distinguish them
// should use [errors.Is].
var (
	// ErrPatternArrayAlloc names the pattern-array allocation failure of the
	// construction error taxonomy. No code path in this package returns it:
	// a failed Go allocation panics instead of returning an error.
	ErrPatternArrayAlloc = errors.New("mpmac: pattern array allocation failed")

	// ErrQueueOverflow is returned by [Context.Prepare] if the BFS failure
	// queue would need to grow past its hard safety cap. The queue itself
	// is a growable ring buffer (see ring.go), so this is reachable only
	// as a last-resort guard against pathological pattern sets, not the
	// fixed 65536-slot overflow of the reference implementation.
	ErrQueueOverflow = errors.New("mpmac: BFS construction queue overflow")

	// ErrPatternIDTooLarge is returned by AddPattern* when id exceeds the
	// scan-time encoding width (see DESIGN.md, output-table encoding).
	ErrPatternIDTooLarge = errors.New("mpmac: pattern id exceeds encoding width")
)

// ConstructionError wraps one of the sentinel errors above with the
// operation that produced it, for more informative logging by callers.
type ConstructionError struct {
	Op  string
	Err error
}

func (e *ConstructionError) Error() string {
	return "mpmac: " + e.Op + ": " + e.Err.Error()
}

func (e *ConstructionError) Unwrap() error {
	return e.Err
}
