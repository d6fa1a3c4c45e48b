package mpmac

import "fmt"

// Option configures a Context at construction time.
type Option func(*Context)

// WithSkipLevel1Gap disables the trie builder's optional level-1 gap
// pre-fill (§4.2, §9's DetermineLevel1Gap). Off by default: the pre-fill
// is retained for compatibility since it is behaviourally harmless. It only
// creates the root's first-level children ahead of the main insertion
// pass, so the state count is the same with or without it.
func WithSkipLevel1Gap() Option {
	return func(c *Context) { c.skipLevel1Gap = true }
}

// WithForceBothWidths builds both the 16-bit and 24-bit-in-32 delta table
// variants at Prepare time when the state count selects the 16-bit table
// (§4.4: "a global flag may force building both"). When the state count
// selects the 32-bit table, only that table is built. Intended for
// callers (e.g. an offload path, out of scope for this core) that require
// a specific table width.
func WithForceBothWidths() Option {
	return func(c *Context) { c.forceBothWidths = true }
}

// Context is a matcher under construction, and then a prepared, read-only,
// reentrant matcher (§4.7, §5). The zero value is not usable; construct one
// with [NewContext].
type Context struct {
	store *PatternStore

	skipLevel1Gap   bool
	forceBothWidths bool

	prepared bool
	delta    *DeltaTable // the table Search uses
	delta32  *DeltaTable // populated only when forceBothWidths forced a 32-bit table alongside a 16-bit delta
	outputs  OutputTable
	patlist  []patternListEntry
	maxID    uint32

	stats Stats
}

// ThreadContext holds per-thread scan scratch state. Per §6, this core only
// ever needs statistics counters; it carries no mutable matching state
// because the delta table and output table are read-only after Prepare.
type ThreadContext struct {
	scans uint64
	raw   uint64
	bytes uint64
}

// NewContext returns an empty matcher ready for AddPattern* calls.
func NewContext(opts ...Option) *Context {
	c := &Context{store: NewPatternStore()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewThreadContext returns scratch state for one scanning thread. reserved
// is accepted for symmetry with the reference surface (§6) and currently
// unused.
func NewThreadContext(reserved int) *ThreadContext {
	return &ThreadContext{}
}

// AddPatternCaseSensitive registers bytes under id as a case-sensitive
// pattern. offset, depth and sid are accepted and ignored by this core
// (§6, §9); they exist to match a broader family of matcher APIs.
func (c *Context) AddPatternCaseSensitive(bytes []byte, offset, depth uint16, id uint32, sid uint32, flags Flag) error {
	if c.prepared {
		panic("mpmac: AddPatternCaseSensitive called after Prepare")
	}
	return c.store.AddCaseSensitive(bytes, id, flags)
}

// AddPatternCaseInsensitive is AddPatternCaseSensitive, forcing NoCase.
func (c *Context) AddPatternCaseInsensitive(bytes []byte, offset, depth uint16, id uint32, sid uint32, flags Flag) error {
	if c.prepared {
		panic("mpmac: AddPatternCaseInsensitive called after Prepare")
	}
	return c.store.AddCaseInsensitive(bytes, id, flags)
}

// MaxID returns the largest pattern id added so far (0 if none). Callers
// sizing their own [Sink] (outside a [SinkPool]) should use this value.
// Valid before and after Prepare; returns the cached value after Destroy.
func (c *Context) MaxID() uint32 {
	if c.store != nil {
		return c.store.MaxID()
	}
	return c.maxID
}

// Prepare freezes the pattern set and builds the compiled automaton
// (§4.7). If no patterns were added it succeeds and leaves a root-only
// context (a one-state delta table): Search on such a context always
// returns 0.
//
// Prepare must be called exactly once; calling it twice panics. It is not
// safe to call AddPattern* after Prepare.
func (c *Context) Prepare() error {
	if c.prepared {
		panic("mpmac: Prepare called twice")
	}

	if c.store.Len() == 0 {
		c.prepared = true
		c.outputs = OutputTable{}
		c.patlist = nil
		c.delta = &DeltaTable{Width: Width16, States: 1, D16: make([]uint16, 256)}
		return nil
	}

	maxID := c.store.MaxID()
	patterns := c.store.Freeze()

	t := buildTrie(patterns, c.skipLevel1Gap)
	if _, err := buildFailure(t); err != nil {
		return &ConstructionError{Op: "prepare", Err: err}
	}

	width := selectWidth(t.stateCount())
	c.delta = compileDelta(t, width)
	if c.forceBothWidths && width == Width16 {
		c.delta32 = compileDelta(t, Width32)
	}
	c.outputs = compileOutputTable(t, patterns)
	c.patlist = buildPatternList(patterns, maxID)
	c.maxID = maxID

	c.stats = Stats{
		Patterns:    len(patterns),
		States:      t.stateCount(),
		DeltaWidth:  width,
		DeltaBytes:  deltaSizeBytes(c.delta),
		OutputBytes: outputSizeBytes(c.outputs),
	}

	c.prepared = true
	return nil
}

// Search runs the §4.5 scan kernel over buf against the prepared context,
// populating sink with every matched pattern id (deduplicated) and
// returning the raw match-event count (every emission, including repeats
// of the same id). tctx may be nil; when non-nil its counters are updated.
//
// Search allocates nothing beyond what sink needs to record new ids, and
// does not mutate the context: it may be
// called concurrently by multiple goroutines against the same Context, as
// long as each supplies its own sink and thread context (§5).
func (c *Context) Search(tctx *ThreadContext, sink *Sink, buf []byte) uint64 {
	if !c.prepared {
		panic("mpmac: Search called before Prepare")
	}

	var raw uint64
	if len(buf) > 0 && c.store.Len() > 0 {
		switch c.delta.Width {
		case Width16:
			raw = search16(c.delta.D16, c.outputs, c.patlist, buf, sink)
		case Width32:
			raw = search32(c.delta.D32, c.outputs, c.patlist, buf, sink)
		}
	}

	if tctx != nil {
		tctx.scans++
		tctx.raw += raw
		tctx.bytes += uint64(len(buf))
	}

	return raw
}

// Destroy releases the delta table(s), output table and pattern list. The
// Context must not be used afterwards.
func (c *Context) Destroy() {
	c.delta = nil
	c.delta32 = nil
	c.outputs = nil
	c.patlist = nil
	c.store = nil
}

// DestroyThreadContext exists for symmetry with the reference surface
// (§6); a ThreadContext holds no resources that outlive Go's GC.
func DestroyThreadContext(tctx *ThreadContext) {}

// Stats reports static construction statistics (patterns, state count,
// delta width/size), the diagnostic surface backing print_info (§6).
type Stats struct {
	Patterns    int
	States      int
	DeltaWidth  DeltaWidth
	DeltaBytes  int
	OutputBytes int
}

func (c *Context) Stats() Stats { return c.stats }

func (s Stats) String() string {
	return fmt.Sprintf("mpmac: %d patterns, %d states, delta width=%d (%d bytes), output table %d bytes",
		s.Patterns, s.States, widthBits(s.DeltaWidth), s.DeltaBytes, s.OutputBytes)
}

// SearchStats reports the per-thread counters backing print_search_stats
// (§6): a diagnostic snapshot, not consumed internally.
type SearchStats struct {
	Scans uint64
	Raw   uint64
	Bytes uint64
}

func (t *ThreadContext) Stats() SearchStats {
	return SearchStats{Scans: t.scans, Raw: t.raw, Bytes: t.bytes}
}

func (s SearchStats) String() string {
	return fmt.Sprintf("mpmac: %d scans, %d raw matches, %d bytes scanned", s.Scans, s.Raw, s.Bytes)
}

func widthBits(w DeltaWidth) int {
	if w == Width16 {
		return 16
	}
	return 32
}

func deltaSizeBytes(d *DeltaTable) int {
	if d == nil {
		return 0
	}
	if d.Width == Width16 {
		return len(d.D16) * 2
	}
	return len(d.D32) * 4
}

func outputSizeBytes(o OutputTable) int {
	n := 0
	for _, entries := range o {
		n += len(entries) * 4
	}
	return n
}
