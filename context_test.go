package mpmac

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPattern struct {
	content string
	id      uint32
	noCase  bool
}

func prepareContext(t *testing.T, pats []testPattern, opts ...Option) *Context {
	t.Helper()
	ctx := NewContext(opts...)
	for _, p := range pats {
		var err error
		if p.noCase {
			err = ctx.AddPatternCaseInsensitive([]byte(p.content), 0, 0, p.id, 0, 0)
		} else {
			err = ctx.AddPatternCaseSensitive([]byte(p.content), 0, 0, p.id, 0, 0)
		}
		require.NoError(t, err)
	}
	require.NoError(t, ctx.Prepare())
	return ctx
}

func runSearch(t *testing.T, ctx *Context, input string) (ids []uint32, raw uint64) {
	t.Helper()
	sink := NewSink(ctx.MaxID())
	raw = ctx.Search(nil, sink, []byte(input))
	ids = append([]uint32(nil), sink.IDs()...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, raw
}

// §8 scenario 1
func TestScenario1_SingleCaseSensitiveMatch(t *testing.T) {
	ctx := prepareContext(t, []testPattern{{"abcd", 0, false}})
	ids, raw := runSearch(t, ctx, "abcdefghjiklmnopqrstuvwxyz")
	assert.Equal(t, []uint32{0}, ids)
	assert.Equal(t, uint64(1), raw)
}

// §8 scenario 2
func TestScenario2_NoMatch(t *testing.T) {
	ctx := prepareContext(t, []testPattern{{"abce", 0, false}})
	ids, raw := runSearch(t, ctx, "abcdefghjiklmnopqrstuvwxyz")
	assert.Empty(t, ids)
	assert.Equal(t, uint64(0), raw)
}

// §8 scenario 3
func TestScenario3_MultipleCaseSensitiveMatches(t *testing.T) {
	ctx := prepareContext(t, []testPattern{{"abcd", 0, false}, {"bcde", 1, false}, {"fghj", 2, false}})
	ids, raw := runSearch(t, ctx, "abcdefghjiklmnopqrstuvwxyz")
	assert.Equal(t, []uint32{0, 1, 2}, ids)
	assert.Equal(t, uint64(3), raw)
}

// §8 scenario 4
func TestScenario4_CaseInsensitiveMatches(t *testing.T) {
	ctx := prepareContext(t, []testPattern{{"ABCD", 0, true}, {"bCdEfG", 1, true}, {"fghJikl", 2, true}})
	ids, raw := runSearch(t, ctx, "abcdefghjiklmnopqrstuvwxyz")
	assert.Equal(t, []uint32{0, 1, 2}, ids)
	assert.Equal(t, uint64(3), raw)
}

// §8 scenario 5
func TestScenario5_NestedRepeats(t *testing.T) {
	ctx := prepareContext(t, []testPattern{
		{"A", 0, false},
		{"AA", 1, false},
		{"AAA", 2, false},
		{"AAAAA", 3, false},
		{"AAAAAAAAAA", 4, false},
		{repeatStr("A", 30), 5, false},
	})
	ids, raw := runSearch(t, ctx, repeatStr("A", 30))
	assert.Equal(t, []uint32{0, 1, 2, 3, 4, 5}, ids)
	assert.Equal(t, uint64(135), raw)
}

// §8 scenario 6
func TestScenario6_OverlappingMatches(t *testing.T) {
	ctx := prepareContext(t, []testPattern{{"he", 1, false}, {"she", 2, false}, {"his", 3, false}, {"hers", 4, false}})
	ids, raw := runSearch(t, ctx, "she")
	assert.Equal(t, uint64(2), raw)
	assert.Equal(t, []uint32{1, 2}, ids)
}

// §8 scenario 7
func TestScenario7_CaseSensitiveMustNotMatchLowercasedOccurrence(t *testing.T) {
	ctx := prepareContext(t, []testPattern{{"Works", 0, true}, {"Works", 1, false}})
	ids, raw := runSearch(t, ctx, "works")
	assert.Equal(t, []uint32{0}, ids)
	assert.Equal(t, uint64(1), raw)
}

// §8 scenario 8
func TestScenario8_SubstringNotAtWordStart(t *testing.T) {
	ctx := prepareContext(t, []testPattern{{"ONE", 0, false}})
	ids, raw := runSearch(t, ctx, "tone")
	assert.Empty(t, ids)
	assert.Equal(t, uint64(0), raw)
}

func TestInvariant_EmptyInputProducesZeroMatches(t *testing.T) {
	ctx := prepareContext(t, []testPattern{{"abc", 0, false}})
	ids, raw := runSearch(t, ctx, "")
	assert.Empty(t, ids)
	assert.Equal(t, uint64(0), raw)
}

func TestInvariant_EmptyPatternSetReturnsZero(t *testing.T) {
	ctx := NewContext()
	require.NoError(t, ctx.Prepare())
	sink := NewSink(0)
	raw := ctx.Search(nil, sink, []byte("anything"))
	assert.Equal(t, uint64(0), raw)
	assert.Equal(t, 0, sink.Len())
}

func TestInvariant_IdempotentReportingAcrossRepeats(t *testing.T) {
	ctx := prepareContext(t, []testPattern{{"ab", 0, false}})
	ids, raw := runSearch(t, ctx, "ababababab")
	assert.Equal(t, []uint32{0}, ids, "pattern occurring k>=1 times appears exactly once")
	assert.True(t, raw >= 5)
}

func TestInvariant_AddingSamePatternTwiceIsEquivalentToOnce(t *testing.T) {
	once := prepareContext(t, []testPattern{{"abcd", 0, false}})
	ctxTwice := NewContext()
	require.NoError(t, ctxTwice.AddPatternCaseSensitive([]byte("abcd"), 0, 0, 0, 0, 0))
	require.NoError(t, ctxTwice.AddPatternCaseSensitive([]byte("abcd"), 0, 0, 0, 0, 0))
	require.NoError(t, ctxTwice.Prepare())

	idsOnce, rawOnce := runSearch(t, once, "xxabcdxx")
	idsTwice, rawTwice := runSearch(t, ctxTwice, "xxabcdxx")
	assert.Equal(t, idsOnce, idsTwice)
	assert.Equal(t, rawOnce, rawTwice)
}

func TestContext_SearchBeforePreparePanics(t *testing.T) {
	ctx := NewContext()
	require.NoError(t, ctx.AddPatternCaseSensitive([]byte("a"), 0, 0, 0, 0, 0))
	assert.Panics(t, func() { ctx.Search(nil, NewSink(0), []byte("a")) })
}

func TestContext_PrepareTwicePanics(t *testing.T) {
	ctx := prepareContext(t, []testPattern{{"a", 0, false}})
	assert.Panics(t, func() { ctx.Prepare() })
}

func TestContext_ForceBothWidthsBuildsSecondaryTable(t *testing.T) {
	ctx := prepareContext(t, []testPattern{{"a", 0, false}}, WithForceBothWidths())
	assert.Equal(t, Width16, ctx.delta.Width)
	require.NotNil(t, ctx.delta32)
	assert.Equal(t, Width32, ctx.delta32.Width)
}

func TestContext_ThreadContextAccumulatesStats(t *testing.T) {
	ctx := prepareContext(t, []testPattern{{"abc", 0, false}})
	tctx := NewThreadContext(0)
	sink := NewSink(ctx.MaxID())
	ctx.Search(tctx, sink, []byte("xxabcxx"))
	ctx.Search(tctx, sink, []byte("abc"))

	stats := tctx.Stats()
	assert.Equal(t, uint64(2), stats.Scans)
	assert.Equal(t, uint64(10), stats.Bytes)
}

func TestContext_ConcurrentSearchWithSeparateSinks(t *testing.T) {
	ctx := prepareContext(t, []testPattern{{"needle", 0, false}})
	done := make(chan []uint32, 8)
	for i := 0; i < 8; i++ {
		go func() {
			sink := NewSink(ctx.MaxID())
			ctx.Search(nil, sink, []byte("hay needle stack needle"))
			done <- sink.IDs()
		}()
	}
	for i := 0; i < 8; i++ {
		ids := <-done
		assert.Equal(t, []uint32{0}, ids)
	}
}

func TestContext_DestroyReleasesTables(t *testing.T) {
	ctx := prepareContext(t, []testPattern{{"a", 0, false}})
	ctx.Destroy()
	assert.Nil(t, ctx.delta)
	assert.Nil(t, ctx.outputs)
	assert.Nil(t, ctx.patlist)
}

func TestContext_Stats(t *testing.T) {
	ctx := prepareContext(t, []testPattern{{"abc", 0, false}, {"bcd", 1, false}})
	stats := ctx.Stats()
	assert.Equal(t, 2, stats.Patterns)
	assert.Greater(t, stats.States, 1)
	assert.NotEmpty(t, stats.String())
}

func repeatStr(s string, n int) string {
	out := make([]byte, 0, len(s)*n)
	for i := 0; i < n; i++ {
		out = append(out, s...)
	}
	return string(out)
}
