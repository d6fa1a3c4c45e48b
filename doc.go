// Package mpmac implements a multi-pattern exact-string matcher based on the
// Aho-Corasick construction, compiled into a dense "failureless" delta table
// and scanned with a restart-at-every-offset kernel (PFAC).
//
// It is built for signature matching: callers register byte patterns tagged
// with a caller-chosen id and an optional case-insensitivity flag, call
// [Context.Prepare] once, and then call [Context.Search] any number of times,
// from any number of goroutines, each with its own [Sink].
//
// A typical use:
//
//	ctx := mpmac.NewContext()
//	ctx.AddPatternCaseSensitive([]byte("abcd"), 0, 0, 0, 0, 0)
//	ctx.AddPatternCaseInsensitive([]byte("EFGH"), 0, 0, 1, 0, 0)
//	if err := ctx.Prepare(); err != nil {
//		log.Fatal(err)
//	}
//	sink := mpmac.NewSink(ctx.MaxID())
//	ctx.Search(nil, sink, []byte("xxabcdxxefghxx"))
//	fmt.Println(sink.IDs()) // [0 1]
//
// The matcher does not support regular expressions, anchored matching,
// offset/depth filtering, streaming across buffer boundaries, or pattern
// removal after preparation. See the package's DESIGN.md for the full
// rationale.
package mpmac
