// Command mpmacbench is a small diagnostic harness for the mpmac matcher:
// it loads a pattern file, prepares a matcher, scans an input file, and
// prints construction/search statistics (the print_info/print_search_stats
// surface of §6, exposed here instead of logged, since the library itself
// never logs).
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/coregx/mpmac"
)

func main() {
	patternsPath := flag.String("patterns", "", "path to a pattern file (one pattern per line: id<TAB>flags<TAB>bytes; flags is \"cs\" or \"ci\")")
	inputPath := flag.String("input", "", "path to the buffer to scan")
	forceBoth := flag.Bool("force-both-widths", false, "build both 16-bit and 24-bit-in-32 delta tables")
	flag.Parse()

	if *patternsPath == "" || *inputPath == "" {
		fmt.Fprintln(os.Stderr, "usage: mpmacbench -patterns FILE -input FILE")
		os.Exit(2)
	}

	ctx, err := loadContext(*patternsPath, *forceBoth)
	if err != nil {
		fmt.Fprintln(os.Stderr, "mpmacbench:", err)
		os.Exit(1)
	}
	if err := ctx.Prepare(); err != nil {
		fmt.Fprintln(os.Stderr, "mpmacbench: prepare:", err)
		os.Exit(1)
	}
	fmt.Println(ctx.Stats())

	buf, err := os.ReadFile(*inputPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "mpmacbench:", err)
		os.Exit(1)
	}

	tctx := mpmac.NewThreadContext(0)
	sink := mpmac.NewSink(ctx.MaxID())
	raw := ctx.Search(tctx, sink, buf)

	fmt.Printf("raw matches: %d, distinct ids: %d\n", raw, sink.Len())
	fmt.Println(tctx.Stats())
}

func loadContext(path string, forceBoth bool) (*mpmac.Context, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var opts []mpmac.Option
	if forceBoth {
		opts = append(opts, mpmac.WithForceBothWidths())
	}
	ctx := mpmac.NewContext(opts...)

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.SplitN(line, "\t", 3)
		if len(fields) != 3 {
			return nil, fmt.Errorf("line %d: expected id\\tflags\\tpattern, got %q", lineNo, line)
		}
		id, err := strconv.ParseUint(fields[0], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad id: %w", lineNo, err)
		}
		switch fields[1] {
		case "ci":
			err = ctx.AddPatternCaseInsensitive([]byte(fields[2]), 0, 0, uint32(id), 0, 0)
		case "cs":
			err = ctx.AddPatternCaseSensitive([]byte(fields[2]), 0, 0, uint32(id), 0, 0)
		default:
			return nil, fmt.Errorf("line %d: flags must be \"cs\" or \"ci\", got %q", lineNo, fields[1])
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ctx, nil
}
