// Package main provides rmidx-inspect, a tool that builds a learned index
// over a newline-delimited list of integer keys and prints its metadata.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/outline-labs/rmidx/pkg/rmidx"
)

func main() {
	maxSegments := flag.Int("max-segments", rmidx.MediumSegments, "MAX_SEGMENTS for the build")
	query := flag.Int64("find", 0, "key to look up after building (only used with -find-set)")
	findSet := flag.Bool("find-set", false, "look up -find after building")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: rmidx-inspect [flags] <keys-file>")
		os.Exit(2)
	}

	keys, err := readKeys(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading keys: %v\n", err)
		os.Exit(1)
	}

	cfg := rmidx.Config{MaxSegments: *maxSegments}
	index, err := rmidx.Build(keys, rmidx.Identity[int64], rmidx.NaturalOrder[int64], cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error building index: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("size=%d segments=%d\n", index.Size(), index.SegmentCount())

	if *findSet {
		pos := index.Find(*query)
		if pos == index.Size() {
			fmt.Printf("find(%d): not found\n", *query)
		} else {
			fmt.Printf("find(%d): position %d\n", *query, pos)
		}
	}

	md, err := index.ExportMetadata()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error exporting metadata: %v\n", err)
		os.Exit(1)
	}
	doc, err := json.Marshal(md)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error encoding metadata: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(doc)
	fmt.Println()
}

// readKeys reads one int64 key per non-blank line, in file order. It does
// not sort or deduplicate: rmidx.Build rejects unsorted input itself.
func readKeys(path string) ([]int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var keys []int64
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		k, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", line, err)
		}
		keys = append(keys, k)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}
