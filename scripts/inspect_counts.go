//go:build ignore

package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/DeNeutoy/vampire/vocab"
)

func main() {
	topN := flag.Int("top", 20, "Number of tokens to print")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: inspect_counts [-top N] <word_counts.json|cbor>")
		os.Exit(1)
	}

	counts, err := vocab.LoadCounts(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load counts: %v\n", err)
		os.Exit(1)
	}

	type entry struct {
		token string
		count float64
	}
	ranked := make([]entry, 0, len(counts))
	for tok, c := range counts {
		ranked = append(ranked, entry{tok, c})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].token < ranked[j].token
	})

	fmt.Printf("%d distinct tokens, %.0f total\n", len(counts), counts.Total())
	n := *topN
	if n > len(ranked) {
		n = len(ranked)
	}
	for _, e := range ranked[:n] {
		fmt.Printf("%10.0f  %s\n", e.count, e.token)
	}
}
