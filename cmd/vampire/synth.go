package main

import (
	"math/rand/v2"
	"strings"
)

var synthWords = []string{
	"lorem", "ipsum", "dolor", "sit", "amet", "consectetur", "adipiscing", "elit",
	"sed", "do", "eiusmod", "tempor", "incididunt", "ut", "labore", "et", "dolore",
	"magna", "aliqua", "enim", "ad", "minim", "veniam", "quis", "nostrud",
	"exercitation", "ullamco", "laboris", "nisi", "aliquip", "ex", "ea",
	"commodo", "consequat", "duis", "aute", "irure", "in", "reprehenderit",
	"voluptate", "velit", "esse", "cillum", "eu", "fugiat", "nulla",
	"pariatur", "excepteur", "sint", "occaecat", "cupidatat", "non", "proident",
	"sunt", "culpa", "qui", "officia", "deserunt", "mollit", "anim", "id", "est", "laborum",
}

// synthCorpus builds n single-line lorem-style documents, used to
// exercise the pipeline without a real corpus.
func synthCorpus(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		sentences := 1 + rand.IntN(3)
		for j := 0; j < sentences; j++ {
			wordCount := 5 + rand.IntN(10)
			for k := 0; k < wordCount; k++ {
				w := synthWords[rand.IntN(len(synthWords))]
				if k == 0 {
					w = strings.ToUpper(w[:1]) + w[1:]
				}
				b.WriteString(w)
				if k < wordCount-1 {
					b.WriteByte(' ')
				}
			}
			b.WriteByte('.')
			if j < sentences-1 {
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
