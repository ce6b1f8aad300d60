// Package tokenizer splits raw text into the word-level tokens the
// preprocessing pipeline counts and indexes.
package tokenizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/DeNeutoy/vampire/vocab"
)

// WordTokenizer splits on whitespace and punctuation, keeping punctuation
// runes as their own tokens. Sentinel tokens such as the sentence markers
// pass through unsplit even though they contain punctuation.
type WordTokenizer struct {
	lowercase      bool
	stripAccents   bool
	neverSplit     map[string]bool
	sentinelStarts map[rune]bool
}

// NewWordTokenizer creates a word tokenizer. lowercase folds tokens to
// lower case; stripAccents removes combining marks (NFD, drop Mn, NFC).
func NewWordTokenizer(lowercase, stripAccents bool) *WordTokenizer {
	t := &WordTokenizer{
		lowercase:    lowercase,
		stripAccents: stripAccents,
		neverSplit: map[string]bool{
			vocab.PaddingToken: true,
			vocab.UnknownToken: true,
			vocab.StartToken:   true,
			vocab.EndToken:     true,
		},
		sentinelStarts: make(map[rune]bool),
	}
	for ns := range t.neverSplit {
		for _, r := range ns {
			t.sentinelStarts[r] = true
			break
		}
	}
	return t
}

// Tokenize splits text into word and punctuation tokens, applying the
// configured normalization to everything except never-split sentinels.
func (t *WordTokenizer) Tokenize(text string) []string {
	raw := t.split(text)

	out := make([]string, 0, len(raw))
	for _, tok := range raw {
		if tok == "" {
			continue
		}
		if t.neverSplit[tok] {
			out = append(out, tok)
			continue
		}
		if t.lowercase {
			tok = strings.ToLower(tok)
		}
		if t.stripAccents {
			tok = stripMarks(tok)
		}
		out = append(out, tok)
	}
	return out
}

// split walks the text rune by rune: whitespace ends the current token
// and is dropped, punctuation ends it and is kept as a token of its own.
// Never-split sentinels are matched before either rule applies, so the
// punctuation inside @@start@@ does not shred the marker.
func (t *WordTokenizer) split(text string) []string {
	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	rs := []rune(text)
	i := 0
	for i < len(rs) {
		r := rs[i]

		if t.sentinelStarts[r] {
			// Suffix conversion is only paid at positions where a
			// sentinel could begin.
			suffix := string(rs[i:])
			matched := false
			for ns := range t.neverSplit {
				if strings.HasPrefix(suffix, ns) {
					flush()
					tokens = append(tokens, ns)
					i += len([]rune(ns))
					matched = true
					break
				}
			}
			if matched {
				continue
			}
		}

		switch {
		case unicode.IsSpace(r):
			flush()
		case isPunctRune(r):
			flush()
			tokens = append(tokens, string(r))
		default:
			current.WriteRune(r)
		}
		i++
	}
	flush()
	return tokens
}

// stripMarks removes combining accent marks: decompose, drop the marks,
// recompose. The chain is built per call because transform chains carry
// internal state and are not safe for concurrent use.
func stripMarks(token string) string {
	chain := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(chain, token)
	if err != nil {
		return token
	}
	return out
}

// MarkSentenceBoundaries wraps a token sequence in the @@start@@ and
// @@end@@ markers the background-frequency computation special-cases.
func MarkSentenceBoundaries(tokens []string) []string {
	out := make([]string, 0, len(tokens)+2)
	out = append(out, vocab.StartToken)
	out = append(out, tokens...)
	return append(out, vocab.EndToken)
}
