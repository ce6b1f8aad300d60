// Package vocab maps tokens to integer indices across independent
// namespaces, mirroring the vocabulary layout the training pipeline
// serializes to disk. Padded namespaces reserve index 0 for padding and
// index 1 for out-of-vocabulary tokens; label-like namespaces index
// densely from 0.
package vocab

import (
	"bufio"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Sentinel tokens shared with the preprocessing pipeline and the
// background-frequency computation.
const (
	PaddingToken = "@@PADDING@@"
	UnknownToken = "@@UNKNOWN@@"
	StartToken   = "@@start@@"
	EndToken     = "@@end@@"
)

// nonPaddedNamespacesFile names the namespace-pattern manifest inside a
// serialized vocabulary directory.
const nonPaddedNamespacesFile = "non_padded_namespaces.txt"

// defaultNonPaddedPatterns mark namespaces that hold class labels rather
// than text, so they get neither padding nor unknown entries.
var defaultNonPaddedPatterns = []string{"*tags", "*labels"}

// Vocabulary is a set of namespaced token <-> index mappings. It is safe
// for concurrent use.
type Vocabulary struct {
	mu           sync.RWMutex
	tokenToIndex map[string]map[string]int
	indexToToken map[string]map[int]string
	nonPadded    []string
}

// NewVocabulary returns an empty vocabulary with the default non-padded
// namespace patterns.
func NewVocabulary() *Vocabulary {
	return &Vocabulary{
		tokenToIndex: make(map[string]map[string]int),
		indexToToken: make(map[string]map[int]string),
		nonPadded:    append([]string(nil), defaultNonPaddedPatterns...),
	}
}

// IsPadded reports whether the namespace reserves padding and unknown
// entries. Namespaces matching a non-padded pattern (e.g. "labels") do
// not.
func (v *Vocabulary) IsPadded(namespace string) bool {
	for _, pattern := range v.nonPadded {
		if ok, _ := path.Match(pattern, namespace); ok {
			return false
		}
		if pattern == namespace {
			return false
		}
	}
	return true
}

// ensureNamespace initializes the maps for a namespace, seeding the
// padding and unknown entries when the namespace is padded. Callers must
// hold the write lock.
func (v *Vocabulary) ensureNamespace(namespace string) {
	if _, ok := v.tokenToIndex[namespace]; ok {
		return
	}
	t2i := make(map[string]int)
	i2t := make(map[int]string)
	if v.IsPadded(namespace) {
		t2i[PaddingToken] = 0
		i2t[0] = PaddingToken
		t2i[UnknownToken] = 1
		i2t[1] = UnknownToken
	}
	v.tokenToIndex[namespace] = t2i
	v.indexToToken[namespace] = i2t
}

// AddToken inserts token into the namespace if absent and returns its
// index.
func (v *Vocabulary) AddToken(token, namespace string) int {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.ensureNamespace(namespace)
	if idx, ok := v.tokenToIndex[namespace][token]; ok {
		return idx
	}
	idx := len(v.tokenToIndex[namespace])
	v.tokenToIndex[namespace][token] = idx
	v.indexToToken[namespace][idx] = token
	return idx
}

// IndexOf returns the exact index of token in the namespace.
func (v *Vocabulary) IndexOf(token, namespace string) (int, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	idx, ok := v.tokenToIndex[namespace][token]
	return idx, ok
}

// Index resolves token to an index, falling back to the unknown entry
// for padded namespaces. Missing tokens in a non-padded namespace are a
// caller bug and panic, since there is no index that could stand in for
// them.
func (v *Vocabulary) Index(token, namespace string) int {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if idx, ok := v.tokenToIndex[namespace][token]; ok {
		return idx
	}
	if idx, ok := v.tokenToIndex[namespace][UnknownToken]; ok {
		return idx
	}
	panic(fmt.Sprintf("Index: token %q not found in non-padded namespace %q", token, namespace))
}

// TokenFromIndex returns the token stored at index in the namespace.
func (v *Vocabulary) TokenFromIndex(index int, namespace string) (string, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	token, ok := v.indexToToken[namespace][index]
	return token, ok
}

// Size returns the number of entries in the namespace, including any
// padding and unknown entries. Unknown namespaces have size 0.
func (v *Vocabulary) Size(namespace string) int {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return len(v.tokenToIndex[namespace])
}

// Namespaces lists the populated namespaces in sorted order.
func (v *Vocabulary) Namespaces() []string {
	v.mu.RLock()
	defer v.mu.RUnlock()

	out := make([]string, 0, len(v.tokenToIndex))
	for ns := range v.tokenToIndex {
		out = append(out, ns)
	}
	sort.Strings(out)
	return out
}

// SaveTo serializes the vocabulary into dir: one <namespace>.txt per
// namespace with one token per line, plus the non-padded pattern
// manifest. Padded namespaces omit the padding entry and start with the
// unknown token, so line k holds the token at index k+1.
func (v *Vocabulary) SaveTo(dir string) error {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create vocabulary dir: %w", err)
	}

	manifest := strings.Join(v.nonPadded, "\n") + "\n"
	if err := os.WriteFile(filepath.Join(dir, nonPaddedNamespacesFile), []byte(manifest), 0o644); err != nil {
		return fmt.Errorf("failed to write namespace manifest: %w", err)
	}

	for ns, i2t := range v.indexToToken {
		start := 0
		if v.IsPadded(ns) {
			start = 1 // skip the padding entry
		}
		var b strings.Builder
		for i := start; i < len(i2t); i++ {
			b.WriteString(i2t[i])
			b.WriteByte('\n')
		}
		if err := os.WriteFile(filepath.Join(dir, ns+".txt"), []byte(b.String()), 0o644); err != nil {
			return fmt.Errorf("failed to write namespace %s: %w", ns, err)
		}
	}
	return nil
}

// LoadFrom reads a vocabulary previously written by SaveTo.
func LoadFrom(dir string) (*Vocabulary, error) {
	v := NewVocabulary()

	patterns, err := readLines(filepath.Join(dir, nonPaddedNamespacesFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read namespace manifest: %w", err)
	}
	if len(patterns) > 0 {
		v.nonPadded = patterns
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary dir: %w", err)
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == nonPaddedNamespacesFile || !strings.HasSuffix(name, ".txt") {
			continue
		}
		ns := strings.TrimSuffix(name, ".txt")
		tokens, err := readLines(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read namespace %s: %w", ns, err)
		}
		v.mu.Lock()
		v.ensureNamespace(ns)
		v.mu.Unlock()
		for _, tok := range tokens {
			v.AddToken(tok, ns)
		}
	}
	return v, nil
}

// readLines returns the non-empty lines of path in order.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}
