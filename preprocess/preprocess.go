// Package preprocess turns a raw text corpus into the artifacts the
// trainer consumes: a namespaced vocabulary, token counts, and batched
// bag-of-words matrices.
//
// The pipeline reads one document per line, tokenizes in parallel,
// builds a frequency-ranked vocabulary, and then encodes the corpus
// batch by batch, handing each encoded batch to an optional callback.
package preprocess

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gonum.org/v1/gonum/mat"

	"github.com/DeNeutoy/vampire/internal/cache"
	"github.com/DeNeutoy/vampire/nn"
	"github.com/DeNeutoy/vampire/tokenizer"
	"github.com/DeNeutoy/vampire/vocab"
)

// DefaultNamespace is the vocabulary namespace documents are indexed
// under when the config does not name one.
const DefaultNamespace = "vampire"

var tracer = otel.Tracer("vampire-preprocess")

// Config controls a preprocessing run. The zero value is usable: it
// tokenizes case-sensitively, keeps the full vocabulary, and picks a
// worker count from the machine.
type Config struct {
	// MaxVocabSize caps the vocabulary at the most frequent tokens.
	// Zero or negative keeps everything.
	MaxVocabSize int
	// Workers sets the tokenization parallelism. Zero or negative
	// derives it from GOMAXPROCS, capped at 16.
	Workers int
	// Lowercase folds tokens to lower case.
	Lowercase bool
	// StripAccents removes combining marks from tokens.
	StripAccents bool
	// SentenceMarkers wraps every document in @@start@@ / @@end@@.
	SentenceMarkers bool
	// BatchSize is the number of documents per encoded batch.
	BatchSize int
	// Namespace is the vocabulary namespace for document tokens.
	Namespace string
	// OnBatch, when set, receives every encoded batch in corpus order.
	// Returning an error aborts the run.
	OnBatch func(Batch) error
}

// Batch is one encoded slice of the corpus.
type Batch struct {
	// Texts holds the raw documents, one per row.
	Texts []string
	// Tokens holds the padded token index batch.
	Tokens *nn.TokenBatch
	// BOW holds one bag-of-words row per document.
	BOW *mat.Dense
}

// Result summarizes a completed run.
type Result struct {
	Vocabulary *vocab.Vocabulary
	Counts     vocab.Counts
	Documents  int
	Tokens     int
	Batches    int
}

// Pipeline encodes corpora under a fixed configuration. A pipeline may
// be reused across corpora; its row cache carries over.
type Pipeline struct {
	cfg   Config
	tok   *tokenizer.WordTokenizer
	cache cache.RowCache
}

// New creates a pipeline, applying config defaults.
func New(cfg Config) *Pipeline {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 32
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
		if cfg.Workers > 16 {
			cfg.Workers = 16
		}
	}
	if cfg.Namespace == "" {
		cfg.Namespace = DefaultNamespace
	}
	return &Pipeline{
		cfg:   cfg,
		tok:   tokenizer.NewWordTokenizer(cfg.Lowercase, cfg.StripAccents),
		cache: cache.NewMapCache(),
	}
}

// Run reads one document per line from r and preprocesses the corpus.
// Blank lines are skipped. The returned result owns the vocabulary and
// raw token counts; encoded batches are delivered through the OnBatch
// callback as they are produced.
func (p *Pipeline) Run(ctx context.Context, r io.Reader) (*Result, error) {
	ctx, span := tracer.Start(ctx, "pipeline.Run",
		trace.WithAttributes(attribute.Int("batch_size", p.cfg.BatchSize)))
	defer span.End()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lines, err := readCorpus(ctx, r)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, errors.New("corpus contains no documents")
	}

	docs := p.tokenizeAll(ctx, lines)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	v, counts := p.buildVocabulary(docs)
	width := v.Size(p.cfg.Namespace)
	if width == 0 {
		return nil, errors.New("corpus produced no tokens")
	}

	res := &Result{
		Vocabulary: v,
		Counts:     counts,
		Documents:  len(lines),
	}
	for _, doc := range docs {
		res.Tokens += len(doc)
	}
	documentsProcessed.Add(float64(res.Documents))
	tokensProcessed.Add(float64(res.Tokens))

	span.SetAttributes(
		attribute.Int("documents", res.Documents),
		attribute.Int("vocab_size", width),
	)

	if err := p.encode(ctx, lines, docs, v, res); err != nil {
		return nil, err
	}

	log.Info().
		Int("documents", res.Documents).
		Int("tokens", res.Tokens).
		Int("vocab_size", width).
		Int("batches", res.Batches).
		Msg("Corpus preprocessed")
	return res, nil
}

// readCorpus collects the non-blank lines of r. Lines up to 1 MiB are
// accepted.
func readCorpus(ctx context.Context, r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read corpus: %w", err)
	}
	return lines, nil
}

// tokenizeAll tokenizes every line, fanning the work out across the
// configured workers in contiguous chunks.
func (p *Pipeline) tokenizeAll(ctx context.Context, lines []string) [][]string {
	_, span := tracer.Start(ctx, "pipeline.tokenize")
	defer span.End()
	start := time.Now()

	docs := make([][]string, len(lines))
	numWorkers := p.cfg.Workers

	var wg sync.WaitGroup
	chunkSize := (len(lines) + numWorkers - 1) / numWorkers
	for w := 0; w < numWorkers; w++ {
		lo := w * chunkSize
		if lo >= len(lines) {
			break
		}
		hi := lo + chunkSize
		if hi > len(lines) {
			hi = len(lines)
		}

		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				toks := p.tok.Tokenize(lines[i])
				if p.cfg.SentenceMarkers {
					toks = tokenizer.MarkSentenceBoundaries(toks)
				}
				docs[i] = toks
			}
		}(lo, hi)
	}
	wg.Wait()

	tokenizeDuration.Observe(time.Since(start).Seconds())
	return docs
}

// buildVocabulary ranks tokens by corpus frequency (ties broken
// alphabetically) and indexes the top MaxVocabSize of them. The
// returned counts cover the whole corpus, including tokens the cap
// excluded from the vocabulary.
func (p *Pipeline) buildVocabulary(docs [][]string) (*vocab.Vocabulary, vocab.Counts) {
	counts := make(vocab.Counts)
	for _, doc := range docs {
		for _, tok := range doc {
			counts[tok]++
		}
	}

	type tokenCount struct {
		token string
		count float64
	}
	ranked := make([]tokenCount, 0, len(counts))
	for tok, c := range counts {
		ranked = append(ranked, tokenCount{tok, c})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].token < ranked[j].token
	})
	if p.cfg.MaxVocabSize > 0 && len(ranked) > p.cfg.MaxVocabSize {
		ranked = ranked[:p.cfg.MaxVocabSize]
	}

	v := vocab.NewVocabulary()
	for _, tc := range ranked {
		v.AddToken(tc.token, p.cfg.Namespace)
	}
	return v, counts
}

// encode walks the corpus in batches, serving rows from the cache where
// possible and computing the rest, then hands each batch to OnBatch.
func (p *Pipeline) encode(ctx context.Context, lines []string, docs [][]string, v *vocab.Vocabulary, res *Result) error {
	ctx, span := tracer.Start(ctx, "pipeline.encode")
	defer span.End()

	width := v.Size(p.cfg.Namespace)
	for lo := 0; lo < len(lines); lo += p.cfg.BatchSize {
		if err := ctx.Err(); err != nil {
			return err
		}
		hi := lo + p.cfg.BatchSize
		if hi > len(lines) {
			hi = len(lines)
		}
		start := time.Now()

		batchLines := lines[lo:hi]
		batchDocs := docs[lo:hi]

		ids := make([][]int, len(batchDocs))
		for i, doc := range batchDocs {
			ids[i] = make([]int, len(doc))
			for j, tok := range doc {
				ids[i][j] = v.Index(tok, p.cfg.Namespace)
			}
		}
		tokens := nn.NewTokenBatch(ids)

		bow := mat.NewDense(len(batchLines), width, nil)
		var missed []int
		for i, line := range batchLines {
			if p.cache.CopyInto(line, bow.RawRowView(i)) {
				cacheHits.Inc()
			} else {
				cacheMisses.Inc()
				missed = append(missed, i)
			}
		}

		if len(missed) > 0 {
			fresh := nn.ComputeBOW(tokens.SelectRows(missed), width, nil)
			for k, i := range missed {
				row := fresh.RawRowView(k)
				copy(bow.RawRowView(i), row)
				p.cache.Put(batchLines[i], row)
			}
		}

		encodeDuration.Observe(time.Since(start).Seconds())
		res.Batches++

		if p.cfg.OnBatch != nil {
			if err := p.cfg.OnBatch(Batch{Texts: batchLines, Tokens: tokens, BOW: bow}); err != nil {
				return fmt.Errorf("batch callback failed: %w", err)
			}
		}
	}

	span.SetAttributes(attribute.Int("batches", res.Batches))
	return nil
}
