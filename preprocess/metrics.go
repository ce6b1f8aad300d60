package preprocess

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	documentsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vampire_preprocess_documents_total",
		Help: "Total number of documents read from the corpus",
	})

	tokensProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vampire_preprocess_tokens_total",
		Help: "Total number of tokens produced by the tokenizer",
	})

	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vampire_preprocess_cache_hits_total",
		Help: "Encoded rows served from the row cache",
	})

	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vampire_preprocess_cache_misses_total",
		Help: "Encoded rows computed because the row cache missed",
	})

	tokenizeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "vampire_preprocess_tokenize_duration_seconds",
		Help:    "Time spent tokenizing the corpus",
		Buckets: prometheus.DefBuckets,
	})

	encodeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "vampire_preprocess_encode_duration_seconds",
		Help:    "Time spent encoding one batch into bag-of-words rows",
		Buckets: prometheus.DefBuckets,
	})
)
