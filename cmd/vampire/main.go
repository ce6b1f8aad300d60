package main

import (
	"context"
	"flag"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/pprof"
	"strings"
	"sync"
	"time"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"

	"github.com/DeNeutoy/vampire/internal/arrowio"
	"github.com/DeNeutoy/vampire/internal/client"
	"github.com/DeNeutoy/vampire/preprocess"
	"github.com/DeNeutoy/vampire/vocab"
)

var (
	trainPath       = flag.String("train", "", "Path to training corpus (one document per line)")
	synthDocs       = flag.Int("synth", 0, "Generate N synthetic documents instead of reading -train")
	outDir          = flag.String("out", "vampire_out", "Output directory for vocabulary and counts")
	vocabSize       = flag.Int("vocab-size", 10000, "Maximum vocabulary size (0 = unlimited)")
	namespace       = flag.String("namespace", preprocess.DefaultNamespace, "Vocabulary namespace for document tokens")
	workers         = flag.Int("workers", 0, "Tokenization workers (0 = derive from CPU count)")
	batchSize       = flag.Int("batch-size", 32, "Documents per encoded batch")
	lowercase       = flag.Bool("lowercase", true, "Lowercase tokens")
	stripAccents    = flag.Bool("strip-accents", false, "Strip combining accent marks from tokens")
	sentenceMarkers = flag.Bool("sentence-markers", false, "Wrap documents in @@start@@/@@end@@ markers")
	countsFormat    = flag.String("counts-format", "json", "Serialization for word counts: json or cbor")
	arrowPath       = flag.String("arrow", "", "Write bag-of-words batches to an Arrow IPC file")
	serverAddr      = flag.String("server", "", "Flight server address to upload batches to (e.g. localhost:3000)")
	datasetName     = flag.String("dataset", "vampire_bow", "Target dataset name on the Flight server")
	metricsAddr     = flag.String("metrics", "", "Address to serve Prometheus metrics on (e.g. :8080)")
	enableOTel      = flag.Bool("otel", false, "Enable OpenTelemetry tracing (stdout)")
	cpuProfile      = flag.String("cpuprofile", "", "Write cpu profile to file")
)

var (
	batchesUploaded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vampire_upload_batches_total",
		Help: "Batches successfully uploaded to the Flight server",
	})

	uploadFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vampire_upload_failures_total",
		Help: "Batch uploads that failed",
	})

	uploadsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vampire_upload_rejected_total",
		Help: "Batch uploads skipped because the circuit breaker was open",
	})
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Caller().Logger()

	flag.Parse()

	if *countsFormat != "json" && *countsFormat != "cbor" {
		log.Fatal().Str("format", *countsFormat).Msg("Unsupported counts format (use json or cbor)")
	}
	if *trainPath == "" && *synthDocs <= 0 {
		log.Fatal().Msg("No corpus: set -train or -synth")
	}

	if *enableOTel {
		shutdown, err := initTracer()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize tracer")
		}
		defer func() { _ = shutdown(context.Background()) }()
	}

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create CPU profile file")
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal().Err(err).Msg("Could not start CPU profile")
		}
		defer pprof.StopCPUProfile()
	}

	if *metricsAddr != "" {
		http.Handle("/metrics", promhttp.Handler())
		go func() {
			log.Info().Str("addr", *metricsAddr).Msg("Serving Prometheus metrics")
			if err := http.ListenAndServe(*metricsAddr, nil); err != nil {
				log.Error().Err(err).Msg("Metrics server failed")
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var corpus io.Reader
	if *synthDocs > 0 {
		log.Info().Int("documents", *synthDocs).Msg("Generating synthetic corpus")
		corpus = strings.NewReader(synthCorpus(*synthDocs))
	} else {
		f, err := os.Open(*trainPath)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open corpus")
		}
		defer func() { _ = f.Close() }()
		corpus = f
	}

	var up *uploader
	if *serverAddr != "" {
		fc, err := client.NewFlightClient(*serverAddr)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create flight client")
		}
		defer func() {
			if err := fc.Close(); err != nil {
				log.Warn().Err(err).Msg("Failed to close flight client")
			}
		}()
		log.Info().Str("addr", *serverAddr).Str("dataset", *datasetName).Msg("Connected to Flight server")
		up = newUploader(fc, *datasetName)
	}

	var bw *arrowio.BOWWriter
	if *arrowPath != "" {
		f, err := os.Create(*arrowPath)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create Arrow output file")
		}
		defer func() { _ = f.Close() }()
		bw = arrowio.NewBOWWriter(memory.NewGoAllocator(), f)
	}

	pipe := preprocess.New(preprocess.Config{
		MaxVocabSize:    *vocabSize,
		Workers:         *workers,
		Lowercase:       *lowercase,
		StripAccents:    *stripAccents,
		SentenceMarkers: *sentenceMarkers,
		BatchSize:       *batchSize,
		Namespace:       *namespace,
		OnBatch: func(b preprocess.Batch) error {
			if bw != nil {
				if err := bw.Write(b.Texts, b.BOW); err != nil {
					return err
				}
			}
			if up != nil {
				return up.upload(ctx, b)
			}
			return nil
		},
	})

	start := time.Now()
	res, err := pipe.Run(ctx, corpus)
	if err != nil {
		log.Fatal().Err(err).Msg("Preprocessing failed")
	}
	if up != nil {
		up.wait()
	}
	if bw != nil {
		if err := bw.Close(); err != nil {
			log.Fatal().Err(err).Msg("Failed to finalize Arrow stream")
		}
	}

	if err := res.Vocabulary.SaveTo(filepath.Join(*outDir, "vocabulary")); err != nil {
		log.Fatal().Err(err).Msg("Failed to save vocabulary")
	}
	countsPath := filepath.Join(*outDir, "word_counts."+*countsFormat)
	if err := vocab.SaveCounts(countsPath, res.Counts); err != nil {
		log.Fatal().Err(err).Msg("Failed to save word counts")
	}

	log.Info().
		Int("documents", res.Documents).
		Int("tokens", res.Tokens).
		Int("batches", res.Batches).
		Int("vocab_size", res.Vocabulary.Size(*namespace)).
		Dur("elapsed", time.Since(start)).
		Str("out", *outDir).
		Msg("Preprocessing complete")
}

// uploader ships encoded batches to a Flight server. Uploads overlap
// with encoding, bounded by a semaphore, and a circuit breaker sheds
// batches while the server is misbehaving.
type uploader struct {
	client  *client.FlightClient
	breaker *client.CircuitBreaker
	dataset string
	alloc   memory.Allocator
	sem     *semaphore.Weighted
	wg      sync.WaitGroup
}

func newUploader(fc *client.FlightClient, dataset string) *uploader {
	return &uploader{
		client:  fc,
		breaker: client.NewCircuitBreaker(5, 10*time.Second),
		dataset: dataset,
		alloc:   memory.NewGoAllocator(),
		sem:     semaphore.NewWeighted(4),
	}
}

func (u *uploader) upload(ctx context.Context, b preprocess.Batch) error {
	if !u.breaker.Allow() {
		uploadsRejected.Inc()
		log.Warn().Stringer("breaker", u.breaker.State()).Msg("Skipping upload, circuit breaker open")
		return nil
	}

	rec, err := arrowio.BOWRecord(u.alloc, b.Texts, b.BOW)
	if err != nil {
		return err
	}

	if err := u.sem.Acquire(ctx, 1); err != nil {
		rec.Release()
		return err
	}
	u.wg.Add(1)
	go func() {
		defer u.wg.Done()
		defer u.sem.Release(1)
		defer rec.Release()

		putCtx, cancel := context.WithTimeout(ctx, 60*time.Second)
		defer cancel()

		if err := u.client.DoPut(putCtx, u.dataset, rec); err != nil {
			u.breaker.Failure()
			uploadFailures.Inc()
			log.Error().Err(err).Msg("Flight DoPut failed")
			return
		}
		u.breaker.Success()
		batchesUploaded.Inc()
	}()
	return nil
}

// wait blocks until every in-flight upload has finished.
func (u *uploader) wait() {
	u.wg.Wait()
}

func initTracer() (func(context.Context) error, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String("vampire"),
		)),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	return tp.Shutdown, nil
}
