package preprocess

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestPipelineCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := New(Config{})
	_, err := p.Run(ctx, strings.NewReader("some text\n"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestPipelineCancelBetweenBatches(t *testing.T) {
	var docs strings.Builder
	for i := 0; i < 6; i++ {
		fmt.Fprintf(&docs, "document number %d\n", i)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var delivered int
	p := New(Config{
		BatchSize: 1,
		OnBatch: func(Batch) error {
			delivered++
			if delivered == 2 {
				cancel()
			}
			return nil
		},
	})

	_, err := p.Run(ctx, strings.NewReader(docs.String()))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	// Cancellation lands between batches, so exactly the two delivered
	// batches made it out.
	if delivered != 2 {
		t.Errorf("expected 2 batches before cancellation, got %d", delivered)
	}
}
