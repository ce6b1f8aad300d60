//go:build ignore

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"

	"github.com/DeNeutoy/vampire/internal/arrowio"
	"github.com/DeNeutoy/vampire/internal/client"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	addr := "localhost:3000"
	if len(os.Args) > 1 {
		addr = os.Args[1]
	}

	log.Info().Str("addr", addr).Msg("Connecting to Flight server")

	c, err := client.NewFlightClient(addr)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create client")
	}
	defer c.Close()

	texts := []string{
		"the cat sat on the mat",
		"a dog barked at the mailman",
		"bag of words rows ride in fixed size lists",
	}
	bow := mat.NewDense(3, 8, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 8; j++ {
			bow.Set(i, j, float64((i+j)%3))
		}
	}

	rec, err := arrowio.BOWRecord(memory.NewGoAllocator(), texts, bow)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build record batch")
	}
	defer rec.Release()

	log.Info().Int("rows", 3).Msg("Sending record batch")

	// Retry loop: the server may still be starting.
	for i := 0; i < 10; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = c.DoPut(ctx, "vampire_bow", rec)
		cancel()
		if err == nil {
			break
		}
		log.Warn().Err(err).Msg("DoPut failed, retrying...")
		time.Sleep(1 * time.Second)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("DoPut failed after retries")
	}

	log.Info().Msg("Record batch accepted")
	fmt.Println("VERIFICATION PASSED")
}
