package vocab

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fxamacker/cbor/v2"
)

// Counts holds corpus-wide token frequencies keyed by token text. The
// background log-frequency computation reads these from disk; the
// preprocessing pipeline produces them.
type Counts map[string]float64

// Total returns the sum of all counts.
func (c Counts) Total() float64 {
	var total float64
	for _, n := range c {
		total += n
	}
	return total
}

// LoadCounts reads token counts from path, choosing the decoder by file
// extension: .json or .cbor.
func LoadCounts(path string) (Counts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read counts file: %w", err)
	}

	var c Counts
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("failed to decode JSON counts: %w", err)
		}
	case ".cbor":
		if err := cbor.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("failed to decode CBOR counts: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported counts format %q", ext)
	}
	return c, nil
}

// SaveCounts writes token counts to path, choosing the encoder by file
// extension exactly as LoadCounts does.
func SaveCounts(path string, c Counts) error {
	var (
		data []byte
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		data, err = json.Marshal(c)
		if err != nil {
			return fmt.Errorf("failed to encode JSON counts: %w", err)
		}
	case ".cbor":
		data, err = cbor.Marshal(c)
		if err != nil {
			return fmt.Errorf("failed to encode CBOR counts: %w", err)
		}
	default:
		return fmt.Errorf("unsupported counts format %q", ext)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write counts file: %w", err)
	}
	return nil
}
