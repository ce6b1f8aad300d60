package nn

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/DeNeutoy/vampire/vocab"
)

// ComputeBOW computes a bag-of-words matrix with one row per document:
// the count of every vocabulary index among the document's non-padding
// tokens. When stopwords is non-nil it must have length vocabSize, and
// the columns flagged true are removed from the output, narrowing it to
// vocabSize minus the number of stopwords.
//
// Token indices outside [0, vocabSize) panic: the batch was encoded
// against a different vocabulary.
func ComputeBOW(batch *TokenBatch, vocabSize int, stopwords []bool) *mat.Dense {
	if stopwords != nil && len(stopwords) != vocabSize {
		panic(fmt.Sprintf("nn: stopword indicator length %d does not match vocabulary size %d", len(stopwords), vocabSize))
	}

	rows, cols := batch.Dims()
	width := vocabSize
	if stopwords != nil {
		for _, drop := range stopwords {
			if drop {
				width--
			}
		}
	}

	out := mat.NewDense(rows, width, nil)
	counts := make([]float64, vocabSize)
	for i := 0; i < rows; i++ {
		for k := range counts {
			counts[k] = 0
		}
		for j := 0; j < cols; j++ {
			idx := batch.At(i, j)
			if idx == PaddingIndex {
				continue
			}
			if idx < 0 || idx >= vocabSize {
				panic(fmt.Sprintf("nn: token index %d out of range for vocabulary size %d", idx, vocabSize))
			}
			counts[idx]++
		}

		if stopwords == nil {
			out.SetRow(i, counts)
			continue
		}
		row := out.RawRowView(i)
		k := 0
		for idx, c := range counts {
			if stopwords[idx] {
				continue
			}
			row[k] = c
			k++
		}
	}

	bowDocuments.Add(float64(rows))
	return out
}

// BackgroundLogFrequency loads precomputed word counts from countsPath
// and builds the background log-frequency vector over the namespace: one
// entry per vocabulary index, holding the log of that token's corpus
// count. Padding, unknown and sentence-marker entries, along with tokens
// absent from the counts, are floored to 1e-12 before the log.
func BackgroundLogFrequency(countsPath string, v *vocab.Vocabulary, namespace string) (*mat.VecDense, error) {
	counts, err := vocab.LoadCounts(countsPath)
	if err != nil {
		return nil, err
	}

	size := v.Size(namespace)
	if size == 0 {
		return nil, fmt.Errorf("vocabulary namespace %q is empty", namespace)
	}

	vec := mat.NewVecDense(size, nil)
	for i := 0; i < size; i++ {
		freq := 1e-12
		if token, ok := v.TokenFromIndex(i, namespace); ok && !isSpecialToken(token) {
			if c, found := counts[token]; found {
				freq = c
			}
		}
		vec.SetVec(i, math.Log(freq))
	}
	return vec, nil
}

func isSpecialToken(token string) bool {
	switch token {
	case vocab.PaddingToken, vocab.UnknownToken, vocab.StartToken, vocab.EndToken:
		return true
	}
	return false
}
