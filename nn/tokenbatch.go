// Package nn provides the tensor helpers a semi-supervised
// text-classification training loop calls into: bag-of-words encoding,
// categorical sampling, KL-weight annealing schedules, latent-space
// dispersion checks and labeled/unlabeled batch splitting.
//
// Float matrices and vectors are gonum's *mat.Dense and *mat.VecDense.
// Token-index batches use TokenBatch, since gonum carries no integer
// matrix type. Shape mismatches panic, matching gonum's convention; I/O
// and validation failures return errors.
package nn

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// PaddingIndex is the token index reserved for padding positions. It
// matches index 0 of a padded vocabulary namespace.
const PaddingIndex = 0

// TokenBatch is a batch of padded token-index sequences stored as a flat
// row-major slice: one row per document, one column per position.
type TokenBatch struct {
	data []int
	rows int
	cols int
}

// NewTokenBatch builds a batch from ragged token-index rows, right-padding
// each row with PaddingIndex up to the longest row's length.
func NewTokenBatch(rows [][]int) *TokenBatch {
	cols := 0
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}

	data := make([]int, len(rows)*cols)
	for i, row := range rows {
		copy(data[i*cols:(i+1)*cols], row)
	}
	return &TokenBatch{data: data, rows: len(rows), cols: cols}
}

// NewTokenBatchFlat wraps an existing flat row-major slice. The slice is
// used directly, not copied.
func NewTokenBatchFlat(data []int, rows, cols int) *TokenBatch {
	if len(data) != rows*cols {
		panic(fmt.Sprintf("nn: token data length %d does not match %dx%d", len(data), rows, cols))
	}
	return &TokenBatch{data: data, rows: rows, cols: cols}
}

// Dims returns the number of documents and the padded sequence length.
func (b *TokenBatch) Dims() (int, int) {
	return b.rows, b.cols
}

// At returns the token index at document i, position j.
func (b *TokenBatch) At(i, j int) int {
	if i < 0 || i >= b.rows || j < 0 || j >= b.cols {
		panic(fmt.Sprintf("nn: index (%d, %d) out of range for %dx%d batch", i, j, b.rows, b.cols))
	}
	return b.data[i*b.cols+j]
}

// Set stores token index v at document i, position j.
func (b *TokenBatch) Set(i, j, v int) {
	if i < 0 || i >= b.rows || j < 0 || j >= b.cols {
		panic(fmt.Sprintf("nn: index (%d, %d) out of range for %dx%d batch", i, j, b.rows, b.cols))
	}
	b.data[i*b.cols+j] = v
}

// Row returns a copy of document i's token indices, padding included.
func (b *TokenBatch) Row(i int) []int {
	if i < 0 || i >= b.rows {
		panic(fmt.Sprintf("nn: row %d out of range for %d-row batch", i, b.rows))
	}
	out := make([]int, b.cols)
	copy(out, b.data[i*b.cols:(i+1)*b.cols])
	return out
}

// Mask returns the text-field mask: a dense matrix holding 1 where the
// batch carries a real token and 0 at padding positions.
func (b *TokenBatch) Mask() *mat.Dense {
	data := make([]float64, len(b.data))
	for i, v := range b.data {
		if v != PaddingIndex {
			data[i] = 1
		}
	}
	return mat.NewDense(b.rows, b.cols, data)
}

// SelectRows gathers the given documents into a new batch, preserving
// index order. Duplicate indices are allowed.
func (b *TokenBatch) SelectRows(indices []int) *TokenBatch {
	data := make([]int, len(indices)*b.cols)
	for k, idx := range indices {
		if idx < 0 || idx >= b.rows {
			panic(fmt.Sprintf("nn: row %d out of range for %d-row batch", idx, b.rows))
		}
		copy(data[k*b.cols:(k+1)*b.cols], b.data[idx*b.cols:(idx+1)*b.cols])
	}
	return &TokenBatch{data: data, rows: len(indices), cols: b.cols}
}

// Instances is one side of a labeled/unlabeled batch split. Tokens and
// Targets stay nil on an empty side; Labels is populated only for the
// labeled side.
type Instances struct {
	Tokens  *TokenBatch
	Targets *TokenBatch
	Labels  []int
}

// Len reports the number of documents, 0 for the empty zero value.
func (ins Instances) Len() int {
	if ins.Tokens == nil {
		return 0
	}
	rows, _ := ins.Tokens.Dims()
	return rows
}
