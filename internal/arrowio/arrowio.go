// Package arrowio converts encoded document batches to Arrow record
// batches and writes them as IPC streams.
package arrowio

import (
	"errors"
	"fmt"
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"gonum.org/v1/gonum/mat"
)

// BOWRecord converts a batch of documents and their bag-of-words rows
// into an Arrow record batch.
// Schema: { "text": utf8, "bow": fixed_size_list<float64>[W] }
func BOWRecord(mem memory.Allocator, texts []string, bow *mat.Dense) (arrow.RecordBatch, error) {
	rows, width := bow.Dims()
	if len(texts) != rows {
		return nil, fmt.Errorf("row count mismatch: %d texts vs %d bow rows", len(texts), rows)
	}
	if rows == 0 {
		return nil, errors.New("empty record batch")
	}

	schema := arrow.NewSchema(
		[]arrow.Field{
			{Name: "text", Type: arrow.BinaryTypes.String},
			{Name: "bow", Type: arrow.FixedSizeListOf(int32(width), arrow.PrimitiveTypes.Float64)},
		},
		nil,
	)

	textBuilder := array.NewStringBuilder(mem)
	defer textBuilder.Release()

	bowBuilder := array.NewFixedSizeListBuilder(mem, int32(width), arrow.PrimitiveTypes.Float64)
	defer bowBuilder.Release()
	valueBuilder := bowBuilder.ValueBuilder().(*array.Float64Builder)

	for i, text := range texts {
		textBuilder.Append(text)

		bowBuilder.Append(true)
		valueBuilder.AppendValues(bow.RawRowView(i), nil)
	}

	textArr := textBuilder.NewArray()
	defer textArr.Release()
	bowArr := bowBuilder.NewArray()
	defer bowArr.Release()

	return array.NewRecordBatch(schema, []arrow.Array{textArr, bowArr}, int64(rows)), nil
}

// WriteIPC writes a single record batch to w as an Arrow IPC stream.
func WriteIPC(w io.Writer, rec arrow.RecordBatch) error {
	writer := ipc.NewWriter(w, ipc.WithSchema(rec.Schema()))
	if err := writer.Write(rec); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write record batch: %w", err)
	}
	return writer.Close()
}

// BOWWriter streams successive document batches to one IPC stream. The
// underlying IPC writer is created on the first batch, so every batch
// must carry the same bag-of-words width.
type BOWWriter struct {
	mem memory.Allocator
	w   io.Writer
	ipc *ipc.Writer
}

// NewBOWWriter creates a streaming writer on top of w.
func NewBOWWriter(mem memory.Allocator, w io.Writer) *BOWWriter {
	return &BOWWriter{mem: mem, w: w}
}

// Write converts one batch to a record batch and appends it to the stream.
func (bw *BOWWriter) Write(texts []string, bow *mat.Dense) error {
	rec, err := BOWRecord(bw.mem, texts, bow)
	if err != nil {
		return err
	}
	defer rec.Release()

	if bw.ipc == nil {
		bw.ipc = ipc.NewWriter(bw.w, ipc.WithSchema(rec.Schema()))
	}
	if err := bw.ipc.Write(rec); err != nil {
		return fmt.Errorf("failed to write record batch: %w", err)
	}
	return nil
}

// Close finalizes the IPC stream. Closing before any batch was written
// is a no-op.
func (bw *BOWWriter) Close() error {
	if bw.ipc == nil {
		return nil
	}
	return bw.ipc.Close()
}
