package arrowio

import (
	"bytes"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestBOWRecord(t *testing.T) {
	pool := memory.NewGoAllocator()

	t.Run("RowMismatch", func(t *testing.T) {
		bow := mat.NewDense(2, 3, nil)
		_, err := BOWRecord(pool, []string{"only one"}, bow)
		assert.Error(t, err)
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := BOWRecord(pool, nil, &mat.Dense{})
		assert.Error(t, err)
	})

	t.Run("ValidInput", func(t *testing.T) {
		texts := []string{"the cat sat", "dogs bark"}
		bow := mat.NewDense(2, 3, []float64{
			1, 2, 0,
			0, 1, 1,
		})

		rec, err := BOWRecord(pool, texts, bow)
		require.NoError(t, err)
		defer rec.Release()

		assert.Equal(t, int64(2), rec.NumRows())
		assert.Equal(t, int64(2), rec.NumCols())
		assert.Equal(t, "text", rec.ColumnName(0))
		assert.Equal(t, "bow", rec.ColumnName(1))

		textArr := rec.Column(0).(*array.String)
		assert.Equal(t, "the cat sat", textArr.Value(0))
		assert.Equal(t, "dogs bark", textArr.Value(1))

		bowArr := rec.Column(1).(*array.FixedSizeList)
		assert.Equal(t, 2, bowArr.Len())

		values := bowArr.ListValues().(*array.Float64)
		assert.Equal(t, 6, values.Len())
		assert.Equal(t, 1.0, values.Value(0))
		assert.Equal(t, 2.0, values.Value(1))
		assert.Equal(t, 1.0, values.Value(5))
	})
}

func TestWriteIPCRoundTrip(t *testing.T) {
	pool := memory.NewGoAllocator()

	texts := []string{"a b a"}
	bow := mat.NewDense(1, 2, []float64{2, 1})

	rec, err := BOWRecord(pool, texts, bow)
	require.NoError(t, err)
	defer rec.Release()

	var buf bytes.Buffer
	require.NoError(t, WriteIPC(&buf, rec))

	rdr, err := ipc.NewReader(&buf)
	require.NoError(t, err)
	defer rdr.Release()

	require.True(t, rdr.Next())
	got := rdr.Record()
	assert.Equal(t, int64(1), got.NumRows())
	assert.Equal(t, "text", got.ColumnName(0))
	assert.Equal(t, "a b a", got.Column(0).(*array.String).Value(0))
	assert.False(t, rdr.Next())
}

func TestBOWWriterStream(t *testing.T) {
	pool := memory.NewGoAllocator()

	var buf bytes.Buffer
	w := NewBOWWriter(pool, &buf)

	require.NoError(t, w.Write([]string{"a", "b"}, mat.NewDense(2, 2, []float64{1, 0, 0, 1})))
	require.NoError(t, w.Write([]string{"c"}, mat.NewDense(1, 2, []float64{1, 1})))
	require.NoError(t, w.Close())

	rdr, err := ipc.NewReader(&buf)
	require.NoError(t, err)
	defer rdr.Release()

	var rows []int64
	for rdr.Next() {
		rows = append(rows, rdr.Record().NumRows())
	}
	require.NoError(t, rdr.Err())
	assert.Equal(t, []int64{2, 1}, rows)
}

func TestBOWWriterCloseWithoutWrites(t *testing.T) {
	var buf bytes.Buffer
	w := NewBOWWriter(memory.NewGoAllocator(), &buf)
	require.NoError(t, w.Close())
	assert.Zero(t, buf.Len())
}
