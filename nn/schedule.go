package nn

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/DeNeutoy/vampire/internal/vecmath"
)

// AnnealType selects the KL-weight annealing curve.
type AnnealType string

const (
	AnnealLinear         AnnealType = "linear"
	AnnealSigmoid        AnnealType = "sigmoid"
	AnnealConstant       AnnealType = "constant"
	AnnealReverseSigmoid AnnealType = "reverse_sigmoid"
)

// Annealing curves reach their midpoint at batch 2500 with slope 0.0025,
// so the sigmoid variants saturate a few thousand batches either side.
const (
	annealMidpoint = 2500
	annealSlope    = 0.0025
)

// Schedule returns the KL-divergence weight for the given batch number.
// Linear ramps to 1 over the first 2500 batches, sigmoid eases in around
// batch 2500, constant is always 1 and reverse_sigmoid eases out from 1.
// Unrecognized anneal types fall back to a fixed weight of 0.01.
func Schedule(batchNum int, annealType AnnealType) float64 {
	t := float64(batchNum)
	switch annealType {
	case AnnealLinear:
		w := t / annealMidpoint
		if w > 1 {
			return 1
		}
		return w
	case AnnealSigmoid:
		return vecmath.Sigmoid(annealSlope * (t - annealMidpoint))
	case AnnealConstant:
		return 1
	case AnnealReverseSigmoid:
		return vecmath.Sigmoid(-annealSlope * (t - annealMidpoint))
	default:
		return 0.01
	}
}

// Interpolate sweeps between two latent vectors in steps+2 evenly spaced
// rows: row 0 is start, the final row is end, and each column d moves
// linearly from start[d] to end[d]. Panics when the vectors' lengths
// differ.
func Interpolate(start, end []float64, steps int) *mat.Dense {
	if len(start) != len(end) {
		panic("nn: interpolation endpoints have different lengths")
	}

	rows := steps + 2
	out := mat.NewDense(rows, len(start), nil)
	col := make([]float64, rows)
	for d := range start {
		floats.Span(col, start[d], end[d])
		out.SetCol(d, col)
	}

	// Span accumulates rounding error at the far end; pin the endpoints
	// to the inputs exactly.
	out.SetRow(0, start)
	out.SetRow(rows-1, end)
	return out
}
