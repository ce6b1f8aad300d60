package nn

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/DeNeutoy/vampire/internal/vecmath"
)

// SampleGreedy softmaxes each row and draws one categorical sample from
// it. It is the only strategy Sample accepts.
const SampleGreedy = "greedy"

// OneHot encodes indices as a one-hot matrix of shape
// [len(indices) x numClasses]. Indices outside [0, numClasses) yield an
// all-zero row rather than panicking, so callers can encode label slices
// that carry sentinel values.
func OneHot(indices []int, numClasses int) *mat.Dense {
	out := mat.NewDense(len(indices), numClasses, nil)
	for i, idx := range indices {
		if idx >= 0 && idx < numClasses {
			out.Set(i, idx, 1)
		}
	}
	return out
}

// LogStandardCategorical computes the cross entropy between each row of p
// (a one-hot categorical distribution) and the standard uniform
// categorical prior: per row, the sum over classes of p[k] * log(u[k] +
// 1e-8). The prior is the softmax of a ones vector, which keeps the
// stabilizer inside the log exactly where the loss expects it.
func LogStandardCategorical(p mat.Matrix) *mat.VecDense {
	rows, cols := p.Dims()

	prior := make([]float64, cols)
	for k := range prior {
		prior[k] = 1
	}
	vecmath.Softmax(prior)
	for k, u := range prior {
		prior[k] = math.Log(u + 1e-8)
	}

	out := mat.NewVecDense(rows, nil)
	row := make([]float64, cols)
	for i := 0; i < rows; i++ {
		mat.Row(row, i, p)
		var sum float64
		for k, v := range row {
			sum += v * prior[k]
		}
		out.SetVec(i, sum)
	}
	return out
}

// Sample draws one class index per row of dist. The "greedy" strategy
// softmaxes each row and samples from the resulting categorical
// distribution; any other strategy name returns an error. src may be nil,
// in which case the globally seeded generator is used.
func Sample(dist mat.Matrix, strategy string, src rand.Source) ([]int, error) {
	if strategy != SampleGreedy {
		return nil, fmt.Errorf("unknown sampling strategy %q", strategy)
	}

	rows, cols := dist.Dims()
	out := make([]int, rows)
	row := make([]float64, cols)
	for i := 0; i < rows; i++ {
		mat.Row(row, i, dist)
		vecmath.Softmax(row)
		cat := distuv.NewCategorical(row, src)
		out[i] = int(cat.Rand())
	}

	samplesDrawn.Add(float64(rows))
	return out, nil
}
