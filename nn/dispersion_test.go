package nn

import (
	"math"
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestCheckDispersionSmallBatch(t *testing.T) {
	vecs := mat.NewDense(2, 3, []float64{1, 0, 0, 0, 1, 0})
	if got := CheckDispersion(vecs, 10, nil); got != 0 {
		t.Errorf("batch of 2 should report 0, got %f", got)
	}
}

func TestCheckDispersionNoSamples(t *testing.T) {
	vecs := mat.NewDense(4, 2, []float64{1, 0, 0, 1, 1, 1, 1, 2})
	if got := CheckDispersion(vecs, 0, nil); got != 0 {
		t.Errorf("zero samples should report 0, got %f", got)
	}
}

func TestCheckDispersionCollapsedLatents(t *testing.T) {
	// Every row is a positive scaling of the same direction, so every
	// pair has cosine similarity exactly 1.
	vecs := mat.NewDense(4, 3, []float64{
		1, 2, 3,
		2, 4, 6,
		0.5, 1, 1.5,
		10, 20, 30,
	})

	got := CheckDispersion(vecs, 25, rand.NewPCG(3, 9))
	if math.Abs(got-1) > 1e-12 {
		t.Errorf("collapsed latents should report 1, got %f", got)
	}
}

func TestCheckDispersionOrthogonalLatents(t *testing.T) {
	// Pairwise orthogonal rows: every sampled pair contributes 0.
	vecs := mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	})

	got := CheckDispersion(vecs, 25, rand.NewPCG(4, 2))
	if math.Abs(got) > 1e-12 {
		t.Errorf("orthogonal latents should report 0, got %f", got)
	}
}

func TestCheckDispersionBounded(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 13))
	data := make([]float64, 8*5)
	for i := range data {
		data[i] = rng.NormFloat64()
	}
	vecs := mat.NewDense(8, 5, data)

	got := CheckDispersion(vecs, 100, rand.NewPCG(17, 19))
	if got < -1 || got > 1 {
		t.Errorf("mean cosine similarity %f outside [-1, 1]", got)
	}
}

func TestCheckDispersionSeededReproducibility(t *testing.T) {
	rng := rand.New(rand.NewPCG(21, 23))
	data := make([]float64, 6*4)
	for i := range data {
		data[i] = rng.Float64()
	}
	vecs := mat.NewDense(6, 4, data)

	first := CheckDispersion(vecs, 50, rand.NewPCG(5, 5))
	second := CheckDispersion(vecs, 50, rand.NewPCG(5, 5))
	if first != second {
		t.Errorf("seeded runs diverge: %f vs %f", first, second)
	}
}
