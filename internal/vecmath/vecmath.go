package vecmath

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Softmax normalizes row in-place into a probability distribution.
// The row maximum is subtracted before exponentiation so large logits
// do not overflow.
func Softmax(row []float64) {
	if len(row) == 0 {
		return
	}
	max := floats.Max(row)
	for i, v := range row {
		row[i] = math.Exp(v - max)
	}
	floats.Scale(1/floats.Sum(row), row)
}

// Sigmoid is the standard logistic function 1 / (1 + e^-x).
func Sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// CosineSimilarity returns the cosine of the angle between a and b.
// A zero-norm input yields 0 rather than NaN.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		panic("CosineSimilarity: vector length mismatch")
	}
	na := floats.Norm(a, 2)
	nb := floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 0
	}
	return floats.Dot(a, b) / (na * nb)
}
