package vecmath

import (
	"math"
	"testing"
)

func TestSoftmax(t *testing.T) {
	row := []float64{1, 2, 3}
	Softmax(row)

	var sum float64
	for _, v := range row {
		sum += v
	}
	if math.Abs(sum-1) > 1e-12 {
		t.Errorf("Softmax sum = %f, want 1", sum)
	}

	// Ratios must match exp spacing: p[i+1]/p[i] == e
	for i := 0; i < len(row)-1; i++ {
		ratio := row[i+1] / row[i]
		if math.Abs(ratio-math.E) > 1e-9 {
			t.Errorf("Softmax ratio[%d] = %f, want %f", i, ratio, math.E)
		}
	}
}

func TestSoftmaxLargeLogits(t *testing.T) {
	// Without max subtraction these would overflow to +Inf.
	row := []float64{1000, 1001, 999}
	Softmax(row)

	for i, v := range row {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("Softmax(%d) = %f, want finite", i, v)
		}
	}
	if row[1] < row[0] || row[0] < row[2] {
		t.Errorf("Softmax ordering broken: %v", row)
	}
}

func TestSoftmaxEmpty(t *testing.T) {
	Softmax(nil) // must not panic
}

func TestSigmoid(t *testing.T) {
	if got := Sigmoid(0); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("Sigmoid(0) = %f, want 0.5", got)
	}
	// Symmetry: sigmoid(-x) == 1 - sigmoid(x)
	for _, x := range []float64{0.5, 1, 2, 10} {
		a := Sigmoid(x)
		b := Sigmoid(-x)
		if math.Abs(a+b-1) > 1e-12 {
			t.Errorf("Sigmoid(%f)+Sigmoid(%f) = %f, want 1", x, -x, a+b)
		}
	}
	if Sigmoid(50) <= 0.99 {
		t.Error("Sigmoid(50) should saturate near 1")
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"parallel", []float64{1, 2, 3}, []float64{2, 4, 6}, 1},
		{"antiparallel", []float64{1, 0}, []float64{-1, 0}, -1},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0},
		{"zero norm", []float64{0, 0}, []float64{1, 1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("CosineSimilarity = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestCosineSimilarityMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on length mismatch")
		}
	}()
	CosineSimilarity([]float64{1}, []float64{1, 2})
}
