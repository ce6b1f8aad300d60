package nn

import (
	"math"
	"testing"
)

func TestScheduleValues(t *testing.T) {
	tests := []struct {
		name       string
		batchNum   int
		annealType AnnealType
		want       float64
	}{
		{"linear at zero", 0, AnnealLinear, 0},
		{"linear midpoint", 1250, AnnealLinear, 0.5},
		{"linear saturates", 2500, AnnealLinear, 1},
		{"linear clamped", 10000, AnnealLinear, 1},
		{"sigmoid midpoint", 2500, AnnealSigmoid, 0.5},
		{"constant", 123, AnnealConstant, 1},
		{"reverse sigmoid midpoint", 2500, AnnealReverseSigmoid, 0.5},
		{"unknown fallback", 500, AnnealType("cosine"), 0.01},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Schedule(tt.batchNum, tt.annealType)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Schedule(%d, %s) = %f, want %f", tt.batchNum, tt.annealType, got, tt.want)
			}
		})
	}
}

func TestScheduleSigmoidMatchesFormula(t *testing.T) {
	for _, batch := range []int{0, 100, 2500, 5000, 20000} {
		want := 1 / (1 + math.Exp(-0.0025*(float64(batch)-2500)))
		got := Schedule(batch, AnnealSigmoid)
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("sigmoid(%d) = %f, want %f", batch, got, want)
		}

		wantRev := 1 / (1 + math.Exp(0.0025*(float64(batch)-2500)))
		gotRev := Schedule(batch, AnnealReverseSigmoid)
		if math.Abs(gotRev-wantRev) > 1e-12 {
			t.Errorf("reverse_sigmoid(%d) = %f, want %f", batch, gotRev, wantRev)
		}
	}
}

func TestScheduleMonotoneAndBounded(t *testing.T) {
	for _, at := range []AnnealType{AnnealLinear, AnnealSigmoid, AnnealReverseSigmoid, AnnealConstant} {
		prev := Schedule(0, at)
		for batch := 1; batch <= 6000; batch += 100 {
			w := Schedule(batch, at)
			if w < 0 || w > 1 {
				t.Fatalf("%s weight %f out of [0, 1] at batch %d", at, w, batch)
			}
			switch at {
			case AnnealReverseSigmoid:
				if w > prev {
					t.Fatalf("%s increased from %f to %f at batch %d", at, prev, w, batch)
				}
			default:
				if w < prev {
					t.Fatalf("%s decreased from %f to %f at batch %d", at, prev, w, batch)
				}
			}
			prev = w
		}
	}
}

func TestInterpolateEndpoints(t *testing.T) {
	start := []float64{0, 10, 1.0 / 3.0}
	end := []float64{1, -10, 2.0 / 7.0}

	out := Interpolate(start, end, 3)
	rows, cols := out.Dims()
	if rows != 5 || cols != 3 {
		t.Fatalf("Dims = %dx%d, want 5x3", rows, cols)
	}

	// Endpoints must reproduce the inputs exactly, not approximately.
	for d := range start {
		if out.At(0, d) != start[d] {
			t.Errorf("first row col %d = %v, want %v", d, out.At(0, d), start[d])
		}
		if out.At(rows-1, d) != end[d] {
			t.Errorf("last row col %d = %v, want %v", d, out.At(rows-1, d), end[d])
		}
	}
}

func TestInterpolateEvenSpacing(t *testing.T) {
	out := Interpolate([]float64{0}, []float64{4}, 3)

	want := []float64{0, 1, 2, 3, 4}
	for i, w := range want {
		if math.Abs(out.At(i, 0)-w) > 1e-12 {
			t.Errorf("row %d = %f, want %f", i, out.At(i, 0), w)
		}
	}
}

func TestInterpolateZeroSteps(t *testing.T) {
	out := Interpolate([]float64{1, 2}, []float64{3, 4}, 0)

	rows, _ := out.Dims()
	if rows != 2 {
		t.Fatalf("rows = %d, want 2 (endpoints only)", rows)
	}
	if out.At(0, 0) != 1 || out.At(1, 1) != 4 {
		t.Error("zero-step interpolation should hold only the endpoints")
	}
}

func TestInterpolateLengthMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on endpoint length mismatch")
		}
	}()
	Interpolate([]float64{1}, []float64{1, 2}, 1)
}
