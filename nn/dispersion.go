package nn

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/DeNeutoy/vampire/internal/vecmath"
)

// CheckDispersion estimates how spread out a batch of latent vectors is:
// the mean cosine similarity over numSamples randomly drawn pairs of
// distinct rows. Values near 1 mean the latent codes have collapsed onto
// a single direction; values near 0 mean they disperse. Batches of two
// rows or fewer return 0, as do non-positive sample counts. src may be
// nil, in which case the globally seeded generator is used.
func CheckDispersion(vecs mat.Matrix, numSamples int, src rand.Source) float64 {
	rows, cols := vecs.Dims()
	if rows <= 2 || numSamples <= 0 {
		return 0
	}

	intn := rand.IntN
	if src != nil {
		intn = rand.New(src).IntN
	}

	a := make([]float64, cols)
	b := make([]float64, cols)
	var sum float64
	for s := 0; s < numSamples; s++ {
		i := intn(rows)
		j := intn(rows)
		for j == i {
			j = intn(rows)
		}
		mat.Row(a, i, vecs)
		mat.Row(b, j, vecs)
		sum += vecmath.CosineSimilarity(a, b)
	}
	return sum / float64(numSamples)
}
