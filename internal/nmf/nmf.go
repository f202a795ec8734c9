// Package nmf decomposes a mutation count matrix into latent signatures
// via non-negative matrix factorization.
package nmf

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/inodb/str-sig/internal/matrix"
)

const eps = 1e-9

// Result holds the factorization of a sample by category count matrix
// into k signatures.
type Result struct {
	Samples    []string // exposure rows
	Features   []string // signature columns (zero-only columns dropped)
	Components []string // "Signature_1" .. "Signature_k"

	Signatures *mat.Dense // k x features
	Exposures  *mat.Dense // samples x k

	ReconstructionError float64 // Frobenius norm of X - WH
	Iterations          int
}

// Factorize runs seeded multiplicative-update NMF on the count matrix.
// Columns that are zero for every sample are dropped before factorizing.
// The same matrix, component count and seed always yield the same result.
func Factorize(m *matrix.Matrix, components, maxIter int, seed int64) (*Result, error) {
	if m.Empty() {
		return nil, fmt.Errorf("counts matrix is empty")
	}
	if components < 1 {
		return nil, fmt.Errorf("components must be at least 1, got %d", components)
	}

	features, x := dropZeroColumns(m)
	if len(features) == 0 {
		return nil, fmt.Errorf("no non-zero columns in counts matrix")
	}

	n, f := len(m.Samples), len(features)
	if components > n || components > f {
		return nil, fmt.Errorf("components (%d) cannot exceed matrix dimensions (%d x %d)", components, n, f)
	}

	rng := rand.New(rand.NewSource(seed))
	scale := math.Sqrt(matMean(x) / float64(components))

	w := mat.NewDense(n, components, nil)
	h := mat.NewDense(components, f, nil)
	fillRandom(w, rng, scale)
	fillRandom(h, rng, scale)

	var (
		numer, denom, tmp mat.Dense
		prevErr           = math.Inf(1)
		iters             int
	)

	for iter := 1; iter <= maxIter; iter++ {
		iters = iter

		// H <- H * (WᵀX) / (WᵀWH)
		numer.Reset()
		numer.Mul(w.T(), x)
		tmp.Reset()
		tmp.Mul(w.T(), w)
		denom.Reset()
		denom.Mul(&tmp, h)
		mulDivElem(h, &numer, &denom)

		// W <- W * (XHᵀ) / (WHHᵀ)
		numer.Reset()
		numer.Mul(x, h.T())
		tmp.Reset()
		tmp.Mul(h, h.T())
		denom.Reset()
		denom.Mul(w, &tmp)
		mulDivElem(w, &numer, &denom)

		// Convergence check every 10 iterations
		if iter%10 == 0 {
			cur := frobeniusError(x, w, h)
			if prevErr-cur < 1e-4*math.Max(prevErr, 1) {
				break
			}
			prevErr = cur
		}
	}

	names := make([]string, components)
	for i := range names {
		names[i] = fmt.Sprintf("Signature_%d", i+1)
	}

	return &Result{
		Samples:             m.Samples,
		Features:            features,
		Components:          names,
		Signatures:          h,
		Exposures:           w,
		ReconstructionError: frobeniusError(x, w, h),
		Iterations:          iters,
	}, nil
}

// dropZeroColumns converts the count matrix to a float Dense, keeping
// only columns with at least one non-zero cell.
func dropZeroColumns(m *matrix.Matrix) ([]string, *mat.Dense) {
	var keep []int
	for j := range m.Labels {
		for i := range m.Samples {
			if m.Counts[i][j] != 0 {
				keep = append(keep, j)
				break
			}
		}
	}
	if len(keep) == 0 {
		return nil, nil
	}

	features := make([]string, len(keep))
	x := mat.NewDense(len(m.Samples), len(keep), nil)
	for jj, j := range keep {
		features[jj] = m.Labels[j]
		for i := range m.Samples {
			x.Set(i, jj, float64(m.Counts[i][j]))
		}
	}

	return features, x
}

func fillRandom(d *mat.Dense, rng *rand.Rand, scale float64) {
	raw := d.RawMatrix()
	for i := range raw.Data {
		raw.Data[i] = scale * (rng.Float64() + eps)
	}
}

func matMean(x *mat.Dense) float64 {
	raw := x.RawMatrix()
	var sum float64
	for _, v := range raw.Data {
		sum += v
	}
	return sum / float64(len(raw.Data))
}

// mulDivElem updates dst elementwise: dst *= numer / (denom + eps).
func mulDivElem(dst, numer, denom *mat.Dense) {
	d := dst.RawMatrix()
	n := numer.RawMatrix()
	m := denom.RawMatrix()
	for i := range d.Data {
		d.Data[i] *= n.Data[i] / (m.Data[i] + eps)
	}
}

func frobeniusError(x, w, h *mat.Dense) float64 {
	var approx, diff mat.Dense
	approx.Mul(w, h)
	diff.Sub(x, &approx)
	return mat.Norm(&diff, 2)
}
