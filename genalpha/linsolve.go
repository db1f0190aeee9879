package genalpha

import (
	"fmt"
	"math"
)

// solveDense solves A x = b by Gaussian elimination with partial pivoting.
// A is destroyed (copied internally by the caller's convention: callers
// pass a matrix they no longer need). No library in the retrieved corpus
// exposes a confirmed-safe dense direct solve (gofem's own linear solves go
// through la.Triplet/la.LinSol, a sparse cgo-backed factorization meant for
// the FE domain's sparsity pattern, whose exact Init/Fact/Solve signatures
// never appear in a call site in the retrieved pack) — this is hand-rolled
// standard numerics, documented in DESIGN.md.
func solveDense(a [][]float64, b []float64) ([]float64, error) {
	n := len(b)
	for k := 0; k < n; k++ {
		piv := k
		best := math.Abs(a[k][k])
		for i := k + 1; i < n; i++ {
			if v := math.Abs(a[i][k]); v > best {
				best = v
				piv = i
			}
		}
		if best < 1e-300 {
			return nil, fmt.Errorf("singular Jacobian at pivot column %d", k)
		}
		if piv != k {
			a[k], a[piv] = a[piv], a[k]
			b[k], b[piv] = b[piv], b[k]
		}
		for i := k + 1; i < n; i++ {
			f := a[i][k] / a[k][k]
			if f == 0 {
				continue
			}
			for j := k; j < n; j++ {
				a[i][j] -= f * a[k][j]
			}
			b[i] -= f * b[k]
		}
	}

	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		sum := b[i]
		for j := i + 1; j < n; j++ {
			sum -= a[i][j] * x[j]
		}
		x[i] = sum / a[i][i]
	}
	return x, nil
}
