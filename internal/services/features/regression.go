package features

import (
    "errors"
    "math"
)

var (
    ErrEmptyDesign    = errors.New("features: empty design matrix")
    ErrRaggedDesign   = errors.New("features: rows have different widths")
    ErrSingularSystem = errors.New("features: singular normal equations")
)

// LinearModel is a fitted linear map with an intercept.
type LinearModel struct {
    Weights []float64
    Bias    float64
}

// Predict evaluates the model on one feature row.
func (m LinearModel) Predict(x []float64) float64 {
    out := m.Bias
    for i := 0; i < len(m.Weights) && i < len(x); i++ {
        out += m.Weights[i] * x[i]
    }
    return out
}

// FitRidge solves (XᵀX + λI)w = Xᵀy with an unpenalized intercept column.
func FitRidge(xs [][]float64, ys []float64, lambda float64) (LinearModel, error) {
    if len(xs) == 0 || len(xs) != len(ys) {
        return LinearModel{}, ErrEmptyDesign
    }
    d := len(xs[0])
    for _, row := range xs {
        if len(row) != d {
            return LinearModel{}, ErrRaggedDesign
        }
    }
    // augmented width: d features + intercept
    p := d + 1
    a := make([][]float64, p)
    for i := range a {
        a[i] = make([]float64, p+1)
    }
    for r, row := range xs {
        for i := 0; i < p; i++ {
            xi := 1.0
            if i < d {
                xi = row[i]
            }
            for j := 0; j < p; j++ {
                xj := 1.0
                if j < d {
                    xj = row[j]
                }
                a[i][j] += xi * xj
            }
            a[i][p] += xi * ys[r]
        }
    }
    for i := 0; i < d; i++ {
        a[i][i] += lambda
    }

    sol, err := solveGaussian(a)
    if err != nil {
        return LinearModel{}, err
    }
    return LinearModel{Weights: sol[:d], Bias: sol[d]}, nil
}

// solveGaussian reduces an augmented n×(n+1) system in place with partial pivoting.
func solveGaussian(a [][]float64) ([]float64, error) {
    n := len(a)
    for col := 0; col < n; col++ {
        pivot := col
        for r := col + 1; r < n; r++ {
            if math.Abs(a[r][col]) > math.Abs(a[pivot][col]) {
                pivot = r
            }
        }
        if math.Abs(a[pivot][col]) < 1e-12 {
            return nil, ErrSingularSystem
        }
        a[col], a[pivot] = a[pivot], a[col]
        for r := col + 1; r < n; r++ {
            f := a[r][col] / a[col][col]
            for c := col; c <= n; c++ {
                a[r][c] -= f * a[col][c]
            }
        }
    }
    x := make([]float64, n)
    for r := n - 1; r >= 0; r-- {
        sum := a[r][n]
        for c := r + 1; c < n; c++ {
            sum -= a[r][c] * x[c]
        }
        x[r] = sum / a[r][r]
    }
    return x, nil
}
