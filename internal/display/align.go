package display

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"gerberlens/pkg/geometry"
)

// FitRigid computes the best rotation + translation mapping src points onto
// dst points, by least squares. Used to recover a view transform from
// fiducial pairs picked on two layers. Needs at least 2 pairs.
func FitRigid(src, dst []geometry.Point2D) (geometry.AffineTransform, error) {
	if len(src) != len(dst) {
		return geometry.AffineTransform{}, fmt.Errorf("point count mismatch: %d vs %d", len(src), len(dst))
	}
	if len(src) < 2 {
		return geometry.AffineTransform{}, fmt.Errorf("need at least 2 point pairs, got %d", len(src))
	}

	n := float64(len(src))

	var srcCx, srcCy, dstCx, dstCy float64
	for i := range src {
		srcCx += src[i].X
		srcCy += src[i].Y
		dstCx += dst[i].X
		dstCy += dst[i].Y
	}
	srcCx /= n
	srcCy /= n
	dstCx /= n
	dstCy /= n

	// Rotation from the cross/dot product sums about the centroids
	var dotSum, crossSum float64
	for i := range src {
		sx, sy := src[i].X-srcCx, src[i].Y-srcCy
		dx, dy := dst[i].X-dstCx, dst[i].Y-dstCy
		dotSum += sx*dx + sy*dy
		crossSum += sx*dy - sy*dx
	}
	if dotSum == 0 && crossSum == 0 {
		return geometry.AffineTransform{}, fmt.Errorf("degenerate point pairs")
	}

	theta := math.Atan2(crossSum, dotSum)
	cosT := math.Cos(theta)
	sinT := math.Sin(theta)

	tx := dstCx - (cosT*srcCx - sinT*srcCy)
	ty := dstCy - (sinT*srcCx + cosT*srcCy)

	return geometry.AffineTransform{
		A: cosT, B: -sinT, TX: tx,
		C: sinT, D: cosT, TY: ty,
	}, nil
}

// FitAffine computes the best full affine transform mapping src onto dst by
// QR least squares. Needs at least 3 pairs.
func FitAffine(src, dst []geometry.Point2D) (geometry.AffineTransform, error) {
	if len(src) != len(dst) {
		return geometry.AffineTransform{}, fmt.Errorf("point count mismatch: %d vs %d", len(src), len(dst))
	}
	n := len(src)
	if n < 3 {
		return geometry.AffineTransform{}, fmt.Errorf("need at least 3 point pairs, got %d", n)
	}

	// Overdetermined system: [x', y'] = [a, b, tx; c, d, ty] * [x, y, 1]
	A := mat.NewDense(n*2, 6, nil)
	B := mat.NewVecDense(n*2, nil)

	for i := 0; i < n; i++ {
		x, y := src[i].X, src[i].Y
		xp, yp := dst[i].X, dst[i].Y

		A.Set(i*2, 0, x)
		A.Set(i*2, 1, y)
		A.Set(i*2, 2, 1)
		B.SetVec(i*2, xp)

		A.Set(i*2+1, 3, x)
		A.Set(i*2+1, 4, y)
		A.Set(i*2+1, 5, 1)
		B.SetVec(i*2+1, yp)
	}

	var qr mat.QR
	qr.Factorize(A)

	var params mat.VecDense
	if err := qr.SolveVecTo(&params, false, B); err != nil {
		return geometry.AffineTransform{}, fmt.Errorf("solve affine fit: %w", err)
	}

	return geometry.AffineTransform{
		A:  params.AtVec(0),
		B:  params.AtVec(1),
		TX: params.AtVec(2),
		C:  params.AtVec(3),
		D:  params.AtVec(4),
		TY: params.AtVec(5),
	}, nil
}

// FitError returns the mean distance between transform(src[i]) and dst[i].
func FitError(src, dst []geometry.Point2D, transform geometry.AffineTransform) float64 {
	if len(src) != len(dst) || len(src) == 0 {
		return math.Inf(1)
	}
	var total float64
	for i := range src {
		total += transform.Apply(src[i]).Distance(dst[i])
	}
	return total / float64(len(src))
}
