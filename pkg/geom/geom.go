// 16 Sep 2026

// Package geom calculates distances and dihedral angles from
// coordinates. Angles come back in degrees.
package geom

import (
	"errors"
	"math"
)

// Xyz is a point or a vector.
type Xyz struct {
	X, Y, Z float64
}

// ErrDegenerate is for angles that are not defined, because two
// points sit on top of each other or three are in a line.
var ErrDegenerate = errors.New("geom: degenerate geometry")

// diff is end - start
func diff(start, end Xyz) Xyz {
	return Xyz{end.X - start.X, end.Y - start.Y, end.Z - start.Z}
}

func vecProd(u, v Xyz) Xyz {
	return Xyz{u.Y*v.Z - u.Z*v.Y, u.Z*v.X - u.X*v.Z, u.X*v.Y - u.Y*v.X}
}

func sclrProd(u, v Xyz) float64 { return u.X*v.X + u.Y*v.Y + u.Z*v.Z }

func xyzLen(v Xyz) float64 { return math.Sqrt(sclrProd(v, v)) }

// Dist is the distance between two points.
func Dist(a, b Xyz) float64 { return xyzLen(diff(a, b)) }

// Dihedral is the angle between the planes (i, j, k) and (j, k, l),
// from -180 to 180. It is positive if, looking down j to k, the
// bond k-l is clockwise from j-i.
func Dihedral(ii, jj, kk, ll Xyz) (float64, error) {
	b0 := diff(ii, jj)
	b1 := diff(jj, kk)
	b2 := diff(kk, ll)
	n1, n2 := vecProd(b0, b1), vecProd(b1, b2)
	lb1 := xyzLen(b1)
	if lb1 == 0 || xyzLen(n1) == 0 || xyzLen(n2) == 0 {
		return math.NaN(), ErrDegenerate
	}
	m := vecProd(n1, Xyz{b1.X / lb1, b1.Y / lb1, b1.Z / lb1})
	x, y := sclrProd(n1, n2), sclrProd(m, n2)
	return -math.Atan2(y, x) * 180 / math.Pi, nil
}
