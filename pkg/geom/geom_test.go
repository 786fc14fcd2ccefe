// 16 Sep 2026

package geom_test

import (
	"errors"
	"math"
	"testing"

	. "github.com/andrew-torda/tortoize/pkg/geom"
)

// permuteXyz rotates x, y and z for tests whose answers should not
// change when we move the axes around.
func permuteXyz(x Xyz) Xyz {
	x.X, x.Y, x.Z = x.Y, x.Z, x.X
	return x
}

func notApproxEqual(x, y float64) bool {
	return math.IsNaN(x-y) || math.Abs(x-y) > 1e-6
}

var dhtests = []struct {
	name string
	l    Xyz
	want float64
}{
	{"cis", Xyz{1, 0, 1}, 0},
	{"plus", Xyz{0, 1, 1}, 90},
	{"minus", Xyz{0, -1, 1}, -90},
	{"sixty", Xyz{0.5, math.Sqrt(3) / 2, 1}, 60},
	{"long", Xyz{0, 3, 5}, 90},
}

func TestDihedral(t *testing.T) {
	i, j, k := Xyz{1, 0, 0}, Xyz{0, 0, 0}, Xyz{0, 0, 1}
	for _, tt := range dhtests {
		got, err := Dihedral(i, j, k, tt.l)
		if err != nil || notApproxEqual(got, tt.want) {
			t.Errorf("%s got %v %v want %v", tt.name, got, err, tt.want)
		}
		p := permuteXyz
		if got2, _ := Dihedral(p(i), p(j), p(k), p(tt.l)); notApproxEqual(got, got2) {
			t.Errorf("%s changes with axes %v %v", tt.name, got, got2)
		}
		if got3, _ := Dihedral(tt.l, k, j, i); notApproxEqual(got, got3) {
			t.Errorf("%s changes when reversed %v %v", tt.name, got, got3)
		}
	}
	trans, _ := Dihedral(i, j, k, Xyz{-1, 0, 1})
	if notApproxEqual(math.Abs(trans), 180) {
		t.Error("trans should be 180, got", trans)
	}
	if _, err := Dihedral(i, j, j, k); !errors.Is(err, ErrDegenerate) {
		t.Error("j on top of k should fail")
	}
	if _, err := Dihedral(Xyz{0, 0, -1}, j, k, Xyz{0, 1, 1}); !errors.Is(err, ErrDegenerate) {
		t.Error("three in a line should fail")
	}
}

func TestDist(t *testing.T) {
	if d := Dist(Xyz{1, 2, 3}, Xyz{4, 6, 3}); notApproxEqual(d, 5) {
		t.Error("dist", d)
	}
	if d := Dist(Xyz{1, 2, 3}, Xyz{1, 2, 3}); d != 0 {
		t.Error("same point", d)
	}
}
