package aacode_test

import (
	"testing"

	. "github.com/andrew-torda/tortoize/pkg/aacode"
)

func TestRemap(t *testing.T) {
	for in, want := range map[string]string{
		"MSE": "MET", "HYP": "PRO", "ASX": "ASP", "GLX": "GLU", "UNK": "ALA", "GLY": "GLY", "HOH": "HOH"} {
		if got, _ := Remap(in); got != want {
			t.Errorf("Remap(%s) got %s want %s", in, got, want)
		}
	}
	if Known("HOH") {
		t.Error("water is not an amino acid")
	}
}

func TestCodes(t *testing.T) {
	c := Codes()
	if len(c) != 20 || c[0] != "ALA" || c[19] != "VAL" {
		t.Fatal("wrong codes", c)
	}
	for _, code := range c {
		if n := NChi(code); n != len(ChiAtoms[code]) {
			t.Errorf("%s has %d chis but %d atom sets", code, n, len(ChiAtoms[code]))
		}
	}
}
