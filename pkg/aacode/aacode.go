// 4 Sep 2026

// Package aacode knows the twenty standard amino acids by their three
// letter codes and how to map common modified residues onto them.
package aacode

import (
	"sort"
)

var oneLetter = map[string]byte{
	"ALA": 'A', "ARG": 'R', "ASN": 'N', "ASP": 'D', "CYS": 'C',
	"GLN": 'Q', "GLU": 'E', "GLY": 'G', "HIS": 'H', "ILE": 'I',
	"LEU": 'L', "LYS": 'K', "MET": 'M', "PHE": 'F', "PRO": 'P',
	"SER": 'S', "THR": 'T', "TRP": 'W', "TYR": 'Y', "VAL": 'V',
}

// remap is for residues we score as if they were a standard one.
// UNK has no one letter code, so it gets treated as alanine.
var remap = map[string]string{
	"MSE": "MET",
	"HYP": "PRO",
	"ASX": "ASP",
	"GLX": "GLU",
	"UNK": "ALA",
}

// Known says if code is one of the standard twenty.
func Known(code string) bool {
	_, ok := oneLetter[code]
	return ok
}

// Remap returns the code we should score code as, and whether it was
// changed. Codes which are not remapped come back unchanged, even if
// they are not known.
func Remap(code string) (string, bool) {
	if to, ok := remap[code]; ok {
		return to, true
	}
	return code, false
}

// Codes returns the standard codes in alphabetical order. This is the
// order entries are written to the tables.
func Codes() []string {
	r := make([]string, 0, len(oneLetter))
	for k := range oneLetter {
		r = append(r, k)
	}
	sort.Strings(r)
	return r
}

// nChi is the number of side chain dihedrals for each residue.
var nChi = map[string]int{
	"ALA": 0, "ARG": 4, "ASN": 2, "ASP": 2, "CYS": 1,
	"GLN": 3, "GLU": 3, "GLY": 0, "HIS": 2, "ILE": 2,
	"LEU": 2, "LYS": 4, "MET": 3, "PHE": 2, "PRO": 2,
	"SER": 1, "THR": 1, "TRP": 2, "TYR": 2, "VAL": 1,
}

// NChi returns the number of chi angles a residue type has.
func NChi(code string) int { return nChi[code] }

// ChiAtoms gives the four atoms defining each chi angle.
var ChiAtoms = map[string][][4]string{
	"ARG": {{"N", "CA", "CB", "CG"}, {"CA", "CB", "CG", "CD"}, {"CB", "CG", "CD", "NE"}, {"CG", "CD", "NE", "CZ"}},
	"ASN": {{"N", "CA", "CB", "CG"}, {"CA", "CB", "CG", "OD1"}},
	"ASP": {{"N", "CA", "CB", "CG"}, {"CA", "CB", "CG", "OD1"}},
	"CYS": {{"N", "CA", "CB", "SG"}},
	"GLN": {{"N", "CA", "CB", "CG"}, {"CA", "CB", "CG", "CD"}, {"CB", "CG", "CD", "OE1"}},
	"GLU": {{"N", "CA", "CB", "CG"}, {"CA", "CB", "CG", "CD"}, {"CB", "CG", "CD", "OE1"}},
	"HIS": {{"N", "CA", "CB", "CG"}, {"CA", "CB", "CG", "ND1"}},
	"ILE": {{"N", "CA", "CB", "CG1"}, {"CA", "CB", "CG1", "CD1"}},
	"LEU": {{"N", "CA", "CB", "CG"}, {"CA", "CB", "CG", "CD1"}},
	"LYS": {{"N", "CA", "CB", "CG"}, {"CA", "CB", "CG", "CD"}, {"CB", "CG", "CD", "CE"}, {"CG", "CD", "CE", "NZ"}},
	"MET": {{"N", "CA", "CB", "CG"}, {"CA", "CB", "CG", "SD"}, {"CB", "CG", "SD", "CE"}},
	"PHE": {{"N", "CA", "CB", "CG"}, {"CA", "CB", "CG", "CD1"}},
	"PRO": {{"N", "CA", "CB", "CG"}, {"CA", "CB", "CG", "CD"}},
	"SER": {{"N", "CA", "CB", "OG"}},
	"THR": {{"N", "CA", "CB", "OG1"}},
	"TRP": {{"N", "CA", "CB", "CG"}, {"CA", "CB", "CG", "CD1"}},
	"TYR": {{"N", "CA", "CB", "CG"}, {"CA", "CB", "CG", "CD1"}},
	"VAL": {{"N", "CA", "CB", "CG1"}},
}
