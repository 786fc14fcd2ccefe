// 14 Sep 2026

// Package zscore turns dihedral angles into per residue and per model
// Z-scores against the reference histograms.
package zscore

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/andrew-torda/tortoize/pkg/histogram"
)

// PDBID is the author numbering of a residue.
type PDBID struct {
	StrandID string `json:"strandID"`
	SeqNum   int    `json:"seqNum"`
	CompID   string `json:"compID"`
	InsCode  string `json:"insCode"`
}

// Observation is what we know about one residue. Angles are in
// degrees. An undefined phi or psi is 360 or NaN. SS is one of Helix,
// Strand or Other. Anything else counts as Other.
type Observation struct {
	AsymID string
	SeqID  int
	CompID string
	PDB    PDBID
	SS     histogram.SecStr
	Phi    float64
	Psi    float64
	Chi    []float64
	PrePro bool // next residue is a proline
	Cis    bool // peptide bond before this residue is cis
}

// Polymer is one chain, residues in order. The first and last are
// never scored.
type Polymer struct {
	Residues []Observation
}

// Model is one model from a structure.
type Model struct {
	ID       string
	Polymers []Polymer
}

// Float is a float64 which is written to JSON as null when it is
// not a number.
type Float float64

func (f Float) MarshalJSON() ([]byte, error) {
	x := float64(f)
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, x, 'g', -1, 64), nil
}

func (f *Float) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = Float(math.NaN())
		return nil
	}
	var x float64
	if err := json.Unmarshal(b, &x); err != nil {
		return err
	}
	*f = Float(x)
	return nil
}

// ClassScore is a Z-score and the class of histogram it came from.
type ClassScore struct {
	SSType string `json:"ss-type"`
	ZScore Float  `json:"z-score"`
}

// ResidueScore is the result for one residue. Torsion is nil if the
// residue has no chi angles or there was no torsion histogram for it.
type ResidueScore struct {
	AsymID  string      `json:"asymID"`
	SeqID   int         `json:"seqID"`
	CompID  string      `json:"compID"`
	PDB     PDBID       `json:"pdb"`
	Rama    ClassScore  `json:"ramachandran"`
	Torsion *ClassScore `json:"torsion,omitempty"`
}

// ModelScore is the result for one model.
type ModelScore struct {
	RamaZ           Float          `json:"ramachandran-z"`
	RamaJackknifeSD Float          `json:"ramachandran-jackknife-sd"`
	TorsZ           Float          `json:"torsion-z"`
	TorsJackknifeSD Float          `json:"torsion-jackknife-sd"`
	Residues        []ResidueScore `json:"residues"`
}
