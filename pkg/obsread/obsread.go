// 17 Sep 2026

// Package obsread reads residue observations for scoring. The input
// is JSON,
//
//	{"models": [{"id": "1", "polymers": [{"residues": [...]}]}]}
//
// and each residue either gives its angles (phi, psi, chi) or the
// coordinates of its atoms, from which the angles are calculated.
// Angles that are given win over ones that could be calculated.
package obsread

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/andrew-torda/tortoize/pkg/aacode"
	"github.com/andrew-torda/tortoize/pkg/geom"
	"github.com/andrew-torda/tortoize/pkg/histogram"
	"github.com/andrew-torda/tortoize/pkg/zscore"
	"github.com/andrew-torda/tortoize/pkg/zwrap"
	"github.com/rs/zerolog/log"
)

// Undefined is the value of an angle we could not get.
const Undefined = 360

// CisLimit is the largest |omega| for a cis peptide bond.
const CisLimit = 30

// MaxPeptideBond is the longest C-N distance, in Angstrom, that still
// joins two residues. Anything longer is a chain break.
const MaxPeptideBond = 2.5

type jsonResidue struct {
	AsymID string                `json:"asymID"`
	SeqID  int                   `json:"seqID"`
	CompID string                `json:"compID"`
	PDB    zscore.PDBID          `json:"pdb"`
	SS     string                `json:"ss"`
	Phi    *float64              `json:"phi"`
	Psi    *float64              `json:"psi"`
	Chi    []float64             `json:"chi"`
	Cis    *bool                 `json:"cis"`
	PrePro *bool                 `json:"prepro"`
	Atoms  map[string][3]float64 `json:"atoms"`
}

type jsonPolymer struct {
	Residues []jsonResidue `json:"residues"`
}

type jsonModel struct {
	ID       string        `json:"id"`
	Polymers []jsonPolymer `json:"polymers"`
}

type jsonInput struct {
	Models []jsonModel `json:"models"`
}

// SecStr maps a DSSP code onto the classes we have histograms for.
// Only alpha helices and strands count. 3-10 and pi helices, turns
// and the rest are Other.
func SecStr(dssp string) histogram.SecStr {
	switch dssp {
	case "H":
		return histogram.Helix
	case "E":
		return histogram.Strand
	}
	return histogram.Other
}

func (r *jsonResidue) atom(name string) (geom.Xyz, bool) {
	a, ok := r.Atoms[name]
	return geom.Xyz{X: a[0], Y: a[1], Z: a[2]}, ok
}

// dihedral finds four atoms, some of them perhaps in the residue
// before or after, and returns the angle or Undefined.
func dihedral(res [4]*jsonResidue, names [4]string) float64 {
	var x [4]geom.Xyz
	for i := range res {
		if res[i] == nil {
			return Undefined
		}
		var ok bool
		if x[i], ok = res[i].atom(names[i]); !ok {
			return Undefined
		}
	}
	a, err := geom.Dihedral(x[0], x[1], x[2], x[3])
	if err != nil {
		return Undefined
	}
	return a
}

// chis calculates as many chi angles as it can, stopping at the first
// one with missing atoms.
func (r *jsonResidue) chis() []float64 {
	defs, ok := aacode.ChiAtoms[r.CompID]
	if !ok {
		aa, _ := aacode.Remap(r.CompID)
		defs = aacode.ChiAtoms[aa]
	}
	var chi []float64
	for _, d := range defs {
		a := dihedral([4]*jsonResidue{r, r, r, r}, d)
		if a == Undefined {
			break
		}
		chi = append(chi, a)
	}
	return chi
}

// linked is false if both residues have coordinates for the peptide
// bond and it is too long. Residues without atoms are taken as linked.
func linked(prev, next *jsonResidue) bool {
	c, ok1 := prev.atom("C")
	n, ok2 := next.atom("N")
	if !ok1 || !ok2 {
		return true
	}
	return geom.Dist(c, n) <= MaxPeptideBond
}

// convert makes the observations for one polymer. The residues on
// either side are needed for phi, psi, omega and the pre-proline
// flag.
func convert(in []jsonResidue) []zscore.Observation {
	out := make([]zscore.Observation, len(in))
	for i := range in {
		r := &in[i]
		var prev, next *jsonResidue
		if i > 0 && linked(&in[i-1], r) {
			prev = &in[i-1]
		}
		if i+1 < len(in) && linked(r, &in[i+1]) {
			next = &in[i+1]
		}
		o := zscore.Observation{
			AsymID: r.AsymID, SeqID: r.SeqID, CompID: r.CompID, PDB: r.PDB,
			SS: SecStr(r.SS), Phi: Undefined, Psi: Undefined, Chi: r.Chi,
		}
		switch {
		case r.Phi != nil:
			o.Phi = *r.Phi
		case r.Atoms != nil:
			o.Phi = dihedral([4]*jsonResidue{prev, r, r, r}, [4]string{"C", "N", "CA", "C"})
		}
		switch {
		case r.Psi != nil:
			o.Psi = *r.Psi
		case r.Atoms != nil:
			o.Psi = dihedral([4]*jsonResidue{r, r, r, next}, [4]string{"N", "CA", "C", "N"})
		}
		if o.Chi == nil && r.Atoms != nil {
			o.Chi = r.chis()
		}
		switch {
		case r.PrePro != nil:
			o.PrePro = *r.PrePro
		case next != nil:
			o.PrePro = next.CompID == "PRO"
		}
		switch {
		case r.Cis != nil:
			o.Cis = *r.Cis
		case r.Atoms != nil:
			omega := dihedral([4]*jsonResidue{prev, prev, r, r}, [4]string{"CA", "C", "N", "CA"})
			o.Cis = omega != Undefined && math.Abs(omega) < CisLimit
		}
		out[i] = o
	}
	return out
}

// Read reads all the models from r.
func Read(r io.Reader) ([]zscore.Model, error) {
	var in jsonInput
	dec := json.NewDecoder(r)
	if err := dec.Decode(&in); err != nil {
		return nil, fmt.Errorf("reading observations: %w", err)
	}
	if len(in.Models) == 0 {
		return nil, fmt.Errorf("reading observations: no models")
	}
	models := make([]zscore.Model, 0, len(in.Models))
	for im, jm := range in.Models {
		m := zscore.Model{ID: jm.ID}
		if m.ID == "" {
			m.ID = fmt.Sprint(im + 1)
		}
		for ip, jp := range jm.Polymers {
			for ir := range jp.Residues {
				if jp.Residues[ir].CompID == "" {
					return nil, fmt.Errorf("model %s polymer %d residue %d: no compID", m.ID, ip, ir)
				}
			}
			m.Polymers = append(m.Polymers, zscore.Polymer{Residues: convert(jp.Residues)})
		}
		log.Debug().Str("model", m.ID).Int("polymers", len(m.Polymers)).Msg("read model")
		models = append(models, m)
	}
	return models, nil
}

// ReadFile reads the models from a file, which may be compressed.
func ReadFile(name string) ([]zscore.Model, error) {
	fp, err := zwrap.Open(name)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	models, err := Read(fp)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return models, nil
}
