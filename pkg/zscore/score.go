// 14 Sep 2026

package zscore

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/andrew-torda/tortoize/pkg/aacode"
	"github.com/andrew-torda/tortoize/pkg/histogram"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Tables is what we need from the reference tables. A
// *registry.Tables does the job.
type Tables interface {
	Rama(aa string, ss histogram.SecStr) (*histogram.Histogram, error)
	Torsion(aa string, ss histogram.SecStr) (*histogram.Histogram, error)
	RamaMean() float32
	RamaSD() float32
	TorsionMean() float32
	TorsionSD() float32
}

// UnrecognizedResidueError is for residues that are not one of the
// twenty, even after remapping. They are skipped.
type UnrecognizedResidueError struct {
	CompID string
}

func (e *UnrecognizedResidueError) Error() string {
	return "unrecognized residue " + e.CompID
}

func undefined(a float64) bool { return a == 360 || math.IsNaN(a) }

// Qualifies says if a residue has both phi and psi.
func Qualifies(o *Observation) bool { return !undefined(o.Phi) && !undefined(o.Psi) }

// Classes gives the histogram classes for the Ramachandran and torsion
// lookups. A residue before a proline beats a cis proline which beats
// the secondary structure.
func Classes(aa string, o *Observation) (rama, tors histogram.SecStr) {
	switch o.SS {
	case histogram.Helix, histogram.Strand:
		tors = o.SS
	default:
		tors = histogram.Other
	}
	switch {
	case o.PrePro && aa != "PRO":
		rama = histogram.PrePro
	case o.Cis && aa == "PRO":
		rama = histogram.Cis
	default:
		rama = tors
	}
	return rama, tors
}

// residue is the score for one residue plus the raw numbers.
type residue struct {
	ResidueScore
	ramaZ, torsZ float64
	hasTors      bool
}

// scoreResidue scores one residue. An UnrecognizedResidueError means
// skip it. Any other error comes from the Ramachandran lookup and is
// fatal for the model.
func scoreResidue(t Tables, o *Observation) (residue, error) {
	r := residue{ResidueScore: ResidueScore{
		AsymID: o.AsymID, SeqID: o.SeqID, CompID: o.CompID, PDB: o.PDB}}

	aa, changed := aacode.Remap(o.CompID)
	if changed {
		log.Trace().Str("from", o.CompID).Str("to", aa).Msg("replacing residue")
	}
	if !aacode.Known(aa) {
		return r, &UnrecognizedResidueError{CompID: o.CompID}
	}
	ramaSS, torsSS := Classes(aa, o)

	h, err := t.Rama(aa, ramaSS)
	if err != nil {
		return r, fmt.Errorf("%s %d %s: %w", o.AsymID, o.SeqID, o.CompID, err)
	}
	r.ramaZ = h.ZScore(o.Phi, o.Psi)
	r.Rama = ClassScore{SSType: ramaSS.String(), ZScore: Float(r.ramaZ)}

	if len(o.Chi) == 0 {
		return r, nil
	}
	chi1, chi2 := o.Chi[0], 0.0
	if len(o.Chi) > 1 {
		chi2 = o.Chi[1]
	}
	th, err := t.Torsion(aa, torsSS)
	if err != nil {
		log.Debug().Err(err).Str("asym", o.AsymID).Int("seq", o.SeqID).Msg("no torsion score")
		return r, nil
	}
	r.torsZ, r.hasTors = th.ZScore(chi1, chi2), true
	r.Torsion = &ClassScore{SSType: torsSS.String(), ZScore: Float(r.torsZ)}
	return r, nil
}

// ScoreModel calculates the scores for one model. It fails only if a
// Ramachandran histogram is missing.
func ScoreModel(t Tables, m *Model) (*ModelScore, error) {
	var ramaZ, torsZ []float64
	ms := &ModelScore{Residues: []ResidueScore{}}
	for _, poly := range m.Polymers {
		for i := 1; i+1 < len(poly.Residues); i++ {
			o := &poly.Residues[i]
			if !Qualifies(o) {
				continue
			}
			r, err := scoreResidue(t, o)
			if err != nil {
				var ure *UnrecognizedResidueError
				if errors.As(err, &ure) {
					log.Debug().Str("asym", o.AsymID).Int("seq", o.SeqID).Msg(err.Error())
					continue
				}
				return nil, err
			}
			ramaZ = append(ramaZ, r.ramaZ)
			if r.hasTors {
				torsZ = append(torsZ, r.torsZ)
			}
			ms.Residues = append(ms.Residues, r.ResidueScore)
		}
	}
	ms.RamaZ = Float(Normalize(mean(ramaZ), t.RamaMean(), t.RamaSD()))
	ms.TorsZ = Float(Normalize(mean(torsZ), t.TorsionMean(), t.TorsionSD()))
	ms.RamaJackknifeSD = Float(Jackknife(ramaZ, t.RamaMean(), t.RamaSD()))
	ms.TorsJackknifeSD = Float(Jackknife(torsZ, t.TorsionMean(), t.TorsionSD()))
	log.Debug().Str("model", m.ID).Int("residues", len(ms.Residues)).Int("torsions", len(torsZ)).
		Msg("scored model")
	return ms, nil
}

// ScoreModels scores each model, with at most nWorker at once. The
// results are in the same order as models. The first error stops the
// rest.
func ScoreModels(ctx context.Context, t Tables, models []Model, nWorker int) ([]*ModelScore, error) {
	if nWorker < 1 {
		nWorker = 1
	}
	out := make([]*ModelScore, len(models))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(nWorker)
	for i := range models {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			ms, err := ScoreModel(t, &models[i])
			if err != nil {
				return fmt.Errorf("model %s: %w", models[i].ID, err)
			}
			out[i] = ms
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil { // cancelled before anything started
		return nil, err
	}
	return out, nil
}
