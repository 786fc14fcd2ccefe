// 13 Sep 2026

// Package registry gives access to the Ramachandran and torsion
// tables by residue and structural class. A Tables value is not
// changed after it is made, so one can be shared by any number of
// goroutines.
package registry

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/andrew-torda/tortoize/pkg/histogram"
	"github.com/andrew-torda/tortoize/pkg/table"
	"github.com/rs/zerolog/log"
)

// MissingDataError says there is no histogram for a residue and class.
type MissingDataError struct {
	Kind histogram.Kind
	AA   string
	SS   histogram.SecStr
}

func (e *MissingDataError) Error() string {
	return fmt.Sprintf("data missing for %s %s %s", e.Kind, e.AA, e.SS)
}

type key struct {
	aa string
	ss histogram.SecStr
}

// Tables holds both tables and an index into each.
type Tables struct {
	rama, tors     *table.File
	ramaIx, torsIx map[key]*histogram.Histogram
}

func index(f *table.File) map[key]*histogram.Histogram {
	m := make(map[key]*histogram.Histogram, len(f.Hists))
	for _, h := range f.Hists {
		k := key{h.AA(), h.SS()}
		if _, dup := m[k]; dup {
			log.Warn().Stringer("kind", f.Kind).Str("aa", k.aa).Stringer("ss", k.ss).
				Msg("duplicate histogram, using the first")
			continue
		}
		m[k] = h
	}
	return m
}

// New makes a Tables from two tables already in memory. Neither may
// be changed afterwards.
func New(rama, tors *table.File) *Tables {
	return &Tables{
		rama: rama, tors: tors,
		ramaIx: index(rama), torsIx: index(tors),
	}
}

// Open loads the two tables from dir.
func Open(dir string) (*Tables, error) {
	rama, err := table.Load(filepath.Join(dir, table.RamaName), histogram.Rama)
	if err != nil {
		return nil, fmt.Errorf("loading Ramachandran table: %w", err)
	}
	tors, err := table.Load(filepath.Join(dir, table.TorsionName), histogram.Torsion)
	if err != nil {
		return nil, fmt.Errorf("loading torsion table: %w", err)
	}
	log.Debug().Str("dir", dir).Int("rama", len(rama.Hists)).Int("torsion", len(tors.Hists)).
		Msg("tables loaded")
	return New(rama, tors), nil
}

var shared struct {
	once sync.Once
	dir  string
	t    *Tables
	err  error
}

// Shared loads the tables from dir the first time it is called and
// returns the same result after that. Later calls with a different
// dir get an error.
func Shared(dir string) (*Tables, error) {
	shared.once.Do(func() {
		shared.dir = dir
		shared.t, shared.err = Open(dir)
	})
	if shared.dir != dir {
		return nil, fmt.Errorf("tables already loaded from %s, not %s", shared.dir, dir)
	}
	return shared.t, shared.err
}

// ramaKey says which histogram stands in for aa in class ss. All cis
// prolines share one histogram. Residues before a proline are grouped
// as glycine, isoleucine or valine, and everything else.
func ramaKey(aa string, ss histogram.SecStr) key {
	switch ss {
	case histogram.Cis:
		return key{"PRO", ss}
	case histogram.PrePro:
		switch aa {
		case "GLY":
			return key{"GLY", ss}
		case "ILE", "VAL":
			return key{"IV_", ss}
		}
		return key{"***", ss}
	}
	return key{aa, ss}
}

// Rama finds the Ramachandran histogram for aa in class ss.
func (t *Tables) Rama(aa string, ss histogram.SecStr) (*histogram.Histogram, error) {
	if h, ok := t.ramaIx[ramaKey(aa, ss)]; ok {
		return h, nil
	}
	return nil, &MissingDataError{histogram.Rama, aa, ss}
}

// Torsion finds the torsion histogram for aa in class ss.
func (t *Tables) Torsion(aa string, ss histogram.SecStr) (*histogram.Histogram, error) {
	if h, ok := t.torsIx[key{aa, ss}]; ok {
		return h, nil
	}
	return nil, &MissingDataError{histogram.Torsion, aa, ss}
}

func (t *Tables) RamaMean() float32    { return t.rama.Mean }
func (t *Tables) RamaSD() float32      { return t.rama.SD }
func (t *Tables) TorsionMean() float32 { return t.tors.Mean }
func (t *Tables) TorsionSD() float32   { return t.tors.SD }

// File returns the table of kind k, for listing.
func (t *Tables) File(k histogram.Kind) *table.File {
	if k == histogram.Torsion {
		return t.tors
	}
	return t.rama
}
