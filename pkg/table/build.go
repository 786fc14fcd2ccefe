// 11 Sep 2026

package table

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/andrew-torda/tortoize/pkg/aacode"
	"github.com/andrew-torda/tortoize/pkg/histogram"
	"github.com/andrew-torda/tortoize/pkg/zwrap"
	"github.com/rs/zerolog/log"
)

// SummaryName is the file with the global averages over a set of
// reference proteins.
const SummaryName = "zscores_proteins.txt"

var rxSummary = regexp.MustCompile(
	`^(Rama|Rota): average ([-+0-9.eE]+), sd ([-+0-9.eE]+)\s*$`)

// Globals are the two pairs of numbers from the summary file.
type Globals struct {
	RamaMean, RamaSD       float32
	TorsionMean, TorsionSD float32
}

// ReadSummary reads the global means and sds. Both lines must be
// there.
func ReadSummary(path string) (g Globals, err error) {
	fp, err := zwrap.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return g, &MissingResourceError{Name: path, Err: err}
		}
		return g, err
	}
	defer fp.Close()
	var gotRama, gotRota bool
	scn := bufio.NewScanner(fp)
	for n := 1; scn.Scan(); n++ {
		m := rxSummary.FindStringSubmatch(scn.Text())
		if m == nil {
			continue
		}
		mean, err1 := strconv.ParseFloat(m[2], 32)
		sd, err2 := strconv.ParseFloat(m[3], 32)
		if err1 != nil || err2 != nil {
			return g, &FormatError{File: path, Line: n, Text: scn.Text(), Desc: "bad number"}
		}
		if !(sd > 0) {
			return g, &FormatError{File: path, Line: n, Text: scn.Text(), Desc: "sd is not positive"}
		}
		if m[1] == "Rama" {
			g.RamaMean, g.RamaSD, gotRama = float32(mean), float32(sd), true
		} else {
			g.TorsionMean, g.TorsionSD, gotRota = float32(mean), float32(sd), true
		}
	}
	if err := scn.Err(); err != nil {
		return g, fmt.Errorf("reading %s: %w", path, err)
	}
	if !gotRama || !gotRota {
		return g, &FormatError{File: path, Desc: "missing Rama or Rota line"}
	}
	return g, nil
}

// Source is one input file and what it is for.
type Source struct {
	Name string // without directory
	AA   string
	SS   histogram.SecStr
}

var plainSS = []histogram.SecStr{histogram.Helix, histogram.Strand, histogram.Other}

// Sources lists the files a table of kind is built from, in the
// order they are stored.
func Sources(kind histogram.Kind) []Source {
	var srcs []Source
	for _, aa := range aacode.Codes() {
		for _, ss := range plainSS {
			name := fmt.Sprintf("%s_count_%s_%s.txt", kind, ss, aa)
			srcs = append(srcs, Source{Name: name, AA: aa, SS: ss})
		}
	}
	if kind == histogram.Rama {
		srcs = append(srcs,
			Source{"rama_count_cis_PRO.txt", "PRO", histogram.Cis},
			Source{"rama_count_prepro_all_noGIV.txt", "***", histogram.PrePro},
			Source{"rama_count_prepro_GLY.txt", "GLY", histogram.PrePro},
			Source{"rama_count_prepro_ILEVAL.txt", "IV_", histogram.PrePro})
	}
	return srcs
}

// readOne reads a source file. If neither it nor a compressed
// version is there, it returns nil and no error.
func readOne(path string, kind histogram.Kind, src Source) (*histogram.Histogram, error) {
	fp, err := zwrap.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer fp.Close()
	h, err := histogram.ReadSource(fp, kind, src.AA, src.SS)
	if err != nil {
		var fe *FormatError
		if errors.As(err, &fe) {
			fe.File = path
			return nil, fe
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return h, nil
}

// BuildFile reads all the source files of one kind in srcDir.
func BuildFile(srcDir string, kind histogram.Kind, mean, sd float32) (*File, error) {
	f := &File{Kind: kind, Mean: mean, SD: sd}
	for _, src := range Sources(kind) {
		h, err := readOne(filepath.Join(srcDir, src.Name), kind, src)
		if err != nil {
			return nil, err
		}
		if h == nil {
			log.Trace().Str("file", src.Name).Msg("not there, skipping")
			continue
		}
		f.Hists = append(f.Hists, h)
	}
	log.Debug().Stringer("kind", kind).Int("histograms", len(f.Hists)).Msg("read sources")
	return f, nil
}

// Write writes f into dir under its usual name. It goes to a
// temporary file first so a reader never sees half a table.
func (f *File) Write(dir string) (string, error) {
	dst := filepath.Join(dir, FileName(f.Kind))
	tmp, err := os.CreateTemp(dir, ".tortoize-*")
	if err != nil {
		return "", fmt.Errorf("writing table: %w", err)
	}
	if _, err := f.WriteTo(tmp); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("writing %s: %w", dst, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("closing %s: %w", dst, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return dst, nil
}

// Build reads the summary and every histogram source in srcDir and
// writes the Ramachandran and torsion tables to dstDir.
func Build(srcDir, dstDir string) error {
	g, err := ReadSummary(filepath.Join(srcDir, SummaryName))
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}
	rama, err := BuildFile(srcDir, histogram.Rama, g.RamaMean, g.RamaSD)
	if err != nil {
		return fmt.Errorf("build rama: %w", err)
	}
	tors, err := BuildFile(srcDir, histogram.Torsion, g.TorsionMean, g.TorsionSD)
	if err != nil {
		return fmt.Errorf("build torsion: %w", err)
	}
	for _, f := range []*File{rama, tors} {
		name, err := f.Write(dstDir)
		if err != nil {
			return fmt.Errorf("build: %w", err)
		}
		back, err := Load(name, f.Kind)
		if err != nil {
			return fmt.Errorf("build: reading back: %w", err)
		}
		if !Equal(f, back) {
			return fmt.Errorf("build: %s does not read back as written", name)
		}
		log.Info().Str("file", name).Int("histograms", len(f.Hists)).Msg("wrote table")
	}
	return nil
}
