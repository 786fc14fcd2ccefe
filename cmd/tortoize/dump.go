// 21 Sep 2026

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/andrew-torda/tortoize/pkg/histogram"
	"github.com/andrew-torda/tortoize/pkg/registry"
	"github.com/andrew-torda/tortoize/pkg/table"
	"github.com/spf13/cobra"
)

var allSS = []histogram.SecStr{histogram.Helix, histogram.Strand, histogram.Other,
	histogram.Cis, histogram.PrePro}

// parseSS takes a class name or its one letter tag.
func parseSS(s string) (histogram.SecStr, error) {
	for _, ss := range allSS {
		if strings.EqualFold(s, ss.String()) || s == string(rune(ss)) {
			return ss, nil
		}
	}
	return 0, &usageError{fmt.Errorf("unknown class %q", s)}
}

func parseKind(s string) (histogram.Kind, error) {
	switch strings.ToLower(s) {
	case "rama", "ramachandran":
		return histogram.Rama, nil
	case "torsion", "tors", "rota":
		return histogram.Torsion, nil
	}
	return 0, &usageError{fmt.Errorf("unknown kind %q", s)}
}

// sourceName is the file a histogram would be built from.
func sourceName(h *histogram.Histogram) (string, bool) {
	for _, src := range table.Sources(h.Kind()) {
		if src.AA == h.AA() && src.SS == h.SS() {
			return src.Name, true
		}
	}
	return "", false
}

type dumpFlags struct {
	kinds  []string
	aa, ss string
	srcDir string
}

// selected picks the histograms the flags ask for.
func (f *dumpFlags) selected(tb *registry.Tables) ([]*histogram.Histogram, error) {
	var ss histogram.SecStr
	if f.ss != "" {
		var err error
		if ss, err = parseSS(f.ss); err != nil {
			return nil, err
		}
	}
	var hists []*histogram.Histogram
	for _, ks := range f.kinds {
		k, err := parseKind(ks)
		if err != nil {
			return nil, err
		}
		for _, h := range tb.File(k).Hists {
			if f.aa != "" && !strings.EqualFold(f.aa, h.AA()) {
				continue
			}
			if ss != 0 && h.SS() != ss {
				continue
			}
			hists = append(hists, h)
		}
	}
	return hists, nil
}

func writeSources(dir string, hists []*histogram.Histogram) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, h := range hists {
		name, ok := sourceName(h)
		if !ok {
			return fmt.Errorf("no source file name for %s", h)
		}
		fp, err := os.Create(filepath.Join(dir, name))
		if err != nil {
			return err
		}
		if err := h.WriteSource(fp); err != nil {
			fp.Close()
			return fmt.Errorf("writing %s: %w", name, err)
		}
		if err := fp.Close(); err != nil {
			return err
		}
	}
	return nil
}

func newDumpCmd(a *app) *cobra.Command {
	var f dumpFlags
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "List the histograms in the tables.",
		Long: `List the histograms in the binary tables with their statistics. With
--to-source, write them out again as the text files build reads. The summary
file is written too, so the directory can be built again.`,
		Args: nArgs(0, 0),
		RunE: func(cmd *cobra.Command, args []string) error {
			tb, err := registry.Open(a.v.GetString(keyDataDir))
			if err != nil {
				return err
			}
			hists, err := f.selected(tb)
			if err != nil {
				return err
			}
			if f.srcDir != "" {
				if err := writeSources(f.srcDir, hists); err != nil {
					return fmt.Errorf("dump: %w", err)
				}
				s := fmt.Sprintf("Rama: average %v, sd %v\nRota: average %v, sd %v\n",
					tb.RamaMean(), tb.RamaSD(), tb.TorsionMean(), tb.TorsionSD())
				return os.WriteFile(filepath.Join(f.srcDir, table.SummaryName), []byte(s), 0o644)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 1, ' ', 0)
			fmt.Fprintln(tw, "kind\taa\tclass\tdim\tspacing\tmean\tsd\tmean_vs_random\tsd_vs_random")
			for _, h := range hists {
				d := "2"
				if !h.Is2D() {
					d = "1"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%g\t%g\t%g\t%g\t%g\n", h.Kind(), h.AA(), h.SS(), d,
					h.BinSpacing, h.Mean, h.SD, h.MeanVsRandom, h.SDVsRandom)
			}
			return tw.Flush()
		},
	}
	fl := cmd.Flags()
	fl.StringSliceVar(&f.kinds, "kind", []string{"rama", "torsion"}, "rama, torsion or both")
	fl.StringVar(&f.aa, "aa", "", "only this residue")
	fl.StringVar(&f.ss, "ss", "", "only this class (helix, strand, other, cis, prepro)")
	fl.StringVar(&f.srcDir, "to-source", "", "write text files to this directory")
	return cmd
}
