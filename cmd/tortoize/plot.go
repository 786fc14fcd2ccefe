// 21 Sep 2026

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/andrew-torda/tortoize/pkg/aacode"
	"github.com/andrew-torda/tortoize/pkg/histogram"
	"github.com/andrew-torda/tortoize/pkg/obsread"
	"github.com/andrew-torda/tortoize/pkg/plot"
	"github.com/andrew-torda/tortoize/pkg/registry"
	"github.com/andrew-torda/tortoize/pkg/zscore"
	"github.com/spf13/cobra"
)

// points collects the angles of residues that would be scored
// against h.
func points(tb *registry.Tables, h *histogram.Histogram, models []zscore.Model) []plot.Point {
	var pts []plot.Point
	for _, m := range models {
		for _, p := range m.Polymers {
			for i := 1; i+1 < len(p.Residues); i++ {
				o := &p.Residues[i]
				aa, _ := aacode.Remap(o.CompID)
				if !zscore.Qualifies(o) || !aacode.Known(aa) {
					continue
				}
				ramaSS, torsSS := zscore.Classes(aa, o)
				if h.Kind() == histogram.Rama {
					if rh, err := tb.Rama(aa, ramaSS); err == nil && rh == h {
						pts = append(pts, plot.Point{A1: o.Phi, A2: o.Psi})
					}
					continue
				}
				if len(o.Chi) == 0 || torsSS != h.SS() || aa != h.AA() {
					continue
				}
				pt := plot.Point{A1: o.Chi[0]}
				if len(o.Chi) > 1 {
					pt.A2 = o.Chi[1]
				}
				pts = append(pts, pt)
			}
		}
	}
	return pts
}

func newPlotCmd(a *app) *cobra.Command {
	var kind, aa, ss, obsFile, outFile string
	cmd := &cobra.Command{
		Use:   "plot --aa ALA --ss helix -o file.png",
		Short: "Draw a histogram as a PNG.",
		Long: `Draw one reference histogram as a density map. With --obs, the angles of
residues from an observation file that would be scored against it are drawn
on top.`,
		Args: nArgs(0, 0),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := parseKind(kind)
			if err != nil {
				return err
			}
			class, err := parseSS(ss)
			if err != nil {
				return err
			}
			tb, err := registry.Open(a.v.GetString(keyDataDir))
			if err != nil {
				return err
			}
			var h *histogram.Histogram
			if k == histogram.Rama {
				h, err = tb.Rama(aa, class)
			} else {
				h, err = tb.Torsion(aa, class)
			}
			if err != nil {
				return err
			}
			var pts []plot.Point
			if obsFile != "" {
				models, err := obsread.ReadFile(obsFile)
				if err != nil {
					return err
				}
				pts = points(tb, h, models)
			}
			opt := plot.Options{
				Width:    a.v.GetInt(keyWidth),
				Height:   a.v.GetInt(keyHeight),
				LogScale: a.v.GetBool(keyLogScale),
			}
			var w io.Writer = cmd.OutOrStdout()
			if outFile != "-" {
				fp, err := os.Create(outFile)
				if err != nil {
					return fmt.Errorf("plot: %w", err)
				}
				defer fp.Close()
				w = fp
			}
			return plot.WritePNG(w, h, pts, opt)
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&kind, "kind", "rama", "rama or torsion")
	fl.StringVar(&aa, "aa", "", "residue, or *** and IV_ for the pre-proline groups")
	fl.StringVar(&ss, "ss", "other", "class (helix, strand, other, cis, prepro)")
	fl.StringVar(&obsFile, "obs", "", "observation file with angles to mark")
	fl.StringVarP(&outFile, "output", "o", "", "png file, - for standard output")
	fl.Int("width", 0, "picture width")
	keyFlag(fl, "width", keyWidth)
	fl.Int("height", 0, "picture height")
	keyFlag(fl, "height", keyHeight)
	fl.Bool("log-scale", false, "colour by log of the counts")
	keyFlag(fl, "log-scale", keyLogScale)
	for _, name := range []string{"aa", "output"} {
		if err := cmd.MarkFlagRequired(name); err != nil {
			panic(err)
		}
	}
	return cmd
}
