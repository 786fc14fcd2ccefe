// 20 Sep 2026

package main

import (
	"fmt"
	"os"

	"github.com/andrew-torda/tortoize/pkg/histogram"
	"github.com/andrew-torda/tortoize/pkg/registry"
	"github.com/andrew-torda/tortoize/pkg/table"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newBuildCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the binary tables from histogram text files.",
		Long: `Read zscores_proteins.txt and the rama_count_* and torsion_count_* files
from the source directory and write rama-data.bin and torsion-data.bin to the
data directory. Files that are not there are skipped. Any file may be gzipped
or zstd compressed.`,
		Args: nArgs(0, 0),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, dst := a.v.GetString(keySourceDir), a.v.GetString(keyDataDir)
			if err := os.MkdirAll(dst, 0o755); err != nil {
				return fmt.Errorf("build: %w", err)
			}
			if err := table.Build(src, dst); err != nil {
				return err
			}
			tb, err := registry.Open(dst) // can we read what we wrote ?
			if err != nil {
				return fmt.Errorf("build: checking tables: %w", err)
			}
			log.Info().Int("rama", len(tb.File(histogram.Rama).Hists)).Int("torsion", len(tb.File(histogram.Torsion).Hists)).
				Str("dir", dst).Msg("built")
			return nil
		},
	}
	cmd.Flags().String("source-dir", "", "directory with the histogram text files")
	keyFlag(cmd.Flags(), "source-dir", keySourceDir)
	return cmd
}
