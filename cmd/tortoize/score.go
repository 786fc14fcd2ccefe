// 20 Sep 2026

package main

import (
	"context"
	"fmt"

	"github.com/andrew-torda/tortoize/pkg/obsread"
	"github.com/andrew-torda/tortoize/pkg/registry"
	"github.com/andrew-torda/tortoize/pkg/zscore"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// scoreInto scores the models from one input and adds them to rep.
func scoreInto(ctx context.Context, a *app, tb *registry.Tables, models []zscore.Model, rep *zscore.Report) error {
	scores, err := zscore.ScoreModels(ctx, tb, models, a.workers())
	if err != nil {
		return err
	}
	for i, ms := range scores {
		if err := rep.Add(models[i].ID, ms); err != nil {
			return err
		}
	}
	return nil
}

func newScoreCmd(a *app) *cobra.Command {
	var indent bool
	cmd := &cobra.Command{
		Use:   "score [file.json ...]",
		Short: "Score the models in observation files.",
		Long: `Score every model in the files and write one report with all of them.
Model ids have to be different across the files. With no files, or a file
called -, read standard input.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tb, err := registry.Shared(a.v.GetString(keyDataDir))
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if d := a.timeout(); d > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, d)
				defer cancel()
			}
			if len(args) == 0 {
				args = []string{"-"}
			}
			rep := zscore.NewReport(version)
			for _, name := range args {
				var models []zscore.Model
				var err error
				if name == "-" {
					models, err = obsread.Read(cmd.InOrStdin())
				} else {
					models, err = obsread.ReadFile(name)
				}
				if err == nil {
					err = scoreInto(ctx, a, tb, models, rep)
				}
				if err != nil {
					return fmt.Errorf("score %s: %w", name, err)
				}
				log.Debug().Str("file", name).Msg("scored")
			}
			out, closeOut, err := a.output(cmd)
			if err != nil {
				return fmt.Errorf("score: %w", err)
			}
			if err := rep.Write(out, indent); err != nil {
				closeOut()
				return fmt.Errorf("score: %w", err)
			}
			return closeOut()
		},
	}
	cmd.Flags().BoolVar(&indent, "indent", false, "make the output readable")
	cmd.Flags().IntP("workers", "w", 0, "models scored at once")
	keyFlag(cmd.Flags(), "workers", keyWorkers)
	cmd.Flags().Duration("timeout", 0, "give up after this long")
	keyFlag(cmd.Flags(), "timeout", keyTimeout)
	cmd.Flags().StringP("output", "o", "", "output file, - for standard output")
	keyFlag(cmd.Flags(), "output", keyOutput)
	return cmd
}
