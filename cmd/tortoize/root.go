// 20 Sep 2026

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/andrew-torda/tortoize/internal/config"
	"github.com/andrew-torda/tortoize/internal/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// version is set with -ldflags "-X main.version=..."
var version = "1.0.0"

// Keys, as in the settings file
const (
	keyDataDir   = "data_dir"
	keySourceDir = "source_dir"
	keyOutput    = "output"
	keyWorkers   = "workers"
	keyTimeout   = "timeout"
	keyWidth     = "plot.width"
	keyHeight    = "plot.height"
	keyLogScale  = "plot.log_scale"
)

type usageError struct{ error }

func (e *usageError) Unwrap() error { return e.error }

// app holds what the commands share.
type app struct {
	v       *viper.Viper
	cfgFile string
	verbose int
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "tortoize", config.DefaultName)
}

// initConfig puts the settings file under the environment and flags.
func (a *app) initConfig(cmd *cobra.Command) error {
	path := a.cfgFile
	var cfg config.Config
	var err error
	if path == "" {
		cfg, err = config.LoadOptional(defaultConfigPath())
	} else {
		cfg, err = config.Load(path)
	}
	if err != nil {
		return err
	}
	a.v.SetDefault(keyDataDir, cfg.DataDir)
	a.v.SetDefault(keySourceDir, cfg.SourceDir)
	a.v.SetDefault(keyOutput, cfg.Output)
	a.v.SetDefault(keyWorkers, cfg.Workers)
	a.v.SetDefault(keyTimeout, cfg.Timeout)
	a.v.SetDefault(keyWidth, cfg.Plot.Width)
	a.v.SetDefault(keyHeight, cfg.Plot.Height)
	a.v.SetDefault(keyLogScale, cfg.Plot.LogScale)

	a.v.SetEnvPrefix("TORTOIZE")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	a.v.AutomaticEnv()

	// flags are bound by their key, so --data-dir sets data_dir
	var bindErr error
	bind := func(f *pflag.Flag) {
		if key, ok := f.Annotations["key"]; ok && bindErr == nil {
			bindErr = a.v.BindPFlag(key[0], f)
		}
	}
	cmd.Flags().VisitAll(bind)
	cmd.InheritedFlags().VisitAll(bind)
	if bindErr != nil {
		return bindErr
	}
	log.Debug().Str("config", path).Str(keyDataDir, a.v.GetString(keyDataDir)).Msg("settings")
	return nil
}

// keyFlag marks a flag as setting key.
func keyFlag(fs *pflag.FlagSet, name, key string) {
	if err := fs.SetAnnotation(name, "key", []string{key}); err != nil {
		panic(err) // only if name is wrong
	}
}

func (a *app) workers() int {
	if n := a.v.GetInt(keyWorkers); n > 0 {
		return n
	}
	return 1
}

func (a *app) timeout() time.Duration { return a.v.GetDuration(keyTimeout) }

// output opens where results go. The closer must be called.
func (a *app) output(cmd *cobra.Command) (io.Writer, func() error, error) {
	name := a.v.GetString(keyOutput)
	if name == "" || name == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	fp, err := os.Create(name)
	if err != nil {
		return nil, nil, err
	}
	return fp, fp.Close, nil
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	root := &cobra.Command{
		Use:           "tortoize",
		Short:         "Ramachandran and torsion Z-scores for protein models.",
		Long:          `tortoize compares the backbone and side chain dihedral angles of protein models with reference histograms.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.ConfigureRuntime()
			logging.SetVerbosity(a.verbose)
			return a.initConfig(cmd)
		},
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{fmt.Errorf("%s: %w", cmd.Name(), err)}
	})
	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "settings file")
	pf.String("data-dir", "", "directory with the binary tables")
	keyFlag(pf, "data-dir", keyDataDir)
	pf.CountVarP(&a.verbose, "verbose", "v", "more logging, repeat for more")

	root.AddCommand(
		newBuildCmd(a),
		newScoreCmd(a),
		newDumpCmd(a),
		newPlotCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return root
}

// nArgs is cobra.RangeArgs, but the error is a usage error.
func nArgs(lo, hi int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.RangeArgs(lo, hi)(cmd, args); err != nil {
			return &usageError{err}
		}
		return nil
	}
}
