// 21 Sep 2026

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/andrew-torda/tortoize/internal/config"
	"github.com/andrew-torda/tortoize/pkg/zscore"
	"github.com/spf13/cobra"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Settings file commands.",
	}
	var force bool
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write an example settings file.",
		Long: `Write an example settings file with the defaults. Without a path it goes
to tortoize.toml in the user config directory.`,
		Args: nArgs(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultConfigPath()
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return fmt.Errorf("config init: no user config directory, give a path")
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return err
			}
			if err := config.WriteTemplate(path, force); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "wrote", path)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "replace an existing file")
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the settings in use.",
		Args:  nArgs(0, 0),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for _, k := range []string{keyDataDir, keySourceDir, keyOutput, keyWorkers,
				keyTimeout, keyWidth, keyHeight, keyLogScale} {
				fmt.Fprintf(w, "%s = %v\n", k, a.v.Get(k))
			}
			return nil
		},
	}
	cmd.AddCommand(initCmd, showCmd)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number.",
		Args:  nArgs(0, 0),
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s version %s\n", zscore.Name, version)
			fmt.Fprintf(w, "%s\n%s\n", zscore.Reference, zscore.ReferenceDOI)
		},
	}
}
