// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/clp-go/clp/internal/config"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `clpconfig config` command tree.
func newConfigCommand(s *session) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage clpconfig configuration",
		Long: `Manage clpconfig configuration.

Configuration is stored in:
  - Linux: ~/.config/clpconfig/config.cue
  - macOS: ~/Library/Application Support/clpconfig/config.cue
  - Windows: %APPDATA%\clpconfig\config.cue

A clpconfig.cue in the working directory is used when none of these exist.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if s.cfgErr != nil {
				return failure(s.cfgErr)
			}
			out := cmd.OutOrStdout()

			path, found, err := config.Resolve(config.LoadOptions{ConfigFilePath: s.cfgFile})
			if err != nil {
				return err
			}
			if found {
				fmt.Fprintf(out, "// Config file: %s\n", path)
			} else {
				fmt.Fprintln(out, "// Config file: (using defaults)")
			}
			fmt.Fprint(out, config.GenerateCUE(s.cfg))
			return nil
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.CreateDefaultConfig("", force)
			if err != nil {
				return failure(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Created default configuration at %s\n", s.render(SuccessStyle, "✓"), path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing configuration file")
	cfgCmd.AddCommand(initCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			cfgDir, err := config.ConfigDir()
			if err != nil {
				return err
			}
			path, found, err := config.Resolve(config.LoadOptions{ConfigFilePath: s.cfgFile})
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Config directory: %s\n", cfgDir)
			if found {
				fmt.Fprintf(out, "Config file: %s\n", path)
			} else {
				fmt.Fprintf(out, "Config file: %s %s\n", path, s.render(SubtitleStyle, "(not found, using defaults)"))
			}
			return nil
		},
	})

	return cfgCmd
}
