// Package cli provides the command-line interface for tonal.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/jmylchreest/tonal/internal/theme"
	"github.com/jmylchreest/tonal/internal/version"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	// Global flags
	globalVerbose bool
	globalQuiet   bool
	globalTheme   string

	// logger is configured in PersistentPreRunE from the global flags and
	// TONAL_LOG_LEVEL.
	logger hclog.Logger = hclog.NewNullLogger()

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "tonal",
		Short: "Perceptual colour schemes from images and seed colours",
		Long: `tonal builds accessible colour schemes in the HCT colour space.

Give it a wallpaper and it picks the seed colours a theme would be built
from; give it a seed colour and it prints every colour role of a light or
dark scheme, guaranteed to keep text readable against its background.`,
		Version:           version.Short(),
		SilenceUsage:      true,
		PersistentPreRunE: setupLogging,
	}
)

// NewRootCmd returns the root command with every flag reset to its default,
// so that repeated executions in one process start from the same state.
func NewRootCmd() *cobra.Command {
	resetFlags(rootCmd)
	logger = hclog.NewNullLogger()
	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalVerbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&globalQuiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().StringVarP(&globalTheme, "theme", "t", string(theme.ModeBoth), "schemes to build (light, dark, both)")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(schemeCmd)
	rootCmd.AddCommand(paletteCmd)
	rootCmd.AddCommand(contrastCmd)
}

// resetFlags restores every flag in the command tree to its default value.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// logLevel picks the level from the flags, falling back to TONAL_LOG_LEVEL.
func logLevel() hclog.Level {
	switch {
	case globalQuiet:
		return hclog.Error
	case globalVerbose:
		return hclog.Debug
	}
	if env := os.Getenv(theme.EnvLogLevel); env != "" {
		if lvl := hclog.LevelFromString(env); lvl != hclog.NoLevel {
			return lvl
		}
	}
	return hclog.Warn
}

func setupLogging(cmd *cobra.Command, _ []string) error {
	if globalVerbose && globalQuiet {
		return fmt.Errorf("--verbose and --quiet cannot be used together")
	}
	var out io.Writer = cmd.ErrOrStderr()
	logger = hclog.New(&hclog.LoggerOptions{
		Name:   "tonal",
		Output: out,
		Level:  logLevel(),
	})
	return nil
}

// newPipeline builds a theme pipeline from defaults, then the environment,
// then the flags given on cmd. mod should only touch fields whose flags were
// set explicitly.
func newPipeline(cmd *cobra.Command, mod func(*theme.Config) error) (*theme.Pipeline, error) {
	var modErr error
	b := theme.NewBuilder().
		WithEnvConfig().
		WithLogger(logger).
		WithOverride(func(c *theme.Config) {
			if isFlagSet(cmd, "theme") {
				c.Mode = theme.Mode(lower(globalTheme))
			}
			if mod != nil {
				modErr = mod(c)
			}
		})
	p, err := b.Build()
	if modErr != nil {
		return nil, modErr
	}
	return p, err
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print detailed version information including build date, commit hash, and Go version.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if versionJSON {
			return writeJSON(cmd.OutOrStdout(), version.GetInfo())
		}
		fmt.Fprintln(cmd.OutOrStdout(), version.String())
		return nil
	},
}

var versionJSON bool

func init() {
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "print version information as JSON")
}

// isFlagSet reports whether the named flag was given on the command line.
func isFlagSet(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

func lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
