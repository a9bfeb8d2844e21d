// Package cmd implements the facetq command line.
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/storefront-kit/facetq/internal/colors"
	"github.com/storefront-kit/facetq/internal/config"
	"github.com/storefront-kit/facetq/internal/logging"
	"github.com/storefront-kit/facetq/internal/version"
)

var (
	debugFlag bool
	quietFlag bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:               "facetq",
	Short:             "Faceted search over a product catalog.",
	Long:              `Faceted search over a product catalog.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupRuntime,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if err := logging.ShutdownGlobal(); err != nil {
			colors.Debug(fmt.Sprintf("failed to close log file: %v", err))
		}
	},
}

// Execute runs the root command with os.Args.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Version = version.String()

	// Hide the completion command
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		printHelpText(cmd)
	})

	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Print debug output")
	rootCmd.PersistentFlags().BoolVar(&quietFlag, "quiet", false, "Suppress informational output")
}

// setupRuntime loads configuration and brings up console and file logging
// before any command runs.
func setupRuntime(cmd *cobra.Command, args []string) error {
	config.Load()
	colors.SetDebug(debugFlag || config.GetBool("debug", false))
	colors.SetQuiet(quietFlag || config.GetBool("quiet", false))
	if err := logging.InitGlobal(); err != nil {
		colors.Warning(fmt.Sprintf("file logging disabled: %v", err))
	}
	logging.Debug("command started", "command", cmd.CommandPath())
	return nil
}

func printHelpText(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	if cmd.HasParent() {
		fmt.Fprintln(out, cmd.Long)
		return
	}

	commandOrder := []string{
		"query",
		"facets",
		"browse",
		"import",
		"help",
		"version",
	}

	var cmdLines []string
	for _, name := range commandOrder {
		var found *cobra.Command
		for _, c := range cmd.Commands() {
			if c.Name() == name {
				found = c
				break
			}
		}
		if found == nil {
			continue
		}
		cmdLines = append(cmdLines, fmt.Sprintf("    %-16s %s", found.Name(), found.Short))
	}

	fmt.Fprintf(out, `facetq %s

Faceted search over a product catalog.

USAGE:
    facetq [COMMAND] [OPTIONS]

COMMANDS:
%s

OPTIONS:
    --debug         Print debug output
    --quiet         Suppress informational output
    -h, --help      Show help message
`, version.String(), strings.Join(cmdLines, "\n"))
}
