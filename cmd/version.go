package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/storefront-kit/facetq/internal/version"
)

// versionInfo returns the build information to print. Replaced in tests.
var versionInfo = version.Get

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	var asJSON bool

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Show the current version of facetq.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := versionInfo()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}
			v := info.Version
			if info.Commit != "" && info.Commit != "unknown" {
				v += "+" + info.Commit
			}
			fmt.Fprintf(cmd.OutOrStdout(), "facetq version %s (%s, %s)\n", v, info.GoVersion, info.Platform)
			return nil
		},
	}
	versionCmd.Flags().BoolVar(&asJSON, "json", false, "Print build information as JSON")

	return versionCmd
}

// versionCmd represents the version command
var versionCmd = NewVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}
