package cmd

import (
	"github.com/spf13/cobra"
)

// helpCmd represents the help command
var helpCmd = &cobra.Command{
	Use:   "help [command]",
	Short: "Show this help message",
	Long:  `Show this help message, or the help of a single command.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		target := cmd.Root()
		if len(args) > 0 {
			found, _, err := target.Find(args)
			if err != nil {
				return err
			}
			target = found
		}
		return target.Help()
	},
}

func init() {
	rootCmd.SetHelpCommand(helpCmd)
}
