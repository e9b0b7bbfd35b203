package cmd

import "github.com/spf13/cobra"

var debugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Debugging commands",
	Long:  `Commands that run single stages of the exchange pipeline against a configuration`,
}

func init() {
	rootCmd.AddCommand(debugCmd)

	f.bindConfigFlag(debugCmd.PersistentFlags())
}
