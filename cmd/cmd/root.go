package cmd

import (
	"github.com/spf13/cobra"
)

const AppName = "xtafkit"

func Execute() error {
	rootCmd := &cobra.Command{
		Use:   AppName,
		Short: AppName + " - Xbox 360 XTAF filesystem inspector",
	}

	rootCmd.AddCommand(
		DefineAttachCommand(),
		DefineInfoCommand(),
		DefineLsCommand(),
		DefineCdCommand(),
		DefineCatCommand(),
		DefineDfxmlCommand(),
		DefineDotCommand(),
		DefineMountCommand(),
	)

	return rootCmd.Execute()
}
