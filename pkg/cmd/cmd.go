// Package cmd contains the command line applications for the project.
package cmd

import (
	"github.com/spf13/cobra"
)

var (
	configPath string
	debug      bool

	rootCmd = &cobra.Command{
		Use:   "agrivault",
		Short: "Upload gateway and marketplace backend for agricultural e-books and audiobooks",
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./", "config file or directory")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable verbose output")

	registerServeCommands()
	registerMigrateCommands()
	registerConfigsCommands()
	registerDBCommands()
	registerUploadCommands()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
