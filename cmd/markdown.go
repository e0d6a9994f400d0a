// Copyright © 2016 Geoff Holden <geoff@geoffholden.com>

package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// markdownCmd represents the markdown command
var markdownCmd = &cobra.Command{
	Use:   "markdown",
	Short: "Generate Markdown documentation",
	Long:  `Generates documentation for sensewx in Markdown format, one file per command.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := outputDir()
		if err != nil {
			return err
		}
		return doc.GenMarkdownTree(RootCmd, dir)
	},
}

func init() {
	docCmd.AddCommand(markdownCmd)
}
