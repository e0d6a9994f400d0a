// Copyright © 2016 Geoff Holden <geoff@geoffholden.com>

package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// manCmd represents the man command
var manCmd = &cobra.Command{
	Use:   "man",
	Short: "Generate man pages",
	Long:  `Generates a set of man pages for sensewx, one per command.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := outputDir()
		if err != nil {
			return err
		}
		header := &doc.GenManHeader{
			Title:   "SENSEWX",
			Section: "1",
			Source:  "sensewx",
		}
		return doc.GenManTree(RootCmd, header, dir)
	},
}

func init() {
	docCmd.AddCommand(manCmd)
}
