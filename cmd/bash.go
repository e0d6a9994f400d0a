// Copyright © 2016 Geoff Holden <geoff@geoffholden.com>

package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"
)

// bashCmd represents the bash command
var bashCmd = &cobra.Command{
	Use:   "bash",
	Short: "Generate Bash autocompletion file",
	Long:  `Generates sensewx_completions.sh, an autocompletion file for Bash.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := outputDir()
		if err != nil {
			return err
		}
		return RootCmd.GenBashCompletionFileV2(filepath.Join(dir, "sensewx_completions.sh"), true)
	},
}

func init() {
	docCmd.AddCommand(bashCmd)
}
