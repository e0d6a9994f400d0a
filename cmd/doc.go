// Copyright © 2016 Geoff Holden <geoff@geoffholden.com>

package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// docCmd represents the doc command
var docCmd = &cobra.Command{
	Use:   "doc",
	Short: "Documentation generator",
	Long:  `Generators for the sensewx man pages, Markdown documentation and shell completion.`,
}

func init() {
	RootCmd.AddCommand(docCmd)

	docCmd.PersistentFlags().String("output", "./", "Output directory")
	viper.BindPFlags(docCmd.PersistentFlags())
}

// outputDir returns the output directory, creating it if needed.
func outputDir() (string, error) {
	dir := viper.GetString("output")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return filepath.Clean(dir), nil
}
