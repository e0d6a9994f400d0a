// Copyright © 2016 Geoff Holden <geoff@geoffholden.com>

package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/geoffholden/sensewx/station"
)

var sampleUpload bool

// sampleCmd represents the sample command
var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Take a single reading",
	Long: `Reads the sensor board once and prints the compensated reading. With
--upload the reading is also sent to every enabled target.`,
	RunE: sample,
}

func init() {
	RootCmd.AddCommand(sampleCmd)
	sampleCmd.Flags().BoolVar(&sampleUpload, "upload", false, "Upload the reading to the enabled targets")
}

func sample(cmd *cobra.Command, args []string) error {
	config, err := loadConfig()
	if err != nil {
		return err
	}

	sampler, err := station.OpenSampler(config)
	if err != nil {
		return err
	}
	reporter, err := station.OpenReporter(config, "none")
	if err != nil {
		sampler.Close()
		return err
	}
	s, err := station.New(config, sampler, reporter)
	if err != nil {
		sampler.Close()
		reporter.Close()
		return err
	}
	defer s.Close()

	ctx, cancel := context.WithTimeout(context.Background(), config.ReadTimeout+config.UploadTimeout)
	defer cancel()

	reading, err := s.Measure(ctx, time.Now())
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), reading)

	if !sampleUpload {
		return nil
	}
	return s.Reporter.Upload(ctx, reading)
}
