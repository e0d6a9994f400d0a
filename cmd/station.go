// Copyright © 2016 Geoff Holden <geoff@geoffholden.com>

package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	jww "github.com/spf13/jwalterweatherman"
	"github.com/spf13/viper"

	"github.com/geoffholden/sensewx/sensors"
	"github.com/geoffholden/sensewx/station"
)

// stationCmd represents the station command
var stationCmd = &cobra.Command{
	Use:   "station",
	Short: "Run the weather station",
	Long: `Samples the sensor board every few seconds, shows the temperature trend on
the display and uploads a reading to every enabled target on the measurement
interval.`,
	RunE: runStation,
}

func stationInit() {
	if !stationCmd.Flags().HasFlags() {
		stationCmd.Flags().String("board", "sensehat", "Sensor board, one of ["+strings.Join(sensors.Boards(), ", ")+"]")
		stationCmd.Flags().String("display", "sensehat", "Display, one of [sensehat, console, none]")
		stationCmd.Flags().Int("measurement_interval", 1, "Minutes between uploads, between 1 and 60")
	}
}

func init() {
	RootCmd.AddCommand(stationCmd)
	stationInit()
	viper.BindPFlags(stationCmd.Flags())
}

func runStation(cmd *cobra.Command, args []string) error {
	config, err := loadConfig()
	if err != nil {
		return err
	}

	s, err := station.Open(config)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	jww.INFO.Println("Station", config.StationID, "uploading every", config.MeasurementInterval, "minutes")
	return s.Run(ctx)
}
