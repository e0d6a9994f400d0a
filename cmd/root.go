// Copyright © 2016 Geoff Holden <geoff@geoffholden.com>

package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	jww "github.com/spf13/jwalterweatherman"
	"github.com/spf13/viper"

	"github.com/geoffholden/sensewx/station"
)

var cfgFile string
var envFile string
var verbose bool

// This represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "sensewx",
	Short: "Raspberry Pi Weather Station",
	Long: `sensewx is a weather station for a Raspberry Pi with a Sense HAT or a
similar sensor board.

It samples temperature, humidity and pressure, corrects the temperature for
the heat of the CPU, shows the trend on the LED matrix and uploads the
readings to Weather Underground and other endpoints.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			jww.SetStdoutThreshold(jww.LevelTrace)
		}
	},
}

// Execute adds all child commands to the root command sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		jww.ERROR.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is sensewx.yaml)")
	RootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "dotenv file with secrets")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if err := godotenv.Load(envFile); err == nil {
		jww.DEBUG.Println("Loaded environment from", envFile)
	}

	if cfgFile != "" { // enable ability to specify config file via flag
		viper.SetConfigFile(cfgFile)
	}

	viper.SetConfigName("sensewx") // name of config file (without extension)
	viper.AddConfigPath("/etc/sensewx/")
	viper.AddConfigPath("$HOME/.sensewx/")
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("sensewx")
	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		jww.DEBUG.Println("Using config file:", viper.ConfigFileUsed())
	}
}

func loadConfig() (*station.Config, error) {
	return station.LoadConfig(viper.GetViper())
}
