// Package cli implements the moneyquest command line.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/moneyquest/moneyquest/internal/daemon"
)

var (
	cfgFile string
	version = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "moneyquest",
	Short: "Money Quest, a pocket-money game for kids",
	Long: `Money Quest teaches kids to earn, save and spend through missions,
a shop, mini-games and achievements. The game core runs locally and is
served to a presentation layer over a small HTTP API.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $MONEYQUEST_HOME/config.toml)")
}

// Execute runs the root command.
func Execute(v string) error {
	if v != "" {
		version = v
	}
	return rootCmd.Execute()
}

// loadConfig reads --config or the default path, then env overrides.
func loadConfig() (daemon.Config, error) {
	path := cfgFile
	if path == "" {
		path = daemon.DefaultPath()
	}
	return daemon.Load(path)
}
