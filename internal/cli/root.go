package cli

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	serverURL string
)

var rootCmd = &cobra.Command{
	Use:   "lifeclock",
	Short: "Track how daily habits move your life expectancy",
	Long: "Lifeclock scores food, exercise and sleep entries, converts each into hours of life gained or lost, " +
		"and keeps a running life expectancy estimate.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.lifeclock/config.toml)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "url", "", "server URL for client commands (default $LIFECLOCK_URL or http://127.0.0.1:3000)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(statusCmd)
}
