// Package cmd holds the hireview CLI commands.
package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rsoni/hireview/internal/logger"

	"go.uber.org/zap"
)

const app = "hireview"

var rootCmd = &cobra.Command{
	Use:   app,
	Short: "AI-assisted technical interview engine",
	Long: "hireview generates skill-targeted interview questions, scores candidate\n" +
		"answers, and synthesizes a hiring report. Runs as an HTTP API or as an\n" +
		"interactive terminal interview.",
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("db", "", "path to SQLite database file (default ~/.hireview/hireview.db)")
	rootCmd.PersistentFlags().Bool("memory", false, "keep sessions in memory only")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db"))
	viper.BindPFlag("memory", rootCmd.PersistentFlags().Lookup("memory"))

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(interviewCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	// Provider keys come from the environment; .env is a convenience for
	// local development and is allowed to be absent.
	_ = godotenv.Load()

	viper.SetEnvPrefix("HIREVIEW")
	viper.AutomaticEnv()
}

func newLogger() (*zap.Logger, error) {
	return logger.New(viper.GetBool("json"), viper.GetBool("debug"))
}
