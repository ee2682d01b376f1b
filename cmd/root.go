package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "deutschpro",
	Short: "Học tiếng Đức trên terminal",
	Long:  "DeutschPro is a terminal German course for Vietnamese speakers, with an AI tutor named Hans.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides DEUTSCHPRO_DB env var)")
	rootCmd.PersistentFlags().String("env-file", "", "Load environment variables from this file (default .env when present)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides DEUTSCHPRO_LOG_LEVEL)")
	rootCmd.Flags().Bool("no-splash", false, "Skip the welcome animation")

	rootCmd.AddCommand(lessonsCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(dailyCmd)
	rootCmd.AddCommand(speakCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}
