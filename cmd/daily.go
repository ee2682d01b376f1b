package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/deutschpro/internal/tutor"
)

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Print the generated lesson of the day",
	Long: `Print the lesson of the day, generating it with the configured LLM
provider when it is not cached yet.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dateStr, _ := cmd.Flags().GetString("date")
		refresh, _ := cmd.Flags().GetBool("refresh")
		cachedOnly, _ := cmd.Flags().GetBool("cached")

		date := time.Now()
		if dateStr != "" {
			d, err := time.ParseInLocation(time.DateOnly, dateStr, time.Local)
			if err != nil {
				return fmt.Errorf("invalid --date %q: %w", dateStr, err)
			}
			date = d
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		gw := e.gateway()
		svc := e.daily(gw)

		if cachedOnly {
			l, ok := svc.Cached(ctx, date)
			if !ok {
				return fmt.Errorf("no cached lesson for %s", date.Format(time.DateOnly))
			}
			printLesson(l, true)
			return nil
		}

		if r := gw.CheckReadiness(ctx); r != tutor.ReadinessReady {
			return fmt.Errorf("no usable API key for provider %q: set one in the environment or from the app", e.cfg.LLM.Provider)
		}

		get := svc.For
		if refresh {
			get = svc.Refresh
		}
		l, err := get(ctx, date)
		if err != nil {
			return fmt.Errorf("daily lesson: %w", err)
		}
		printLesson(l, true)
		return nil
	},
}

func init() {
	dailyCmd.Flags().String("date", "", "Lesson date as YYYY-MM-DD (default today)")
	dailyCmd.Flags().Bool("refresh", false, "Regenerate even when a lesson is cached")
	dailyCmd.Flags().Bool("cached", false, "Only print a cached lesson, never call the LLM")
}
