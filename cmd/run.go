package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/deutschpro/internal/app"
	"github.com/abhisek/deutschpro/internal/daily"
	"github.com/abhisek/deutschpro/internal/progress"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	gw := e.gateway()
	svc := e.daily(gw)

	refresher := daily.NewRefresher(svc, e.cfg.DailyRefreshAt, time.Local, e.log)
	if err := refresher.Start(); err != nil {
		e.log.Warn("daily prefetch disabled", "error", err)
	} else {
		defer refresher.Stop()
	}

	noSplash, _ := cmd.Flags().GetBool("no-splash")
	e.log.Info("starting", "version", version, "provider", e.cfg.LLM.Provider)

	return app.Run(app.Options{
		Tutor:       gw,
		Progress:    progress.NewStore(e.store.KV(), e.log),
		History:     e.store.EventRepo(),
		Daily:       svc,
		Speaker:     e.speaker(cmd.Context()),
		Log:         e.log,
		SkipWelcome: noSplash,
	})
}
