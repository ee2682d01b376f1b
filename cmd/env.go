package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/deutschpro/internal/config"
	"github.com/abhisek/deutschpro/internal/daily"
	"github.com/abhisek/deutschpro/internal/logger"
	"github.com/abhisek/deutschpro/internal/speech"
	"github.com/abhisek/deutschpro/internal/store"
	"github.com/abhisek/deutschpro/internal/tutor"
)

// env is the resolved configuration plus the resources every command
// shares. Close releases them.
type env struct {
	cfg   config.Config
	log   *logger.Logger
	store *store.Store

	closers []func() error
}

// loadConfig resolves configuration and applies the persistent flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	cfg, err := config.Load(envFile)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if l, _ := cmd.Flags().GetString("log-level"); l != "" {
		cfg.LogLevel = l
	}
	return cfg, nil
}

// openEnv loads config, starts the file logger and opens the database.
func openEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(logger.Options{Mode: cfg.LogMode, Level: cfg.LogLevel, Path: cfg.LogPath})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	if err := config.EnsureDir(cfg.DBPath); err != nil {
		log.Sync()
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("open store: %w", err)
	}
	log.Debug("store opened", "path", cfg.DBPath)

	return &env{cfg: cfg, log: log, store: st}, nil
}

func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i](); err != nil {
			e.log.Warn("close resource", "error", err)
		}
	}
	if err := e.store.Close(); err != nil {
		e.log.Warn("close store", "error", err)
	}
	e.log.Sync()
}

// gateway builds the AI gateway over the configured provider. The stored
// credential is checked lazily by CheckReadiness.
func (e *env) gateway() *tutor.Gateway {
	factory := tutor.FactoryFromConfig(e.cfg.LLM, e.store.EventRepo(), e.log)
	return tutor.NewGateway(factory, e.store.KV(), tutor.EnvKey(e.cfg.LLM), tutor.DefaultConfig(), e.log)
}

func (e *env) daily(g *tutor.Gateway) *daily.Service {
	return daily.NewService(g, e.store.KV(), e.log)
}

// speaker returns the audio cache. Synthesis is only wired when enabled,
// since it needs Google application default credentials.
func (e *env) speaker(ctx context.Context) *speech.Cache {
	var synth speech.Synthesizer
	if e.cfg.SpeechEnabled {
		g, err := speech.NewGoogleSynthesizer(ctx, e.cfg.SpeechVoice)
		if err != nil {
			e.log.Warn("text-to-speech unavailable", "error", err)
		} else {
			synth = g
			e.closers = append(e.closers, g.Close)
		}
	}
	return speech.NewCache(e.cfg.AudioDir, e.cfg.SpeechVoice, synth, e.log)
}
