package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/abhisek/deutschpro/internal/llm"
)

// DefaultEnvFile is loaded when no --env-file is given and it exists.
const DefaultEnvFile = ".env"

// Config holds application-level settings resolved from the environment.
type Config struct {
	// DataDir holds the database, log file and audio cache.
	DataDir string
	DBPath  string

	LogPath  string
	LogLevel string
	LogMode  string

	// AudioDir caches synthesized pronunciation files.
	AudioDir    string
	SpeechVoice string
	// SpeechEnabled turns on Google Text-to-Speech. It needs
	// application default credentials, so it is opt-in.
	SpeechEnabled bool

	// DailyRefreshAt is the local HH:MM at which tomorrow's daily
	// lesson is prefetched while the app is running.
	DailyRefreshAt string

	LLM llm.Config
}

// Load reads envFile (or .env when present) into the process
// environment without overriding variables already set, then builds a
// Config from DEUTSCHPRO_* variables.
func Load(envFile string) (Config, error) {
	if err := loadEnvFile(envFile); err != nil {
		return Config{}, err
	}

	dataDir, err := DataDir()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DataDir:        dataDir,
		DBPath:         filepath.Join(dataDir, "deutschpro.db"),
		LogPath:        filepath.Join(dataDir, "deutschpro.log"),
		LogLevel:       "info",
		LogMode:        "dev",
		AudioDir:       filepath.Join(dataDir, "audio"),
		SpeechVoice:    "de-DE-Neural2-B",
		DailyRefreshAt: "00:05",
		LLM:            llm.LoadConfig(),
	}

	if p := os.Getenv("DEUTSCHPRO_DB"); p != "" {
		cfg.DBPath = p
	}
	if p := os.Getenv("DEUTSCHPRO_LOG_FILE"); p != "" {
		cfg.LogPath = p
	}
	if l := os.Getenv("DEUTSCHPRO_LOG_LEVEL"); l != "" {
		cfg.LogLevel = l
	}
	if m := os.Getenv("DEUTSCHPRO_LOG_MODE"); m != "" {
		cfg.LogMode = m
	}
	if d := os.Getenv("DEUTSCHPRO_AUDIO_DIR"); d != "" {
		cfg.AudioDir = d
	}
	if v := os.Getenv("DEUTSCHPRO_TTS_VOICE"); v != "" {
		cfg.SpeechVoice = v
	}
	if v := os.Getenv("DEUTSCHPRO_TTS"); v != "" {
		cfg.SpeechEnabled = parseBool(v)
	}
	if at := os.Getenv("DEUTSCHPRO_DAILY_REFRESH_AT"); at != "" {
		cfg.DailyRefreshAt = at
	}

	return cfg, nil
}

// DataDir resolves the data directory in priority order:
// 1. DEUTSCHPRO_HOME environment variable
// 2. $XDG_DATA_HOME/deutschpro
// 3. ~/.local/share/deutschpro
func DataDir() (string, error) {
	if p := os.Getenv("DEUTSCHPRO_HOME"); p != "" {
		return p, nil
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "deutschpro"), nil
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

func loadEnvFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = DefaultEnvFile
	}
	err := godotenv.Load(path)
	if err == nil {
		return nil
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load env file %s: %w", path, err)
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
