// Package speech turns German phrases into cached MP3 files.
package speech

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/abhisek/deutschpro/internal/logger"
)

// DefaultVoice is a German neural voice.
const DefaultVoice = "de-DE-Neural2-B"

// ErrDisabled is returned when no synthesizer is configured.
var ErrDisabled = errors.New("speech synthesis is disabled")

// Synthesizer converts text to MP3 audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// cacheNamespace seeds the name-based UUIDs used for file names.
var cacheNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://deutschpro.local/speech"))

// Cache stores synthesized audio on disk keyed by voice and text, so each
// phrase is synthesized once.
type Cache struct {
	dir   string
	voice string
	synth Synthesizer
	log   *logger.Logger
}

// NewCache creates a cache in dir. A nil synth makes Speak return
// ErrDisabled for phrases not already on disk.
func NewCache(dir, voice string, synth Synthesizer, log *logger.Logger) *Cache {
	if voice == "" {
		voice = DefaultVoice
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Cache{dir: dir, voice: voice, synth: synth, log: log.With("component", "speech")}
}

// Enabled reports whether new phrases can be synthesized.
func (c *Cache) Enabled() bool {
	return c != nil && c.synth != nil
}

// Path returns where the audio for text is (or would be) stored.
func (c *Cache) Path(text string) string {
	id := uuid.NewSHA1(cacheNamespace, []byte(c.voice+"\x00"+normalize(text)))
	return filepath.Join(c.dir, id.String()+".mp3")
}

// Speak returns the path of an MP3 for text, synthesizing it on a miss.
func (c *Cache) Speak(ctx context.Context, text string) (string, error) {
	text = normalize(text)
	if text == "" {
		return "", errors.New("nothing to speak")
	}

	path := c.Path(text)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("stat audio cache: %w", err)
	}

	if c.synth == nil {
		return "", ErrDisabled
	}

	audio, err := c.synth.Synthesize(ctx, text)
	if err != nil {
		return "", fmt.Errorf("synthesize %q: %w", text, err)
	}
	if err := writeFileAtomic(path, audio); err != nil {
		return "", err
	}
	c.log.Debug("audio cached", "path", path, "bytes", len(audio))
	return path, nil
}

func normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create audio dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".speech-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp audio file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write audio: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close audio: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("store audio: %w", err)
	}
	return nil
}
