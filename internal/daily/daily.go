// Package daily caches the generated lesson of the day and prefetches it
// shortly after midnight.
package daily

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/abhisek/deutschpro/internal/catalog"
	"github.com/abhisek/deutschpro/internal/logger"
	"github.com/abhisek/deutschpro/internal/store"
)

// Generator produces a lesson for a date.
type Generator interface {
	GenerateDailyLesson(ctx context.Context, date time.Time) (catalog.Lesson, error)
}

// CacheKey returns the kv key for a date's lesson.
func CacheKey(date time.Time) string {
	return "daily_lesson:" + date.Format(time.DateOnly)
}

// Service returns one lesson per calendar day, generating it at most once
// unless asked to refresh.
type Service struct {
	gen Generator
	kv  store.KVRepo
	log *logger.Logger
	now func() time.Time

	mu sync.Mutex // serializes generation so concurrent callers share one call
}

// NewService creates a daily lesson service.
func NewService(gen Generator, kv store.KVRepo, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{gen: gen, kv: kv, log: log.With("component", "daily"), now: time.Now}
}

// Today returns the lesson for the current local date.
func (s *Service) Today(ctx context.Context) (catalog.Lesson, error) {
	return s.For(ctx, s.now())
}

// For returns the cached lesson for date, generating and caching it when
// absent or unreadable.
func (s *Service) For(ctx context.Context, date time.Time) (catalog.Lesson, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if l, ok := s.cachedLocked(ctx, date); ok {
		return l, nil
	}
	return s.generateLocked(ctx, date)
}

// Cached returns the stored lesson for date without generating one.
func (s *Service) Cached(ctx context.Context, date time.Time) (catalog.Lesson, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cachedLocked(ctx, date)
}

// Refresh regenerates the lesson for date and replaces the cached copy.
// On failure the old copy stays.
func (s *Service) Refresh(ctx context.Context, date time.Time) (catalog.Lesson, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generateLocked(ctx, date)
}

func (s *Service) cachedLocked(ctx context.Context, date time.Time) (catalog.Lesson, bool) {
	raw, ok, err := s.kv.Get(ctx, CacheKey(date))
	if err != nil {
		s.log.Warn("read cached daily lesson", "date", date.Format(time.DateOnly), "error", err)
		return catalog.Lesson{}, false
	}
	if !ok {
		return catalog.Lesson{}, false
	}

	var l catalog.Lesson
	if err := json.Unmarshal([]byte(raw), &l); err != nil {
		s.log.Warn("cached daily lesson is malformed", "date", date.Format(time.DateOnly), "error", err)
		return catalog.Lesson{}, false
	}
	if err := catalog.ValidateLesson(l); err != nil {
		s.log.Warn("cached daily lesson is invalid", "date", date.Format(time.DateOnly), "error", err)
		return catalog.Lesson{}, false
	}
	return l, true
}

func (s *Service) generateLocked(ctx context.Context, date time.Time) (catalog.Lesson, error) {
	l, err := s.gen.GenerateDailyLesson(ctx, date)
	if err != nil {
		return catalog.Lesson{}, fmt.Errorf("generate daily lesson: %w", err)
	}

	data, err := json.Marshal(l)
	if err != nil {
		return catalog.Lesson{}, fmt.Errorf("encode daily lesson: %w", err)
	}
	if err := s.kv.Put(ctx, CacheKey(date), string(data)); err != nil {
		// The lesson is still usable for this run.
		s.log.Error("cache daily lesson", "date", date.Format(time.DateOnly), "error", err)
	}
	s.log.Info("daily lesson generated", "date", date.Format(time.DateOnly), "id", l.ID, "title", l.GermanTitle)
	return l, nil
}
