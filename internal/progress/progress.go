// Package progress persists the learner's completed lessons and running
// score in the key-value table.
package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/abhisek/deutschpro/internal/logger"
	"github.com/abhisek/deutschpro/internal/store"
)

// StorageKey is the kv key holding the JSON progress document.
const StorageKey = "deutsch_progress"

// MaxScoreDelta bounds a single completion's contribution.
const MaxScoreDelta = 100

// UserProgress is the persisted learner summary.
type UserProgress struct {
	CompletedLessons []string `json:"completedLessons"`
	Score            int      `json:"score"`
}

// Default returns the first-run progress value.
func Default() UserProgress {
	return UserProgress{CompletedLessons: []string{}, Score: 0}
}

// HasCompleted reports whether the lesson is in the completed set.
func (p UserProgress) HasCompleted(lessonID string) bool {
	return slices.Contains(p.CompletedLessons, lessonID)
}

// RecordCompletion returns a new value with lessonID added to the completed
// set and scoreDelta (clamped to [0,100]) added to the score. The score
// accumulates on every call, including repeats of the same lesson.
func RecordCompletion(cur UserProgress, lessonID string, scoreDelta int) UserProgress {
	next := UserProgress{
		CompletedLessons: make([]string, 0, len(cur.CompletedLessons)+1),
		Score:            cur.Score + clamp(scoreDelta, 0, MaxScoreDelta),
	}
	next.CompletedLessons = append(next.CompletedLessons, cur.CompletedLessons...)
	if !slices.Contains(next.CompletedLessons, lessonID) {
		next.CompletedLessons = append(next.CompletedLessons, lessonID)
	}
	return next
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// normalize collapses duplicates and repairs negative scores from hand
// edited or older documents.
func normalize(p UserProgress) UserProgress {
	out := Default()
	for _, id := range p.CompletedLessons {
		if id != "" && !slices.Contains(out.CompletedLessons, id) {
			out.CompletedLessons = append(out.CompletedLessons, id)
		}
	}
	out.Score = max(p.Score, 0)
	return out
}

// Store loads and saves UserProgress through a KVRepo.
type Store struct {
	kv  store.KVRepo
	log *logger.Logger
}

// NewStore creates a progress store. A nil log discards output.
func NewStore(kv store.KVRepo, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{kv: kv, log: log}
}

// Load reads the persisted progress. Absent, unreadable or malformed data
// yields Default; Load never fails.
func (s *Store) Load(ctx context.Context) UserProgress {
	raw, ok, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		s.log.Warn("progress load failed, using defaults", "error", err)
		return Default()
	}
	if !ok {
		return Default()
	}

	var p UserProgress
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		s.log.Warn("progress document is malformed, using defaults", "error", err)
		return Default()
	}
	return normalize(p)
}

// Persist writes p. Failures are logged and returned; callers keep their
// in-memory value either way.
func (s *Store) Persist(ctx context.Context, p UserProgress) error {
	data, err := json.Marshal(normalize(p))
	if err != nil {
		s.log.Error("storage failure", "op", "persist", "error", err)
		return fmt.Errorf("encode progress: %w", err)
	}
	if err := s.kv.Put(ctx, StorageKey, string(data)); err != nil {
		s.log.Error("storage failure", "op", "persist", "error", err)
		return fmt.Errorf("persist progress: %w", err)
	}
	s.log.Debug("progress persisted", "completed", len(p.CompletedLessons), "score", p.Score)
	return nil
}

// Reset removes the persisted document.
func (s *Store) Reset(ctx context.Context) error {
	if err := s.kv.Delete(ctx, StorageKey); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	return nil
}
