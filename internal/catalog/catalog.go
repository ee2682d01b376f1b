// Package catalog holds the built-in German lessons, home-screen tips and
// words of the day. All data is static; accessors return copies.
package catalog

import (
	"errors"
	"fmt"
	"slices"
)

// DailyIDPrefix is reserved for generated lessons.
const DailyIDPrefix = "daily-"

// ErrNotFound is returned when a lesson id is not in the catalog.
var ErrNotFound = errors.New("lesson not found")

// index holds the lesson list with an id lookup.
type index struct {
	lessons []Lesson
	byID    map[string]int
	byLevel map[Level][]string
}

var idx = buildIndex(staticLessons)

func buildIndex(lessons []Lesson) *index {
	ix := &index{
		lessons: lessons,
		byID:    make(map[string]int, len(lessons)),
		byLevel: make(map[Level][]string),
	}
	for i, l := range lessons {
		ix.byID[l.ID] = i
		ix.byLevel[l.Level] = append(ix.byLevel[l.Level], l.ID)
	}
	return ix
}

// AllLessons returns every static lesson in display order.
func AllLessons() []Lesson {
	out := make([]Lesson, len(idx.lessons))
	for i, l := range idx.lessons {
		out[i] = l.Clone()
	}
	return out
}

// FindLesson returns a lesson by id.
func FindLesson(id string) (Lesson, error) {
	i, ok := idx.byID[id]
	if !ok {
		return Lesson{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return idx.lessons[i].Clone(), nil
}

// ByLevel returns the ids of lessons at the given level.
func ByLevel(level Level) []string {
	return slices.Clone(idx.byLevel[level])
}

// Validate checks the built-in catalog.
func Validate() error {
	return ValidateLessons(idx.lessons)
}
