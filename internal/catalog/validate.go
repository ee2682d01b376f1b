package catalog

import (
	"fmt"
	"strings"
)

// ValidateLessons performs all structural checks on a lesson set, including
// catalog-wide id uniqueness and the reserved daily- prefix. Returns a
// combined error describing all problems found, or nil if valid.
func ValidateLessons(lessons []Lesson) error {
	var errs []string

	seen := make(map[string]bool, len(lessons))
	for _, l := range lessons {
		if seen[l.ID] {
			errs = append(errs, fmt.Sprintf("duplicate lesson ID: %q", l.ID))
		}
		seen[l.ID] = true
		if strings.HasPrefix(l.ID, DailyIDPrefix) {
			errs = append(errs, fmt.Sprintf("lesson %q uses reserved prefix %q", l.ID, DailyIDPrefix))
		}
		errs = append(errs, lessonProblems(l)...)
	}

	if len(errs) > 0 {
		return fmt.Errorf("lesson catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// ValidateLesson checks a single lesson, typically one produced by the
// tutor. It does not check the id prefix.
func ValidateLesson(l Lesson) error {
	if errs := lessonProblems(l); len(errs) > 0 {
		return fmt.Errorf("lesson %q is invalid:\n  %s", l.ID, strings.Join(errs, "\n  "))
	}
	return nil
}

func lessonProblems(l Lesson) []string {
	var errs []string
	prefix := fmt.Sprintf("lesson %q", l.ID)

	if strings.TrimSpace(l.ID) == "" {
		errs = append(errs, "lesson has empty ID")
	}
	if strings.TrimSpace(l.Title) == "" {
		errs = append(errs, prefix+": empty title")
	}
	if !l.Category.Valid() {
		errs = append(errs, fmt.Sprintf("%s: unknown category %q", prefix, l.Category))
	}
	if !l.Level.Valid() {
		errs = append(errs, fmt.Sprintf("%s: unknown level %q", prefix, l.Level))
	}

	for i, s := range l.Content {
		for j, ex := range s.Examples {
			if strings.TrimSpace(ex.De) == "" {
				errs = append(errs, fmt.Sprintf("%s section %d example %d: empty German text", prefix, i, j))
			}
		}
	}

	exIDs := make(map[string]bool, len(l.Exercises))
	for _, e := range l.Exercises {
		if e.ID == "" {
			errs = append(errs, prefix+": exercise with empty ID")
		} else if exIDs[e.ID] {
			errs = append(errs, fmt.Sprintf("%s: duplicate exercise ID %q", prefix, e.ID))
		}
		exIDs[e.ID] = true
		if len(e.Options) == 0 {
			errs = append(errs, fmt.Sprintf("%s exercise %q: no options", prefix, e.ID))
		}
		if !e.HasOption(e.CorrectAnswer) {
			errs = append(errs, fmt.Sprintf("%s exercise %q: correct answer %q is not an option", prefix, e.ID, e.CorrectAnswer))
		}
	}
	return errs
}
