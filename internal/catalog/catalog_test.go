package catalog

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
	"time"
)

func TestValidate_BuiltinCatalog(t *testing.T) {
	if err := Validate(); err != nil {
		t.Fatalf("built-in catalog is invalid: %v", err)
	}
}

func TestAllLessons_UniqueIDs(t *testing.T) {
	seen := map[string]bool{}
	for _, l := range AllLessons() {
		if seen[l.ID] {
			t.Fatalf("duplicate id %q", l.ID)
		}
		seen[l.ID] = true
		if strings.HasPrefix(l.ID, DailyIDPrefix) {
			t.Fatalf("static lesson %q uses the daily prefix", l.ID)
		}
	}
	if len(seen) == 0 {
		t.Fatal("catalog is empty")
	}
}

func TestAllLessons_ReturnsCopy(t *testing.T) {
	first := AllLessons()
	first[0].Title = "changed"
	first[0].Exercises[0].Options[0] = "changed"

	again := AllLessons()
	if again[0].Title == "changed" || again[0].Exercises[0].Options[0] == "changed" {
		t.Fatal("AllLessons leaked a mutable reference")
	}
}

func TestFindLesson(t *testing.T) {
	l, err := FindLesson("l1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.GermanTitle != "Begrüßung & Vorstellung" {
		t.Errorf("unexpected lesson: %q", l.GermanTitle)
	}
	if len(l.Exercises) != 2 {
		t.Errorf("expected 2 exercises in l1, got %d", len(l.Exercises))
	}

	_, err = FindLesson("nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestByLevel(t *testing.T) {
	ids := ByLevel(LevelB1)
	if len(ids) != 1 || ids[0] != "l12" {
		t.Fatalf("unexpected B1 lessons: %v", ids)
	}
}

func validLesson(id string) Lesson {
	return Lesson{
		ID:       id,
		Title:    "Test",
		Category: CategoryGrammar,
		Level:    LevelA1,
		Content:  []Section{{Section: "s", Examples: []Example{{De: "Hallo", Vi: "Xin chào"}}}},
		Exercises: []Exercise{
			{ID: "x1", Options: []string{"a", "b"}, CorrectAnswer: "a"},
		},
	}
}

func TestValidateLessons(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func([]Lesson) []Lesson
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(ls []Lesson) []Lesson { return ls },
		},
		{
			name:    "duplicate id",
			mutate:  func(ls []Lesson) []Lesson { return append(ls, validLesson("a")) },
			wantErr: "duplicate lesson ID",
		},
		{
			name:    "reserved prefix",
			mutate:  func(ls []Lesson) []Lesson { return append(ls, validLesson("daily-2026-01-01")) },
			wantErr: "reserved prefix",
		},
		{
			name: "answer not an option",
			mutate: func(ls []Lesson) []Lesson {
				ls[0].Exercises[0].CorrectAnswer = "z"
				return ls
			},
			wantErr: "is not an option",
		},
		{
			name: "empty german example",
			mutate: func(ls []Lesson) []Lesson {
				ls[0].Content[0].Examples[0].De = " "
				return ls
			},
			wantErr: "empty German text",
		},
		{
			name: "duplicate exercise id",
			mutate: func(ls []Lesson) []Lesson {
				ls[0].Exercises = append(ls[0].Exercises, ls[0].Exercises[0])
				return ls
			},
			wantErr: "duplicate exercise ID",
		},
		{
			name: "unknown level and category",
			mutate: func(ls []Lesson) []Lesson {
				ls[0].Level = "C2"
				ls[0].Category = "Poetry"
				return ls
			},
			wantErr: "unknown level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lessons := tt.mutate([]Lesson{validLesson("a"), validLesson("b")})
			err := ValidateLessons(lessons)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateLessons_CollectsAllProblems(t *testing.T) {
	bad := validLesson("a")
	bad.Level = "Z9"
	bad.Exercises[0].CorrectAnswer = "nope"
	err := ValidateLessons([]Lesson{bad})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "unknown level") || !strings.Contains(err.Error(), "is not an option") {
		t.Fatalf("expected both problems reported, got %v", err)
	}
}

func TestValidateLesson_AllowsDailyPrefix(t *testing.T) {
	if err := ValidateLesson(validLesson("daily-2026-10-16")); err != nil {
		t.Fatalf("generated lesson rejected: %v", err)
	}
}

func TestValidateLesson_ZeroExercisesAllowed(t *testing.T) {
	l := validLesson("a")
	l.Exercises = nil
	if err := ValidateLesson(l); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRandomHint_Deterministic(t *testing.T) {
	a := RandomHint(rand.New(rand.NewPCG(1, 2)))
	b := RandomHint(rand.New(rand.NewPCG(1, 2)))
	if a.ID != b.ID {
		t.Fatalf("same seed gave %q and %q", a.ID, b.ID)
	}
	if len(Hints()) != 6 {
		t.Fatalf("expected 6 hints, got %d", len(Hints()))
	}
}

func TestWordOfTheDay(t *testing.T) {
	day := time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)
	later := time.Date(2026, 10, 16, 23, 0, 0, 0, time.UTC)
	if WordOfTheDay(day) != WordOfTheDay(later) {
		t.Fatal("word changed within the same day")
	}

	seen := map[string]bool{}
	for i := range len(WordsOfTheDay()) {
		seen[WordOfTheDay(day.AddDate(0, 0, i)).De] = true
	}
	if len(seen) != len(WordsOfTheDay()) {
		t.Fatalf("expected rotation through all words, saw %d", len(seen))
	}
}

func TestContextualTip(t *testing.T) {
	tip, ok := ContextualTip("l1")
	if !ok || !strings.Contains(tip.Content, "Moin") {
		t.Fatalf("unexpected l1 tip: %+v", tip)
	}
	tip, ok = ContextualTip("l2")
	if !ok || !strings.Contains(tip.Content, "Sie") {
		t.Fatalf("unexpected l2 tip: %+v", tip)
	}
	if _, ok := ContextualTip("l12"); ok {
		t.Fatal("l12 should have no tip")
	}
}
