package lessons

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/deutschpro/internal/catalog"
	"github.com/abhisek/deutschpro/internal/progress"
	"github.com/abhisek/deutschpro/internal/router"
)

func TestLessonsScreen_Title(t *testing.T) {
	if New(nil, nil, nil).Title() != "Bài học" {
		t.Error("unexpected title")
	}
}

func TestLessonsScreen_ShowsCompletion(t *testing.T) {
	p := progress.RecordCompletion(progress.Default(), "l1", 100)
	s := New(func() progress.UserProgress { return p }, nil, nil)

	v := s.View(100, 30)
	if !strings.Contains(v, "Hoàn thành 1/") {
		t.Fatalf("expected completion count, got %q", v)
	}
	if !strings.Contains(v, "✓") {
		t.Fatal("expected a completed mark")
	}
}

func TestLessonsScreen_LevelFilter(t *testing.T) {
	s := New(nil, nil, nil)
	if len(s.shown) != len(catalog.AllLessons()) {
		t.Fatalf("unfiltered list has %d lessons", len(s.shown))
	}

	// all -> A1 -> A2 -> B1
	for range 3 {
		s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	}
	if levelFilters[s.filter] != catalog.LevelB1 {
		t.Fatalf("filter = %q, want B1", levelFilters[s.filter])
	}
	ids := make([]string, len(s.shown))
	for i, l := range s.shown {
		ids[i] = l.ID
	}
	if strings.Join(ids, ",") != strings.Join(catalog.ByLevel(catalog.LevelB1), ",") {
		t.Fatalf("B1 lessons = %v", ids)
	}
}

func TestLessonsScreen_EnterOpensLesson(t *testing.T) {
	s := New(nil, nil, nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if push.Screen.Title() != catalog.AllLessons()[0].Title {
		t.Fatalf("opened %q", push.Screen.Title())
	}
}

func TestLessonsScreen_KeyHints(t *testing.T) {
	if len(New(nil, nil, nil).KeyHints()) != 4 {
		t.Fatal("expected 4 key hints")
	}
}
