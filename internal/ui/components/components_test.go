package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestMenu_SkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "off", Disabled: true},
		{Label: "a"},
		{Label: "off2", Disabled: true},
		{Label: "b"},
	})
	if m.Selected != 1 {
		t.Fatalf("expected first enabled item selected, got %d", m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Fatalf("down should skip disabled item, got %d", m.Selected)
	}
	m, _ = m.Update(key('k'))
	if m.Selected != 1 {
		t.Fatalf("k should move up past disabled item, got %d", m.Selected)
	}
}

func TestMenu_EnterRunsAction(t *testing.T) {
	ran := false
	m := NewMenu([]MenuItem{{Label: "go", Action: func() tea.Cmd {
		ran = true
		return nil
	}}})
	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !ran {
		t.Fatal("expected action to run on enter")
	}
}

func TestMenu_ViewShowsDetail(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "Bài học", Detail: "3/7"}})
	if v := m.View(); !strings.Contains(v, "Bài học") || !strings.Contains(v, "3/7") {
		t.Fatalf("unexpected view %q", v)
	}
}

func TestMultiChoice_PickByEnterAndNumber(t *testing.T) {
	mc := NewMultiChoice("Chào buổi sáng?", []string{"Gute Nacht", "Guten Morgen"}, "Guten Morgen")

	mc, picked := mc.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if picked != "" || mc.Cursor != 1 {
		t.Fatalf("down: cursor %d picked %q", mc.Cursor, picked)
	}
	_, picked = mc.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if picked != "Guten Morgen" {
		t.Fatalf("enter picked %q", picked)
	}

	mc, picked = mc.Update(key('1'))
	if picked != "Gute Nacht" || mc.Cursor != 0 {
		t.Fatalf("number key: cursor %d picked %q", mc.Cursor, picked)
	}
	_, picked = mc.Update(key('9'))
	if picked != "" {
		t.Fatalf("out of range number picked %q", picked)
	}
}

func TestMultiChoice_RevealedIgnoresKeys(t *testing.T) {
	mc := NewMultiChoice("q", []string{"a", "b"}, "b")
	mc.Chosen = "b"
	mc.Revealed = true
	mc, picked := mc.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if picked != "" {
		t.Fatal("revealed choice must not pick")
	}
	if !mc.IsCorrect() {
		t.Fatal("expected correct")
	}
}

func TestTextInput_Disable(t *testing.T) {
	ti := NewTextInput("Nhập...", false, 100)
	ti.Disable("Kết nối API Key (nhấn c)")
	ti, _ = ti.Update(key('x'))
	if ti.Value() != "" {
		t.Fatalf("disabled input accepted %q", ti.Value())
	}
	if !strings.Contains(ti.View(), "nhấn c") {
		t.Fatalf("disabled view should show reason, got %q", ti.View())
	}
	ti.Enable()
	if ti.Disabled() {
		t.Fatal("expected enabled")
	}
}

func TestFraction(t *testing.T) {
	tests := []struct {
		done, total int
		want        float64
	}{
		{0, 0, 0},
		{1, 4, 0.25},
		{5, 4, 1},
	}
	for _, tt := range tests {
		if got := Fraction(tt.done, tt.total); got != tt.want {
			t.Errorf("Fraction(%d, %d) = %v, want %v", tt.done, tt.total, got, tt.want)
		}
	}
}
