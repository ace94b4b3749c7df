package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestKeyboardMoveWraps(t *testing.T) {
	k := NewKeyboard([]string{"ا", "ب", "د"})

	k.Move(-1)
	if got, _ := k.Current(); got != "د" {
		t.Errorf("after -1: %q, want د", got)
	}
	k.Move(2)
	if got, _ := k.Current(); got != "ب" {
		t.Errorf("after +2: %q, want ب", got)
	}
}

func TestKeyboardAt(t *testing.T) {
	k := NewKeyboard([]string{"۱", "۲"})
	if got, ok := k.At(2); !ok || got != "۲" {
		t.Errorf("At(2) = %q, %v", got, ok)
	}
	if _, ok := k.At(3); ok {
		t.Error("At(3) should be out of range")
	}
	if _, ok := k.At(0); ok {
		t.Error("At(0) should be out of range")
	}
	if k.Index("۲") != 1 || k.Index("۳") != -1 {
		t.Error("Index mismatch")
	}
}

func TestKeyboardViewShowsEveryKey(t *testing.T) {
	keys := []string{"ا", "ب", "د", "م", "س", "ر", "ن", "ز", "ت", "ی"}
	view := NewKeyboard(keys).View(30)
	for _, k := range keys {
		if !strings.Contains(view, k) {
			t.Errorf("view missing %q", k)
		}
	}
	if !strings.Contains(view, "9") {
		t.Error("ninth key should carry its digit")
	}
	if strings.Count(view, "\n") < 4 {
		t.Error("ten keys should wrap at width 30")
	}
}

func TestProgressBarPercent(t *testing.T) {
	tests := []struct {
		done, total int
		want        float64
	}{
		{0, 0, 0},
		{1, 4, 0.25},
		{5, 4, 1},
	}
	for _, tt := range tests {
		p := ProgressBar{Done: tt.done, Total: tt.total}
		if got := p.Percent(); got != tt.want {
			t.Errorf("Percent(%d/%d) = %v, want %v", tt.done, tt.total, got, tt.want)
		}
	}
	if view := (ProgressBar{Label: "Items", Done: 1, Total: 3, Width: 40}).View(); !strings.Contains(view, "1/3") {
		t.Errorf("view missing count: %q", view)
	}
}

func TestMenuSkipsDisabled(t *testing.T) {
	chosen := ""
	pick := func(name string) func() tea.Cmd {
		return func() tea.Cmd {
			chosen = name
			return nil
		}
	}
	m := NewMenu([]MenuItem{
		{Label: "OFF", Disabled: true},
		{Label: "LETTERS", Action: pick("letters")},
		{Label: "SOON", Disabled: true},
		{Label: "NUMBERS", Action: pick("numbers")},
	})
	if m.Selected != 1 {
		t.Fatalf("Selected = %d, want the first enabled entry", m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Errorf("down should skip the disabled entry, got %d", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Errorf("down at the end should stay, got %d", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 1 {
		t.Errorf("up should stop at the first enabled entry, got %d", m.Selected)
	}

	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if chosen != "letters" {
		t.Errorf("enter chose %q", chosen)
	}
}

func TestMenuDigitJumps(t *testing.T) {
	chosen := ""
	m := NewMenu([]MenuItem{
		{Label: "A", Action: func() tea.Cmd { chosen = "a"; return nil }},
		{Label: "B", Disabled: true, Action: func() tea.Cmd { chosen = "b"; return nil }},
		{Label: "C", Action: func() tea.Cmd { chosen = "c"; return nil }},
	})

	m, _ = m.Update(tea.KeyPressMsg{Code: '3', Text: "3"})
	if chosen != "c" || m.Selected != 2 {
		t.Errorf("chosen=%q selected=%d, want c/2", chosen, m.Selected)
	}

	chosen = ""
	m, _ = m.Update(tea.KeyPressMsg{Code: '2', Text: "2"})
	m.Update(tea.KeyPressMsg{Code: '9', Text: "9"})
	if chosen != "" || m.Selected != 2 {
		t.Errorf("disabled and missing entries must not run, chosen=%q", chosen)
	}
}

func TestContentWidthBounds(t *testing.T) {
	for frame, want := range map[int]int{10: 20, 50: 44, 200: 60} {
		if got := ContentWidth(frame); got != want {
			t.Errorf("ContentWidth(%d) = %d, want %d", frame, got, want)
		}
	}
}
