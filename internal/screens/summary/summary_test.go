package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/alefba/internal/content"
	"github.com/abhisek/alefba/internal/router"
	"github.com/abhisek/alefba/internal/session"
)

func testSummary() session.Summary {
	return session.Summary{
		SessionID:  "s-1",
		Category:   content.CategoryAlphabet,
		Planned:    3,
		Completed:  3,
		Flawless:   2,
		BestStreak: 2,
		Duration:   95 * time.Second,
		Accuracy:   2.0 / 3.0,
	}
}

func TestSummaryView(t *testing.T) {
	s := New(testSummary())
	if s.Title() != "Session Summary" {
		t.Errorf("Title = %q", s.Title())
	}
	view := s.View(80, 24)
	for _, want := range []string{"Session complete!", "Letters learning", "1:35", "Items: 3/3", "Accuracy: 67%", "best streak 2"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	review := testSummary()
	review.Review, review.BestStreak = true, 0
	view = New(review).View(80, 24)
	if !strings.Contains(view, "Letters review") || strings.Contains(view, "best streak") {
		t.Errorf("review card without a streak:\n%s", view)
	}
}

func TestHeadline(t *testing.T) {
	tests := []struct {
		name string
		sum  session.Summary
		want string
	}{
		{"nothing done", session.Summary{Planned: 3}, "See you next time!"},
		{"stopped early", session.Summary{Planned: 3, Completed: 1, Flawless: 1}, "Good try!"},
		{"all flawless", session.Summary{Planned: 2, Completed: 2, Flawless: 2}, "Perfect session!"},
		{"some mistakes", session.Summary{Planned: 2, Completed: 2, Flawless: 1}, "Session complete!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := headline(tt.sum); got != tt.want {
				t.Errorf("headline = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKeysReturnHome(t *testing.T) {
	s := New(testSummary())
	if len(s.KeyHints()) != 2 || !s.HandlesBack() {
		t.Fatal("summary should own esc and show two hints")
	}
	for _, k := range []tea.KeyPressMsg{{Code: tea.KeyEnter}, {Code: tea.KeyEscape}} {
		_, cmd := s.Update(k)
		if cmd == nil {
			t.Fatalf("no command on %s", k.String())
		}
		if _, ok := cmd().(router.PopToRootMsg); !ok {
			t.Errorf("%s should return home", k.String())
		}
	}
	if _, cmd := s.Update(tea.KeyPressMsg{Code: 'x', Text: "x"}); cmd != nil {
		t.Error("other keys are ignored")
	}
}
