package home

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/alefba/internal/content"
	"github.com/abhisek/alefba/internal/router"
)

var testNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func TestComputeStats(t *testing.T) {
	items := content.Catalog()
	items[0].Level = content.MaxLevel
	items[0].LastReviewTime = testNow.Add(-time.Hour).UnixMilli()
	items[0].NextReviewTime = content.Never
	items[1].Level = 2
	items[1].LastReviewTime = testNow.Add(-48 * time.Hour).UnixMilli()
	items[1].NextReviewTime = testNow.Add(-time.Hour).UnixMilli()

	st := computeStats(items, testNow)
	if st.total != 42 || st.started != 2 || st.mastered != 1 || st.due != 1 {
		t.Errorf("stats = %+v", st)
	}
	if !st.recent {
		t.Error("item mastered an hour ago should count as recent")
	}
}

func TestMascotVariant(t *testing.T) {
	h := New(nil)
	if h.mascot() != MascotIdle {
		t.Error("fresh home should show the idle mascot")
	}
	h.stats = stats{recent: true}
	if h.mascot() != MascotCelebrating {
		t.Error("recent mastery should celebrate")
	}
	h.stats = stats{recent: true, due: 3}
	if h.mascot() != MascotAlert {
		t.Error("three due reviews should alert")
	}
}

func TestStatsLoaded(t *testing.T) {
	h := New(nil)
	h.Update(statsLoadedMsg{stats: stats{total: 42, mastered: 4}})

	view := h.View(100, 34)
	if !strings.Contains(view, "4 MASTERED") {
		t.Error("view should show the mastered count")
	}
}

func TestMenuPushesSession(t *testing.T) {
	h := New(nil)
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	msg := cmd()
	push, ok := msg.(router.PushScreenMsg)
	if !ok {
		t.Fatalf("got %T, want router.PushScreenMsg", msg)
	}
	if push.Screen.Title() != "Learn Letters" {
		t.Errorf("pushed %q", push.Screen.Title())
	}
}

func TestExitQuits(t *testing.T) {
	h := New(nil)
	for range len(h.labels) - 1 {
		h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("EXIT should quit")
	}
}

func TestMenuWithoutServices(t *testing.T) {
	h := New(nil)
	want := []string{"Learn Letters", "Learn Numbers", "Review Letters", "Review Numbers", "Island Map", "Parent Report", "History"}
	for i, title := range want {
		if i > 0 {
			h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
		}
		_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
		push, ok := cmd().(router.PushScreenMsg)
		if !ok {
			t.Fatalf("item %d did not push a screen", i)
		}
		if got := push.Screen.Title(); got != title {
			t.Errorf("item %d pushed %q, want %q", i, got, title)
		}
	}
}
