package parent

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/alefba/internal/content"
	"github.com/abhisek/alefba/internal/router"
	"github.com/abhisek/alefba/internal/screen"
	"github.com/abhisek/alefba/internal/store"
)

var testNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type fakeItems struct {
	store.ItemRepo
	items []content.Item
	err   error
}

func (f *fakeItems) ListAll(context.Context) ([]content.Item, error) {
	return f.items, f.err
}

func loaded(items []content.Item, err error) *ParentScreen {
	s := New(&screen.Services{Items: &fakeItems{items: items, err: err}, Now: func() time.Time { return testNow }})
	s.Update(s.Init()())
	return s
}

func TestParentReport(t *testing.T) {
	items := content.Catalog()
	for i := range 3 {
		items[i].Level = content.MaxLevel
		items[i].LastReviewTime = testNow.Add(-time.Hour).UnixMilli()
		items[i].NextReviewTime = content.Never
	}
	items[3].Level = 2
	items[3].LastReviewTime = testNow.Add(-time.Hour).UnixMilli()
	items[3].NextReviewTime = testNow.Add(3 * time.Hour).UnixMilli()

	s := loaded(items, nil)
	view := s.View(100, 60)
	for _, want := range []string{"3 نشانه به خوبی یاد گرفته شده.", "Letters 3/32", "Numbers 0/10", "4 started", "review in 3h"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestParentTabs(t *testing.T) {
	s := loaded(content.Catalog(), nil)
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if s.current().Category != content.CategoryNumber {
		t.Error("tab should switch to numbers")
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if s.current().Category != content.CategoryAlphabet {
		t.Error("tab should wrap around")
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	if s.current().Category != content.CategoryNumber {
		t.Error("shift+tab should go back")
	}
}

func TestParentScroll(t *testing.T) {
	s := loaded(content.Catalog(), nil)
	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if s.offset != 0 {
		t.Error("cannot scroll above the top")
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.offset != 1 {
		t.Errorf("offset = %d, want 1", s.offset)
	}
}

func TestParentError(t *testing.T) {
	s := loaded(nil, errors.New("db closed"))
	if !strings.Contains(s.View(80, 24), "db closed") {
		t.Error("load errors should be shown")
	}
}

func TestParentEscPops(t *testing.T) {
	s := New(nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("esc should go back")
	}
}
