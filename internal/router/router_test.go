package router

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/alefba/internal/screen"
)

// fakeScreen records Init, Refresh and the messages it receives.
type fakeScreen struct {
	title     string
	inits     int
	refreshes int
	got       []tea.Msg
}

func (f *fakeScreen) Init() tea.Cmd { f.inits++; return nil }

func (f *fakeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	f.got = append(f.got, msg)
	return f, nil
}

func (f *fakeScreen) View(int, int) string { return f.title }
func (f *fakeScreen) Title() string        { return f.title }

func (f *fakeScreen) Refresh() tea.Cmd { f.refreshes++; return nil }

// plainScreen has no Refresh method.
type plainScreen struct{ title string }

func (p *plainScreen) Init() tea.Cmd                          { return nil }
func (p *plainScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return p, nil }
func (p *plainScreen) View(int, int) string                   { return p.title }
func (p *plainScreen) Title() string                          { return p.title }

func titles(r *Router) string {
	parts := make([]string, len(r.stack))
	for i, s := range r.stack {
		parts[i] = s.Title()
	}
	return strings.Join(parts, ">")
}

func TestNavigation(t *testing.T) {
	tests := []struct {
		name string
		msgs []tea.Msg
		want string
	}{
		{"push", []tea.Msg{PushScreenMsg{&plainScreen{"session"}}}, "home>session"},
		{"pop", []tea.Msg{PushScreenMsg{&plainScreen{"islands"}}, PopScreenMsg{}}, "home"},
		{"pop at root", []tea.Msg{PopScreenMsg{}, PopScreenMsg{}}, "home"},
		{"replace top", []tea.Msg{
			PushScreenMsg{&plainScreen{"session"}},
			ReplaceScreenMsg{&plainScreen{"summary"}},
		}, "home>summary"},
		{"replace root", []tea.Msg{ReplaceScreenMsg{&plainScreen{"welcome"}}}, "welcome"},
		{"pop to root", []tea.Msg{
			PushScreenMsg{&plainScreen{"islands"}},
			PushScreenMsg{&plainScreen{"detail"}},
			PopToRootMsg{},
		}, "home"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(&plainScreen{"home"})
			for _, msg := range tt.msgs {
				r.Update(msg)
			}
			if got := titles(r); got != tt.want {
				t.Errorf("stack = %s, want %s", got, tt.want)
			}
			if r.View(80, 24) != r.Active().Title() {
				t.Error("View should render the top screen")
			}
		})
	}
}

func TestInitRunsOnArrival(t *testing.T) {
	r := New(&plainScreen{"home"})
	session := &fakeScreen{title: "session"}
	summary := &fakeScreen{title: "summary"}

	r.Update(PushScreenMsg{session})
	r.Update(ReplaceScreenMsg{summary})
	if session.inits != 1 || summary.inits != 1 {
		t.Errorf("inits session=%d summary=%d, want 1/1", session.inits, summary.inits)
	}
}

func TestUncoveredScreenRefreshes(t *testing.T) {
	home := &fakeScreen{title: "home"}
	r := New(home)

	r.Push(&plainScreen{"session"})
	r.Replace(&plainScreen{"summary"})
	if home.refreshes != 0 {
		t.Fatal("covered screens must not refresh")
	}
	r.Update(PopToRootMsg{})
	if home.refreshes != 1 {
		t.Errorf("refreshes = %d after leaving the summary", home.refreshes)
	}

	r.PopToRoot()
	r.Pop()
	if home.refreshes != 1 {
		t.Error("nothing was uncovered, nothing should refresh")
	}
}

func TestOtherMessagesReachTop(t *testing.T) {
	home := &fakeScreen{title: "home"}
	islands := &fakeScreen{title: "islands"}
	r := New(home)
	r.Push(islands)

	r.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if len(islands.got) != 1 || len(home.got) != 0 {
		t.Errorf("top got %d, root got %d", len(islands.got), len(home.got))
	}
}
