// Package router keeps the stack of screens. Screens navigate by returning
// one of the *Msg commands below; everything else goes to the top screen.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/alefba/internal/screen"
)

type PushScreenMsg struct {
	Screen screen.Screen
}

type PopScreenMsg struct{}

// ReplaceScreenMsg swaps the top screen, e.g. a finished session for its
// summary, so that going back skips it.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

type PopToRootMsg struct{}

// Refresher is implemented by screens that reload their data when the
// screen above them goes away.
type Refresher interface {
	Refresh() tea.Cmd
}

// Router is a stack of screens whose root is never removed.
type Router struct {
	stack []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

// Push puts s on top and returns its Init command.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Replace swaps the top screen for s and returns its Init command.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	if len(r.stack) == 0 {
		return r.Push(s)
	}
	r.stack[len(r.stack)-1] = s
	return s.Init()
}

func (r *Router) Pop() tea.Cmd { return r.cut(len(r.stack) - 1) }

func (r *Router) PopToRoot() tea.Cmd { return r.cut(1) }

// cut shrinks the stack to depth screens, never below the root, and
// refreshes the uncovered screen.
func (r *Router) cut(depth int) tea.Cmd {
	depth = max(depth, 1)
	if depth >= len(r.stack) {
		return nil
	}
	r.stack = r.stack[:depth]
	if rf, ok := r.Active().(Refresher); ok {
		return rf.Refresh()
	}
	return nil
}

func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

func (r *Router) Depth() int { return len(r.stack) }

func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	case PopToRootMsg:
		return r.PopToRoot()
	}
	top := r.Active()
	if top == nil {
		return nil
	}
	next, cmd := top.Update(msg)
	r.stack[len(r.stack)-1] = next
	return cmd
}

func (r *Router) View(width, height int) string {
	if top := r.Active(); top != nil {
		return top.View(width, height)
	}
	return ""
}
