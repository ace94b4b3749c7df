package components

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
)

var (
	menuUp     = key.NewBinding(key.WithKeys("up", "k"))
	menuDown   = key.NewBinding(key.WithKeys("down", "j"))
	menuChoose = key.NewBinding(key.WithKeys("enter", "space"))
	menuJump   = key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"))
)

// MenuItem is one entry of a Menu. Action runs when the entry is chosen.
type MenuItem struct {
	Label    string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list of actions. Disabled entries are skipped while
// moving. The digits 1-9 choose an entry directly. Rendering is left to
// the owning screen.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu selects the first enabled entry.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.step(1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

// step moves the selection to the next enabled entry in direction dir and
// stays put when there is none.
func (m *Menu) step(dir int) {
	for i := m.Selected + dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			m.Selected = i
			return
		}
	}
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(kmsg, menuUp):
		m.step(-1)
	case key.Matches(kmsg, menuDown):
		m.step(1)
	case key.Matches(kmsg, menuChoose):
		return m, m.run(m.Selected)
	case key.Matches(kmsg, menuJump):
		i := int(kmsg.String()[0] - '1')
		if i < len(m.Items) && !m.Items[i].Disabled {
			m.Selected = i
			return m, m.run(i)
		}
	}
	return m, nil
}

func (m Menu) run(i int) tea.Cmd {
	if i < 0 || i >= len(m.Items) {
		return nil
	}
	it := m.Items[i]
	if it.Disabled || it.Action == nil {
		return nil
	}
	return it.Action()
}
