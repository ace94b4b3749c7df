package islands

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/alefba/internal/content"
	"github.com/abhisek/alefba/internal/screen"
	"github.com/abhisek/alefba/internal/spacedrep"
	"github.com/abhisek/alefba/internal/store"
	"github.com/abhisek/alefba/internal/ui/layout"
	"github.com/abhisek/alefba/internal/ui/theme"
)

// detailHistory is how many recent drills the detail screen lists.
const detailHistory = 8

type historyLoadedMsg struct {
	events []store.ProgressEventRecord
	err    error
}

// IslandDetailScreen shows one item's progress and its latest drills.
type IslandDetailScreen struct {
	svc    *screen.Services
	island content.Island
	now    time.Time
	events []store.ProgressEventRecord
	errMsg string
}

var _ screen.Screen = (*IslandDetailScreen)(nil)
var _ screen.KeyHintProvider = (*IslandDetailScreen)(nil)

func newIslandDetail(svc *screen.Services, isl content.Island, now time.Time) *IslandDetailScreen {
	return &IslandDetailScreen{svc: svc, island: isl, now: now}
}

func (d *IslandDetailScreen) Init() tea.Cmd {
	svc, id := d.svc, d.island.Item.ID
	return func() tea.Msg {
		if svc == nil || svc.Events == nil {
			return historyLoadedMsg{}
		}
		events, err := svc.Events.ProgressHistory(context.Background(), id, store.QueryOpts{Limit: detailHistory})
		return historyLoadedMsg{events: events, err: err}
	}
}

func (d *IslandDetailScreen) Title() string {
	return d.island.Item.Character + "  " + d.island.Item.Word
}

func (d *IslandDetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(historyLoadedMsg); ok {
		if msg.err != nil {
			d.errMsg = msg.err.Error()
		}
		d.events = msg.events
	}
	return d, nil
}

func (d *IslandDetailScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

// nextReviewText describes when the item comes up again.
func nextReviewText(it content.Item, now time.Time) string {
	switch spacedrep.StatusOf(it, now) {
	case spacedrep.StatusNew:
		return "not started"
	case spacedrep.StatusMastered:
		return "never, mastered"
	case spacedrep.StatusDue:
		return "now"
	}
	wait := spacedrep.UntilReview(it, now)
	switch {
	case wait < time.Hour:
		return fmt.Sprintf("in %d min", max(1, int(wait.Minutes())))
	case wait < 48*time.Hour:
		return fmt.Sprintf("in %d h", int(wait.Hours()))
	default:
		return fmt.Sprintf("in %d days", int(wait.Hours()/24))
	}
}

func (d *IslandDetailScreen) View(width, height int) string {
	it := d.island.Item
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	valStyle := lipgloss.NewStyle().Foreground(theme.Text)
	headStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render(fmt.Sprintf("  %s   %s", it.Character, it.Word)))
	b.WriteString("\n")
	status := string(spacedrep.StatusOf(it, d.now))
	if d.island.Locked {
		status = "locked"
	}
	b.WriteString(dimStyle.Render("  " + status))
	b.WriteString("\n\n")

	need := spacedrep.RequiredExperience(it.Level)
	b.WriteString(dimStyle.Render("  Category:     ") + valStyle.Render(it.Category.Label()) + "\n")
	b.WriteString(dimStyle.Render("  Level:        ") +
		lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Render(levelStars(it.Level)) +
		valStyle.Render(fmt.Sprintf("  %d/%d", it.Level, content.MaxLevel)) + "\n")
	if !it.IsMastered() {
		b.WriteString(dimStyle.Render("  Experience:   ") + valStyle.Render(fmt.Sprintf("%d/%d", it.Experience, need)) + "\n")
	}
	b.WriteString(dimStyle.Render("  Next review:  ") + valStyle.Render(nextReviewText(it, d.now)) + "\n")
	if it.ImageRef != "" {
		b.WriteString(dimStyle.Render("  Picture:      ") + valStyle.Render(it.ImageRef) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(headStyle.Render("  Recent drills"))
	b.WriteString("\n")
	switch {
	case d.errMsg != "":
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("  " + d.errMsg))
		b.WriteString("\n")
	case len(d.events) == 0:
		b.WriteString(dimStyle.Italic(true).Render("  None yet"))
		b.WriteString("\n")
	default:
		for _, ev := range d.events {
			mark, style := "✓", theme.Correct
			if !ev.Correct {
				mark, style = "✗", theme.Incorrect
			}
			line := fmt.Sprintf("  %s %s  %-15s level %d → %d",
				mark, ev.Timestamp.Format("Jan 02 15:04"), ev.Activity, ev.FromLevel, ev.ToLevel)
			b.WriteString(style.Render(line))
			b.WriteString("\n")
		}
	}

	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, "\n"+b.String())
}
