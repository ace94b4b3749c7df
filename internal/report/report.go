// Package report summarizes learning progress for parents.
package report

import (
	"fmt"
	"time"

	"github.com/abhisek/alefba/internal/content"
	"github.com/abhisek/alefba/internal/spacedrep"
)

// Counts tallies items by schedule status.
type Counts struct {
	Total    int
	Started  int
	Mastered int
	Due      int
}

// Percent returns the mastered share, truncated to a whole percent.
func (c Counts) Percent() int {
	if c.Total == 0 {
		return 0
	}
	return c.Mastered * 100 / c.Total
}

func (c *Counts) add(it content.Item, now time.Time) {
	c.Total++
	if it.Attempted() {
		c.Started++
	}
	if it.IsMastered() {
		c.Mastered++
	}
	if spacedrep.IsDue(it, now) {
		c.Due++
	}
}

// CategoryReport is the progress of one category.
type CategoryReport struct {
	Category content.Category
	Counts
	Items []ItemLine
}

// ItemLine is one item's row in the report.
type ItemLine struct {
	Item   content.Item
	Status spacedrep.Status
	// NextReview is the time until the item is due; zero when due, new or
	// mastered.
	NextReview time.Duration
}

// Report is the full progress report.
type Report struct {
	GeneratedAt time.Time
	Overall     Counts
	Categories  []CategoryReport
	Narrative   string
}

// Build computes the report for items as of now.
func Build(items []content.Item, now time.Time) Report {
	r := Report{GeneratedAt: now}
	for _, c := range content.Categories {
		cr := CategoryReport{Category: c}
		catItems := content.FilterCategory(items, c)
		content.SortByPosition(catItems)
		for _, it := range catItems {
			cr.add(it, now)
			r.Overall.add(it, now)
			line := ItemLine{Item: it, Status: spacedrep.StatusOf(it, now)}
			if line.Status == spacedrep.StatusLearning {
				line.NextReview = spacedrep.UntilReview(it, now)
			}
			cr.Items = append(cr.Items, line)
		}
		r.Categories = append(r.Categories, cr)
	}
	r.Narrative = Narrative(r.Overall)
	return r
}

// Narrative is the one-line summary shown to parents.
func Narrative(c Counts) string {
	if c.Total == 0 {
		return "هنوز داده‌ای برای تحلیل وجود ندارد."
	}
	switch p := c.Percent(); {
	case p == 0:
		return "کودک شما در حال آشنایی با اولین نشانه‌هاست."
	case p < 30:
		return fmt.Sprintf("%d نشانه به خوبی یاد گرفته شده.", c.Mastered)
	case p < 70:
		return "کودک شما بر بیش از نیمی از نشانه‌ها مسلط شده است."
	default:
		return "تقریباً تمام نشانه‌ها تثبیت شده‌اند."
	}
}
