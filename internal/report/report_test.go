package report

import (
	"testing"
	"time"

	"github.com/abhisek/alefba/internal/content"
	"github.com/abhisek/alefba/internal/spacedrep"
)

var testNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func mastered(it content.Item) content.Item {
	it.Level = content.MaxLevel
	it.LastReviewTime = testNow.Add(-time.Hour).UnixMilli()
	it.NextReviewTime = content.Never
	return it
}

func TestBuild_FreshCatalog(t *testing.T) {
	r := Build(content.Catalog(), testNow)

	if r.Overall.Total != 42 || r.Overall.Started != 0 {
		t.Fatalf("overall = %+v", r.Overall)
	}
	if len(r.Categories) != 2 {
		t.Fatalf("categories = %d, want 2", len(r.Categories))
	}
	if r.Categories[0].Category != content.CategoryAlphabet || r.Categories[0].Total != 32 {
		t.Errorf("alphabet = %+v", r.Categories[0].Counts)
	}
	if r.Categories[1].Total != 10 {
		t.Errorf("numbers total = %d, want 10", r.Categories[1].Total)
	}
	if r.Narrative != "کودک شما در حال آشنایی با اولین نشانه‌هاست." {
		t.Errorf("narrative = %q", r.Narrative)
	}
	for _, line := range r.Categories[0].Items {
		if line.Status != spacedrep.StatusNew {
			t.Fatalf("%s status = %s, want new", line.Item.ID, line.Status)
		}
	}
}

func TestBuild_Counts(t *testing.T) {
	items := content.Catalog()
	items[0] = mastered(items[0])
	items[1].Level = 2
	items[1].LastReviewTime = testNow.Add(-2 * time.Hour).UnixMilli()
	items[1].NextReviewTime = testNow.Add(-time.Minute).UnixMilli()
	items[2].Level = 2
	items[2].LastReviewTime = testNow.Add(-time.Hour).UnixMilli()
	items[2].NextReviewTime = testNow.Add(3 * time.Hour).UnixMilli()

	r := Build(items, testNow)
	alpha := r.Categories[0]
	if alpha.Started != 3 || alpha.Mastered != 1 || alpha.Due != 1 {
		t.Errorf("alphabet counts = %+v", alpha.Counts)
	}
	if alpha.Items[2].Status != spacedrep.StatusLearning || alpha.Items[2].NextReview != 3*time.Hour {
		t.Errorf("learning line = %+v", alpha.Items[2])
	}
	if alpha.Items[1].NextReview != 0 {
		t.Errorf("due line NextReview = %s, want 0", alpha.Items[1].NextReview)
	}
}

func TestNarrative(t *testing.T) {
	tests := []struct {
		name   string
		counts Counts
		want   string
	}{
		{"empty", Counts{}, "هنوز داده‌ای برای تحلیل وجود ندارد."},
		{"none mastered", Counts{Total: 42, Started: 5}, "کودک شما در حال آشنایی با اولین نشانه‌هاست."},
		{"a few", Counts{Total: 42, Mastered: 7}, "7 نشانه به خوبی یاد گرفته شده."},
		{"half", Counts{Total: 42, Mastered: 21}, "کودک شما بر بیش از نیمی از نشانه‌ها مسلط شده است."},
		{"boundary 30", Counts{Total: 10, Mastered: 3}, "کودک شما بر بیش از نیمی از نشانه‌ها مسلط شده است."},
		{"boundary 70", Counts{Total: 10, Mastered: 7}, "تقریباً تمام نشانه‌ها تثبیت شده‌اند."},
		{"all", Counts{Total: 42, Mastered: 42}, "تقریباً تمام نشانه‌ها تثبیت شده‌اند."},
	}
	for _, tt := range tests {
		if got := Narrative(tt.counts); got != tt.want {
			t.Errorf("%s: Narrative = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestPercent(t *testing.T) {
	if got := (Counts{Total: 3, Mastered: 1}).Percent(); got != 33 {
		t.Errorf("Percent = %d, want 33", got)
	}
	if got := (Counts{}).Percent(); got != 0 {
		t.Errorf("empty Percent = %d, want 0", got)
	}
}
