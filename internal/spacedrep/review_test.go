package spacedrep

import (
	"testing"
	"time"

	"github.com/abhisek/alefba/internal/content"
)

func TestIsDue(t *testing.T) {
	now := testNow.UnixMilli()
	tests := []struct {
		name string
		item content.Item
		want bool
	}{
		{"never attempted", content.Item{NextReviewTime: 0}, false},
		{"before date", content.Item{LastReviewTime: 1, NextReviewTime: now + 1000}, false},
		{"on date", content.Item{LastReviewTime: 1, NextReviewTime: now}, true},
		{"after date", content.Item{LastReviewTime: 1, NextReviewTime: now - 1000}, true},
		{"mastered", content.Item{Level: 5, LastReviewTime: 1, NextReviewTime: content.Never}, false},
	}
	for _, tt := range tests {
		if got := IsDue(tt.item, testNow); got != tt.want {
			t.Errorf("%s: IsDue = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestUntilReview(t *testing.T) {
	it := content.Item{LastReviewTime: 1, NextReviewTime: testNow.Add(90 * time.Minute).UnixMilli()}
	if got := UntilReview(it, testNow); got != 90*time.Minute {
		t.Errorf("UntilReview = %s, want 1h30m", got)
	}

	it.NextReviewTime = content.Never
	if got := UntilReview(it, testNow); got != -1 {
		t.Errorf("UntilReview(mastered) = %s, want -1", got)
	}
}

func TestStatusOf(t *testing.T) {
	now := testNow.UnixMilli()
	tests := []struct {
		item content.Item
		want Status
	}{
		{content.Item{Level: 1}, StatusNew},
		{content.Item{Level: 2, LastReviewTime: 1, NextReviewTime: now + 1}, StatusLearning},
		{content.Item{Level: 2, LastReviewTime: 1, NextReviewTime: now - 1}, StatusDue},
		{content.Item{Level: 5, LastReviewTime: 1, NextReviewTime: content.Never}, StatusMastered},
	}
	for _, tt := range tests {
		if got := StatusOf(tt.item, testNow); got != tt.want {
			t.Errorf("StatusOf(level %d) = %s, want %s", tt.item.Level, got, tt.want)
		}
	}
}
