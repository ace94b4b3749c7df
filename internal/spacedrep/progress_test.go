package spacedrep

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/abhisek/alefba/internal/content"
)

var testNow = time.Date(2025, 3, 21, 9, 0, 0, 0, time.UTC)

func TestUpdate_FirstWinPromotes(t *testing.T) {
	it := content.Item{ID: "p01", Level: 1, Experience: 0}

	got := Update(it, true, testNow)

	if got.Level != 2 {
		t.Errorf("Level = %d, want 2", got.Level)
	}
	if got.Experience != 0 {
		t.Errorf("Experience = %d, want 0", got.Experience)
	}
	want := testNow.Add(24 * time.Hour).UnixMilli()
	if got.NextReviewTime != want {
		t.Errorf("NextReviewTime = %d, want %d", got.NextReviewTime, want)
	}
	if got.LastReviewTime != testNow.UnixMilli() {
		t.Errorf("LastReviewTime = %d, want %d", got.LastReviewTime, testNow.UnixMilli())
	}
}

func TestUpdate_IncorrectKeepsLevel(t *testing.T) {
	it := content.Item{ID: "p05", Level: 3, Experience: 1}

	got := Update(it, false, testNow)

	if got.Level != 3 {
		t.Errorf("Level = %d, want 3", got.Level)
	}
	if got.Experience != 0 {
		t.Errorf("Experience = %d, want 0", got.Experience)
	}
	if got.NextReviewTime != testNow.Add(RetryDelay).UnixMilli() {
		t.Errorf("NextReviewTime = %d, want retry delay", got.NextReviewTime)
	}
}

func TestUpdate_IncorrectFloorsExperience(t *testing.T) {
	it := content.Item{Level: 2, Experience: 0}
	got := Update(it, false, testNow)
	if got.Experience != 0 {
		t.Errorf("Experience = %d, want 0", got.Experience)
	}
}

func TestUpdate_AccumulatesBeforePromotion(t *testing.T) {
	it := content.Item{Level: 2}

	it = Update(it, true, testNow)
	it = Update(it, true, testNow)
	if it.Level != 2 || it.Experience != 2 {
		t.Fatalf("after 2 wins: Level=%d Experience=%d, want 2/2", it.Level, it.Experience)
	}
	if it.NextReviewTime != testNow.Add(24*time.Hour).UnixMilli() {
		t.Errorf("NextReviewTime should follow the level 2 box")
	}

	it = Update(it, true, testNow)
	if it.Level != 3 || it.Experience != 0 {
		t.Errorf("after 3 wins: Level=%d Experience=%d, want 3/0", it.Level, it.Experience)
	}
	if it.NextReviewTime != testNow.Add(48*time.Hour).UnixMilli() {
		t.Errorf("NextReviewTime should follow the level 3 box")
	}
}

func TestUpdate_MasteryIsTerminal(t *testing.T) {
	it := content.Item{Level: 4, Experience: 2}

	it = Update(it, true, testNow)
	if !it.IsMastered() {
		t.Fatalf("Level = %d, want mastered", it.Level)
	}
	if it.NextReviewTime != content.Never {
		t.Errorf("NextReviewTime = %d, want Never", it.NextReviewTime)
	}

	it = Update(it, true, testNow)
	if it.Level != content.MaxLevel {
		t.Errorf("Level = %d, want %d", it.Level, content.MaxLevel)
	}

	it = Update(it, false, testNow)
	if it.Level != content.MaxLevel || it.NextReviewTime != content.Never {
		t.Errorf("miss on mastered item changed schedule: Level=%d Next=%d", it.Level, it.NextReviewTime)
	}
}

func TestUpdate_LevelNeverDecreases(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	it := content.Item{Level: 1}
	now := testNow

	for i := 0; i < 500; i++ {
		prevLevel := it.Level
		it = Update(it, r.IntN(3) > 0, now)
		if it.Level < prevLevel {
			t.Fatalf("step %d: level dropped from %d to %d", i, prevLevel, it.Level)
		}
		if it.IsMastered() != (it.Level == content.MaxLevel) {
			t.Fatalf("step %d: IsMastered inconsistent at level %d", i, it.Level)
		}
		if !it.IsMastered() && it.NextReviewTime < it.LastReviewTime {
			t.Fatalf("step %d: next review %d before last review %d", i, it.NextReviewTime, it.LastReviewTime)
		}
		now = now.Add(time.Minute)
	}
}
