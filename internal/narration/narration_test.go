package narration

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/abhisek/alefba/internal/activity"
	"github.com/abhisek/alefba/internal/content"
	"github.com/abhisek/alefba/internal/llm"
)

type recorder struct {
	mu      sync.Mutex
	spoken  []string
	effects []string
}

func (r *recorder) Speak(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.spoken = append(r.spoken, text)
	return nil
}

func (r *recorder) Play(_ context.Context, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.effects = append(r.effects, name)
}

func (r *recorder) said() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.spoken...)
}

func (r *recorder) played() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.effects...)
}

type fixedRand int

func (f fixedRand) IntN(n int) int { return int(f) % n }

func newTestNarrator(rec *recorder, stories *Storyteller) *Narrator {
	return New(Options{
		Speaker:       rec,
		Effects:       rec,
		Stories:       stories,
		Rand:          fixedRand(1),
		ErrorThrottle: 800 * time.Millisecond,
	})
}

var baba = content.Item{ID: "p02", Character: "ب", Word: "بابا", Category: content.CategoryAlphabet, Level: 2}

func TestInstruction(t *testing.T) {
	tests := []struct {
		activity activity.Type
		want     string
	}{
		{activity.Intro, "بیا با هم بِنِویسیم: «ب»..."},
		{activity.MissingLetter, "توی کلمه بابا، کدوم نِشانه گُم شده؟"},
		{activity.Spelling, "حالا خودت بِنِویس: «بابا»"},
		{activity.Recognition, "تَصویرِ بابا کُجاست؟"},
		{activity.Recall, "زود بِنِویس: «بابا»"},
		{activity.Type("TRACE"), ""},
	}
	for _, tt := range tests {
		if got := Instruction(tt.activity, baba); got != tt.want {
			t.Errorf("Instruction(%s) = %q, want %q", tt.activity, got, tt.want)
		}
	}
}

func TestPresentSpeaksInstruction(t *testing.T) {
	rec := &recorder{}
	n := newTestNarrator(rec, nil)

	n.Present(context.Background(), baba, activity.Choice{Type: activity.MissingLetter, MissingIndex: 1})
	n.Wait()

	got := rec.said()
	if len(got) != 1 || got[0] != Instruction(activity.MissingLetter, baba) {
		t.Errorf("spoken = %v", got)
	}
}

func TestBeginCancelsPreviousScope(t *testing.T) {
	n := New(Options{})
	first := n.Begin(context.Background())
	second := n.Begin(context.Background())

	if first.Context().Err() == nil {
		t.Error("first scope still live after Begin")
	}
	if second.Context().Err() != nil {
		t.Error("second scope cancelled")
	}

	n.Stop()
	if second.Context().Err() == nil {
		t.Error("Stop did not cancel the scope")
	}
	n.Stop()
}

func TestScopeSay(t *testing.T) {
	rec := &recorder{}
	n := newTestNarrator(rec, nil)

	n.Begin(context.Background()).Say(0, "یک", "", "دو")
	n.Wait()
	if got := rec.said(); len(got) != 2 || got[0] != "یک" || got[1] != "دو" {
		t.Errorf("spoken = %v, want [یک دو]", got)
	}
}

func TestScopeEndStopsSay(t *testing.T) {
	var (
		mu     sync.Mutex
		spoken []string
	)
	started := make(chan struct{})
	blocking := speakerFunc(func(ctx context.Context, text string) error {
		mu.Lock()
		spoken = append(spoken, text)
		mu.Unlock()
		close(started)
		<-ctx.Done()
		return ctx.Err()
	})
	n := New(Options{Speaker: blocking})

	s := n.Begin(context.Background())
	s.Say(0, "first", "second")
	<-started
	s.End()
	n.Wait()

	if s.Context().Err() == nil {
		t.Error("scope still live after End")
	}
	mu.Lock()
	defer mu.Unlock()
	if len(spoken) != 1 {
		t.Errorf("spoken = %v, want only the first line", spoken)
	}
}

func TestNewItemCutsOffNarration(t *testing.T) {
	started := make(chan struct{})
	var once sync.Once
	result := make(chan error, 1)
	blocking := speakerFunc(func(ctx context.Context, text string) error {
		once.Do(func() { close(started) })
		<-ctx.Done()
		result <- ctx.Err()
		return ctx.Err()
	})
	n := New(Options{Speaker: blocking})

	n.Present(context.Background(), baba, activity.Choice{Type: activity.Spelling})
	<-started
	n.Begin(context.Background())

	select {
	case err := <-result:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("speech ended with %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("stale narration kept talking")
	}
	n.Stop()
	n.Wait()
}

type speakerFunc func(ctx context.Context, text string) error

func (f speakerFunc) Speak(ctx context.Context, text string) error { return f(ctx, text) }

func TestMistakeThrottled(t *testing.T) {
	rec := &recorder{}
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	n := New(Options{
		Effects:       rec,
		ErrorThrottle: 800 * time.Millisecond,
		Now:           func() time.Time { return now },
	})

	ctx := context.Background()
	n.Mistake(ctx)
	now = now.Add(500 * time.Millisecond)
	n.Mistake(ctx)
	now = now.Add(400 * time.Millisecond)
	n.Mistake(ctx)

	if got := rec.played(); len(got) != 2 || got[0] != EffectError {
		t.Errorf("effects = %v, want two error sounds", got)
	}
}

func TestSuccessRewards(t *testing.T) {
	rec := &recorder{}
	n := newTestNarrator(rec, nil)

	n.Success(context.Background())
	n.Wait()

	if got := rec.played(); len(got) != 1 || got[0] != EffectSuccess {
		t.Errorf("effects = %v", got)
	}
	if got := rec.said(); len(got) != 1 || got[0] != Rewards[1] {
		t.Errorf("spoken = %v, want %q", got, Rewards[1])
	}
}

func TestRecognitionStory(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"story":"بابا امروز یه بادبادک خرید."}`),
	})
	rec := &recorder{}
	n := newTestNarrator(rec, NewStoryteller(mock, time.Second, nil))

	it := baba
	it.Level = 4
	n.Present(context.Background(), it, activity.Choice{Type: activity.Recognition})
	n.Wait()

	if got := rec.said(); len(got) != 1 || got[0] != "بابا امروز یه بادبادک خرید." {
		t.Errorf("spoken = %v", got)
	}
	if mock.CallCount() != 1 || mock.Calls[0].Schema != StorySchema {
		t.Errorf("story request not sent with the story schema")
	}

	// Below level 4 the plain instruction is used.
	n.Present(context.Background(), baba, activity.Choice{Type: activity.Recognition})
	n.Wait()
	if mock.CallCount() != 1 {
		t.Error("story requested for a level 2 item")
	}
}

func TestStoryFallbacks(t *testing.T) {
	ctx := context.Background()

	var none *Storyteller
	if got := none.Story(ctx, baba); got != StoryFallback("بابا") {
		t.Errorf("nil storyteller = %q", got)
	}
	if got := NewStoryteller(nil, 0, nil).Story(ctx, baba); got != StoryFallback("بابا") {
		t.Errorf("no provider = %q", got)
	}

	failing := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
	if got := NewStoryteller(failing, time.Second, nil).Story(ctx, baba); got != LearnTogether("بابا") {
		t.Errorf("failed request = %q", got)
	}

	blank := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"story":"  "}`)})
	if got := NewStoryteller(blank, time.Second, nil).Story(ctx, baba); got != StoryFallback("بابا") {
		t.Errorf("blank story = %q", got)
	}
}

func TestCaptions(t *testing.T) {
	c := NewCaptions()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := c.Speak(ctx, "سلام"); !errors.Is(err, context.Canceled) {
		t.Errorf("Speak on cancelled ctx = %v", err)
	}
	c.Play(context.Background(), EffectSuccess)

	first := <-c.C()
	second := <-c.C()
	if first.Text != "سلام" || second.Effect != EffectSuccess {
		t.Errorf("captions = %+v, %+v", first, second)
	}
}

func TestLogSpeaker(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	sp := LogSpeaker{Log: log}

	if err := sp.Speak(context.Background(), "آفرین"); err != nil {
		t.Fatalf("Speak: %v", err)
	}
	sp.Play(context.Background(), EffectSuccess)

	entries := hook.AllEntries()
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].Data["text"] != "آفرین" || entries[1].Data["effect"] != EffectSuccess {
		t.Errorf("fields = %v, %v", entries[0].Data, entries[1].Data)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := sp.Speak(ctx, "late"); !errors.Is(err, context.Canceled) {
		t.Errorf("Speak on cancelled ctx = %v", err)
	}
	if len(hook.AllEntries()) != 2 {
		t.Error("cancelled speech was logged")
	}
}
