package store

import (
	"context"
	"testing"
)

func TestProgressHistory(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i, correct := range []bool{true, false, true} {
		err := repo.AppendProgress(ctx, ProgressEventData{
			ItemID:    "p01",
			Category:  "ALPHABET",
			Activity:  "RECALL",
			SessionID: "s1",
			Correct:   correct,
			FromLevel: 2,
			ToLevel:   2 + i%2,
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}
	if err := repo.AppendProgress(ctx, ProgressEventData{ItemID: "p02", Category: "ALPHABET", Activity: "INTRO", Correct: true, FromLevel: 1, ToLevel: 2}); err != nil {
		t.Fatalf("append other: %v", err)
	}

	history, err := repo.ProgressHistory(ctx, "p01", QueryOpts{})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("history = %d events, want 3", len(history))
	}
	// Newest first.
	for i := 1; i < len(history); i++ {
		if history[i].Sequence >= history[i-1].Sequence {
			t.Errorf("history not newest first at %d", i)
		}
	}
	if history[1].Correct {
		t.Error("middle event should be incorrect")
	}
	if history[0].EventID == "" || history[0].EventID == history[1].EventID {
		t.Errorf("event ids not unique: %q %q", history[0].EventID, history[1].EventID)
	}

	all, _ := repo.ProgressHistory(ctx, "", QueryOpts{Limit: 2})
	if len(all) != 2 {
		t.Errorf("limited history = %d, want 2", len(all))
	}
	if all[0].ItemID != "p02" || all[0].SessionID != "" {
		t.Errorf("newest = %+v, want p02 without session", all[0])
	}
}

func TestRecentSessionsOnlyEnds(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []SessionEventData{
		{SessionID: "a", Action: SessionStart, Category: "ALPHABET", ItemsPlanned: 3},
		{SessionID: "a", Action: SessionEnd, Category: "ALPHABET", ItemsPlanned: 3, ItemsCompleted: 3, Flawless: 2, BestStreak: 4},
		{SessionID: "b", Action: SessionStart, Category: "NUMBER", Review: true},
	}
	for _, e := range events {
		if err := repo.AppendSessionEvent(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	sessions, err := repo.RecentSessions(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("sessions = %d, want 1", len(sessions))
	}
	got := sessions[0]
	if got.SessionID != "a" || got.Flawless != 2 || got.BestStreak != 4 {
		t.Errorf("session = %+v", got)
	}
}

func TestSequenceSharedAcrossTables(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendProgress(ctx, ProgressEventData{ItemID: "p01", Category: "ALPHABET", Activity: "INTRO"}); err != nil {
		t.Fatal(err)
	}
	if err := repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "a", Action: SessionEnd, Category: "ALPHABET"}); err != nil {
		t.Fatal(err)
	}

	progress, _ := repo.ProgressHistory(ctx, "", QueryOpts{})
	sessions, _ := repo.RecentSessions(ctx, QueryOpts{})
	if progress[0].Sequence >= sessions[0].Sequence {
		t.Errorf("progress seq %d should precede session seq %d", progress[0].Sequence, sessions[0].Sequence)
	}

	after, _ := repo.ProgressHistory(ctx, "", QueryOpts{After: progress[0].Sequence})
	if len(after) != 0 {
		t.Errorf("events after last progress = %d, want 0", len(after))
	}
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	calls := []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-2.0-flash", Purpose: "story", InputTokens: 100, OutputTokens: 40, LatencyMs: 300, Success: true, RequestBody: "{}", ResponseBody: `{"story":"x"}`},
		{Provider: "gemini", Model: "gemini-2.0-flash", Purpose: "story", InputTokens: 120, OutputTokens: 60, LatencyMs: 500, Success: true},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "story", LatencyMs: 100, ErrorMessage: "rate limited"},
	}
	for _, c := range calls {
		if err := repo.AppendLLMRequest(ctx, c); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("events = %d, want 3", len(events))
	}
	if events[0].Provider != "openai" || events[0].Success {
		t.Errorf("newest = %+v", events[0])
	}

	oldest := events[2]
	got, err := repo.GetLLMEvent(ctx, oldest.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.ResponseBody != `{"story":"x"}` {
		t.Errorf("get = %+v", got)
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil || missing != nil {
		t.Errorf("missing = %v, %v; want nil, nil", missing, err)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("by model: %v", err)
	}
	if len(byModel) != 2 {
		t.Fatalf("models = %d, want 2", len(byModel))
	}
	gem := byModel[0]
	if gem.Model != "gemini-2.0-flash" || gem.Calls != 2 || gem.InputTokens != 220 || gem.OutputTokens != 100 || gem.AvgLatencyMs != 400 {
		t.Errorf("gemini usage = %+v", gem)
	}

	byPurpose, _ := repo.LLMUsageByPurpose(ctx)
	if len(byPurpose) != 1 || byPurpose[0].Purpose != "story" || byPurpose[0].Calls != 3 {
		t.Errorf("by purpose = %+v", byPurpose)
	}
}
