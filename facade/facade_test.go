package facade

import (
	"context"
	"testing"
	"time"

	"AuraFM/core/agent"
	"AuraFM/core/aggregator"
	"AuraFM/core/catalog"
	"AuraFM/model"
	"AuraFM/repository"
)

func newTestFacade() *Facade {
	store := repository.NewMemoryStore()
	agg := aggregator.NewService(store, catalog.NewClient("", ""), nil)
	agg.SetFallbackDelay(0)
	f := New(store, agg, agent.NewSupportAgent(&agent.SupportAgentConfig{}))
	f.Playlists.SetDelay(0)
	f.User.SetDelay(0)
	return f
}

func TestTrackGroupDelegatesToAggregator(t *testing.T) {
	f := newTestFacade()
	ctx := context.Background()

	tracks, err := f.Tracks.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(tracks) != 5 {
		t.Fatalf("expected 5 seeded tracks, got %d", len(tracks))
	}

	results, err := f.Tracks.Search(ctx, "queen")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Artist != "Queen" {
		t.Fatalf("unexpected search results: %+v", results)
	}

	added, err := f.Tracks.Add(ctx, model.TrackUpload{Title: "Demo", Artist: "Me"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if added.ID == "" || added.Title != "Demo" {
		t.Fatalf("unexpected added track: %+v", added)
	}
}

func TestPlaylistListing(t *testing.T) {
	f := newTestFacade()

	playlists, err := f.Playlists.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(playlists) != 2 {
		t.Fatalf("expected 2 playlists, got %d", len(playlists))
	}
}

func TestPlaylistListingHonorsContext(t *testing.T) {
	f := newTestFacade()
	f.Playlists.SetDelay(5 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := f.Playlists.List(ctx); err == nil {
		t.Fatal("expected context error")
	}
}

func TestUserStats(t *testing.T) {
	f := newTestFacade()

	stats, err := f.User.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if len(stats.TopArtists) == 0 || len(stats.MoodHistory) == 0 || len(stats.GenreDistribution) == 0 {
		t.Fatalf("stats series missing: %+v", stats)
	}
}

func TestChatSessionContinuity(t *testing.T) {
	f := newTestFacade()
	ctx := context.Background()

	first := f.AI.Chat(ctx, model.ChatRequest{Message: "hello"})
	if first.SessionID == "" {
		t.Fatal("expected a generated session id")
	}
	if first.UserMessage.Sender != model.SenderUser || first.UserMessage.Text != "hello" {
		t.Fatalf("unexpected user message: %+v", first.UserMessage)
	}
	if first.AgentMessage.Sender != model.SenderAgent {
		t.Fatalf("unexpected agent message: %+v", first.AgentMessage)
	}
	// No API key configured, so the agent degrades to its offline notice.
	if first.AgentMessage.Text != agent.OfflineMessage {
		t.Fatalf("expected offline message, got %q", first.AgentMessage.Text)
	}

	second := f.AI.Chat(ctx, model.ChatRequest{SessionID: first.SessionID, Message: "are you there?"})
	if second.SessionID != first.SessionID {
		t.Fatalf("session id changed: %q vs %q", second.SessionID, first.SessionID)
	}

	history := f.AI.History(first.SessionID)
	if len(history) != 4 {
		t.Fatalf("expected 4 messages in history, got %d", len(history))
	}
	if history[0].Text != "hello" || history[2].Text != "are you there?" {
		t.Fatalf("history out of order: %+v", history)
	}
}

func TestChatSessionsAreIsolated(t *testing.T) {
	f := newTestFacade()
	ctx := context.Background()

	a := f.AI.Chat(ctx, model.ChatRequest{Message: "first"})
	b := f.AI.Chat(ctx, model.ChatRequest{Message: "second"})

	if a.SessionID == b.SessionID {
		t.Fatal("expected distinct sessions")
	}
	if len(f.AI.History(a.SessionID)) != 2 || len(f.AI.History(b.SessionID)) != 2 {
		t.Fatal("sessions leaked into each other")
	}
}
