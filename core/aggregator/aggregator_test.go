package aggregator

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"AuraFM/core/catalog"
	"AuraFM/model"
	"AuraFM/repository"
)

// fakeCatalog is a Catalog stub with scriptable availability.
type fakeCatalog struct {
	releases      []catalog.SpotifyTrack
	searchResults []catalog.SpotifyTrack
	available     bool
}

func (f *fakeCatalog) GetNewReleases(ctx context.Context, limit int) ([]catalog.SpotifyTrack, bool) {
	if !f.available {
		return nil, false
	}
	if len(f.releases) > limit {
		return f.releases[:limit], true
	}
	return f.releases, true
}

func (f *fakeCatalog) Search(ctx context.Context, query string) ([]catalog.SpotifyTrack, bool) {
	if !f.available {
		return nil, false
	}
	return f.searchResults, true
}

func newTestService(store repository.Store, cat Catalog) *Service {
	s := NewService(store, cat, nil)
	s.SetFallbackDelay(0)
	return s
}

// seedStore adds tracks so they list in the given order.
func seedStore(store repository.Store, tracks ...model.Track) {
	for i := len(tracks) - 1; i >= 0; i-- {
		store.AddTrack(tracks[i])
	}
}

func trackIDs(tracks []model.Track) []string {
	ids := make([]string, len(tracks))
	for i, t := range tracks {
		ids[i] = t.ID
	}
	return ids
}

func TestListTracksMergesLocalFirst(t *testing.T) {
	store := repository.NewEmptyMemoryStore()
	seedStore(store,
		model.Track{ID: "A", Title: "Alpha"},
		model.Track{ID: "B", Title: "Beta"},
		model.Track{ID: "C", Title: "Gamma"},
	)
	cat := &fakeCatalog{
		available: true,
		releases: []catalog.SpotifyTrack{
			{ID: "X", Name: "Xenon"},
			{ID: "Y", Name: "Yttrium"},
		},
	}

	tracks, err := newTestService(store, cat).ListTracks(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := trackIDs(tracks)
	want := []string{"A", "B", "C", "X", "Y"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestListTracksCatalogAbsent(t *testing.T) {
	store := repository.NewEmptyMemoryStore()
	seedStore(store,
		model.Track{ID: "A"},
		model.Track{ID: "B"},
		model.Track{ID: "C"},
	)

	tracks, err := newTestService(store, &fakeCatalog{available: false}).ListTracks(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := trackIDs(tracks)
	if len(got) != 3 || got[0] != "A" || got[1] != "B" || got[2] != "C" {
		t.Errorf("expected store snapshot [A B C], got %v", got)
	}
}

func TestListTracksFallbackLatency(t *testing.T) {
	store := repository.NewEmptyMemoryStore()
	svc := NewService(store, &fakeCatalog{available: false}, nil)
	svc.SetFallbackDelay(30 * time.Millisecond)

	start := time.Now()
	if _, err := svc.ListTracks(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Errorf("expected emulated latency of at least 30ms, took %v", elapsed)
	}
}

func TestSearchBlankDelegatesToList(t *testing.T) {
	store := repository.NewEmptyMemoryStore()
	seedStore(store, model.Track{ID: "A"}, model.Track{ID: "B"})
	cat := &fakeCatalog{available: true, releases: []catalog.SpotifyTrack{{ID: "X"}}}
	svc := newTestService(store, cat)

	for _, query := range []string{"", "   ", "\t\n"} {
		listed, _ := svc.ListTracks(context.Background())
		searched, err := svc.Search(context.Background(), query)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(searched) != len(listed) {
			t.Fatalf("blank query %q: expected %d tracks, got %d", query, len(listed), len(searched))
		}
		for i := range listed {
			if searched[i].ID != listed[i].ID {
				t.Errorf("blank query %q: position %d differs (%q vs %q)", query, i, searched[i].ID, listed[i].ID)
			}
		}
	}
}

func TestSearchLocalCaseInsensitive(t *testing.T) {
	store := repository.NewEmptyMemoryStore()
	seedStore(store,
		model.Track{ID: "bl", Title: "Blinding Lights", Artist: "The Weeknd"},
		model.Track{ID: "nc", Title: "Nightcall", Artist: "Kavinsky"},
	)

	tracks, err := newTestService(store, &fakeCatalog{available: false}).Search(context.Background(), "weeknd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(tracks) != 1 || tracks[0].ID != "bl" {
		t.Fatalf("expected exactly the local Weeknd track, got %v", trackIDs(tracks))
	}
}

func TestSearchMatchesTitleOrArtist(t *testing.T) {
	store := repository.NewEmptyMemoryStore()
	seedStore(store,
		model.Track{ID: "t1", Title: "Midnight City", Artist: "M83"},
		model.Track{ID: "t2", Title: "Digital Silence", Artist: "AI Composite v4"},
	)
	svc := newTestService(store, &fakeCatalog{available: false})

	byTitle, _ := svc.Search(context.Background(), "MIDNIGHT")
	if len(byTitle) != 1 || byTitle[0].ID != "t1" {
		t.Errorf("title match failed: %v", trackIDs(byTitle))
	}

	byArtist, _ := svc.Search(context.Background(), "composite")
	if len(byArtist) != 1 || byArtist[0].ID != "t2" {
		t.Errorf("artist match failed: %v", trackIDs(byArtist))
	}
}

func TestSearchLocalsPrecedeCatalogMatches(t *testing.T) {
	store := repository.NewEmptyMemoryStore()
	seedStore(store, model.Track{ID: "local1", Title: "Echoes", Artist: "Someone"})
	cat := &fakeCatalog{
		available:     true,
		searchResults: []catalog.SpotifyTrack{{ID: "remote1", Name: "Echoes of the Past"}},
	}

	tracks, err := newTestService(store, cat).Search(context.Background(), "echoes")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := trackIDs(tracks)
	if len(got) != 2 || got[0] != "local1" || got[1] != "remote1" {
		t.Errorf("expected [local1 remote1], got %v", got)
	}
}

func TestAddTrack(t *testing.T) {
	t.Run("Populates Defaults And Prepends", func(t *testing.T) {
		store := repository.NewEmptyMemoryStore()
		seedStore(store, model.Track{ID: "existing"})
		svc := newTestService(store, &fakeCatalog{available: false})

		track, err := svc.AddTrack(context.Background(), model.TrackUpload{
			Title:  "My Song",
			Artist: "Me",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.HasPrefix(track.ID, "local-") {
			t.Errorf("expected namespaced local id, got %q", track.ID)
		}
		if track.Album != "Custom Upload" {
			t.Errorf("expected default album, got %q", track.Album)
		}
		if track.Duration != 180 {
			t.Errorf("expected default duration 180, got %d", track.Duration)
		}
		if track.PrimaryColor != "#ea580c" {
			t.Errorf("expected default color, got %q", track.PrimaryColor)
		}
		if track.MoodValence != 0.5 {
			t.Errorf("expected default valence 0.5, got %v", track.MoodValence)
		}
		if track.CoverURL == "" {
			t.Error("expected a generated cover URL")
		}

		listed, _ := svc.ListTracks(context.Background())
		if len(listed) == 0 || listed[0].ID != track.ID {
			t.Errorf("expected new track first in next listing, got %v", trackIDs(listed))
		}
	})

	t.Run("Explicit Fields Win Over Defaults", func(t *testing.T) {
		store := repository.NewEmptyMemoryStore()
		svc := newTestService(store, &fakeCatalog{available: false})

		track, err := svc.AddTrack(context.Background(), model.TrackUpload{
			Title:      "My Song",
			Artist:     "Me",
			Album:      "My Album",
			CoverURL:   "https://example.com/cover.jpg",
			PreviewURL: "https://example.com/audio.mp3",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if track.Album != "My Album" {
			t.Errorf("explicit album lost: %q", track.Album)
		}
		if track.CoverURL != "https://example.com/cover.jpg" {
			t.Errorf("explicit cover lost: %q", track.CoverURL)
		}
		if track.PreviewURL != "https://example.com/audio.mp3" {
			t.Errorf("explicit preview lost: %q", track.PreviewURL)
		}
	})

	t.Run("Rejects Blank Required Fields", func(t *testing.T) {
		cases := []struct {
			name   string
			upload model.TrackUpload
		}{
			{"Missing Title", model.TrackUpload{Artist: "Me"}},
			{"Blank Title", model.TrackUpload{Title: "   ", Artist: "Me"}},
			{"Missing Artist", model.TrackUpload{Title: "Song"}},
			{"Blank Artist", model.TrackUpload{Title: "Song", Artist: "\t"}},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				store := repository.NewEmptyMemoryStore()
				svc := newTestService(store, &fakeCatalog{available: false})

				_, err := svc.AddTrack(context.Background(), tc.upload)

				var vErr *ValidationError
				if !errors.As(err, &vErr) {
					t.Fatalf("expected ValidationError, got %v", err)
				}
				if len(store.FindAllTracks()) != 0 {
					t.Error("rejected submission must not mutate the store")
				}
			})
		}
	})
}
