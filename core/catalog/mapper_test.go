package catalog

import (
	"fmt"
	"testing"
)

func sampleTrack() SpotifyTrack {
	return SpotifyTrack{
		ID:   "5ChkMS8OtdzJeqyybCc9R5",
		Name: "Billie Jean",
		Artists: []SpotifyArtist{
			{ID: "a1", Name: "Michael Jackson"},
		},
		Album: SpotifyAlbum{
			ID:   "1C2h7mLntPSeVYciMRTF4a",
			Name: "Thriller",
			Images: []SpotifyImage{
				{URL: "https://images.example/thriller.jpg", Height: 640, Width: 640},
			},
		},
		DurationMS: 293827,
		PreviewURL: "https://audio.example/preview.mp3",
	}
}

func TestMapTrack(t *testing.T) {
	t.Run("Field Mapping", func(t *testing.T) {
		track := MapTrack(sampleTrack())

		if track.ID != "5ChkMS8OtdzJeqyybCc9R5" {
			t.Errorf("unexpected id %q", track.ID)
		}
		if track.Title != "Billie Jean" {
			t.Errorf("unexpected title %q", track.Title)
		}
		if track.Album != "Thriller" {
			t.Errorf("unexpected album %q", track.Album)
		}
		if track.CoverURL != "https://images.example/thriller.jpg" {
			t.Errorf("unexpected cover %q", track.CoverURL)
		}
		if track.PreviewURL != "https://audio.example/preview.mp3" {
			t.Errorf("unexpected preview %q", track.PreviewURL)
		}
		if track.IsAIGenerated {
			t.Error("catalog tracks must never be flagged AI generated")
		}
	})

	t.Run("Duration Floors Milliseconds", func(t *testing.T) {
		st := sampleTrack()
		st.DurationMS = 293999
		if got := MapTrack(st).Duration; got != 293 {
			t.Errorf("expected 293s, got %d", got)
		}

		st.DurationMS = 0
		if got := MapTrack(st).Duration; got != 0 {
			t.Errorf("expected 0s, got %d", got)
		}
	})

	t.Run("Multi Artist Join", func(t *testing.T) {
		st := sampleTrack()
		st.Artists = []SpotifyArtist{
			{Name: "Daft Punk"},
			{Name: "Pharrell Williams"},
			{Name: "Nile Rodgers"},
		}
		got := MapTrack(st).Artist
		want := "Daft Punk, Pharrell Williams, Nile Rodgers"
		if got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	})

	t.Run("Cover Fallback", func(t *testing.T) {
		st := sampleTrack()
		st.Album.Images = nil
		if got := MapTrack(st).CoverURL; got != PlaceholderCoverURL {
			t.Errorf("expected placeholder cover, got %q", got)
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		first := MapTrack(sampleTrack())
		second := MapTrack(sampleTrack())

		if first.PrimaryColor != second.PrimaryColor {
			t.Errorf("primaryColor not deterministic: %q vs %q", first.PrimaryColor, second.PrimaryColor)
		}
		if first.Duration != second.Duration {
			t.Errorf("duration not deterministic: %d vs %d", first.Duration, second.Duration)
		}
		if first.MoodValence != second.MoodValence {
			t.Errorf("moodValence not deterministic: %v vs %v", first.MoodValence, second.MoodValence)
		}
	})

	t.Run("Valence In Placeholder Range", func(t *testing.T) {
		for i := 0; i < 50; i++ {
			st := sampleTrack()
			st.ID = fmt.Sprintf("track-%d", i)
			v := MapTrack(st).MoodValence
			if v < 0.5 || v >= 1.0 {
				t.Errorf("valence %v for seed %q outside [0.5, 1.0)", v, st.ID)
			}
		}
	})
}

func TestWarmColor(t *testing.T) {
	seeds := []string{
		"", "a", "1C2h7mLntPSeVYciMRTF4a", "0sNOF9WDwhWunNAHPD3Baj",
		"album", "アルバム", "some-very-long-album-identifier-string-0123456789",
	}

	for _, seed := range seeds {
		t.Run(fmt.Sprintf("Seed %q", seed), func(t *testing.T) {
			color := WarmColor(seed)

			if color != WarmColor(seed) {
				t.Fatalf("color for %q not stable", seed)
			}

			var h, s, l int
			if _, err := fmt.Sscanf(color, "hsl(%d, %d%%, %d%%)", &h, &s, &l); err != nil {
				t.Fatalf("cannot parse color %q: %v", color, err)
			}
			if h < 0 || h >= 60 {
				t.Errorf("hue %d outside warm band [0,60)", h)
			}
			if s < 80 || s > 99 {
				t.Errorf("saturation %d outside [80,99]", s)
			}
			if l < 40 || l > 59 {
				t.Errorf("lightness %d outside [40,59]", l)
			}
		})
	}
}
