package repository

import "AuraFM/model"

// seed loads the demo library: five tracks, two featured playlists and a
// fixed stats dashboard. Runs under no lock; callers seed before sharing
// the store.
func (s *memoryStore) seed() {
	s.tracks = []model.Track{
		{
			ID:           "1",
			Title:        "Midnight City",
			Artist:       "M83",
			Album:        "Hurry Up, We're Dreaming",
			CoverURL:     "https://picsum.photos/id/10/300/300",
			Duration:     243,
			PrimaryColor: "#c2410c",
			MoodValence:  0.8,
		},
		{
			ID:            "2",
			Title:         "Digital Silence",
			Artist:        "AI Composite v4",
			Album:         "Generated Dreams",
			CoverURL:      "https://picsum.photos/id/20/300/300",
			Duration:      180,
			PrimaryColor:  "#9f1239",
			MoodValence:   0.4,
			IsAIGenerated: true,
		},
		{
			ID:           "3",
			Title:        "Bohemian Rhapsody",
			Artist:       "Queen",
			Album:        "A Night at the Opera",
			CoverURL:     "https://picsum.photos/id/30/300/300",
			Duration:     354,
			PrimaryColor: "#78350f",
			MoodValence:  0.6,
		},
		{
			ID:           "4",
			Title:        "Blinding Lights",
			Artist:       "The Weeknd",
			Album:        "After Hours",
			CoverURL:     "https://picsum.photos/id/40/300/300",
			Duration:     200,
			PrimaryColor: "#991b1b",
			MoodValence:  0.9,
		},
		{
			ID:           "5",
			Title:        "Nightcall",
			Artist:       "Kavinsky",
			Album:        "OutRun",
			CoverURL:     "https://picsum.photos/id/50/300/300",
			Duration:     258,
			PrimaryColor: "#ea580c",
			MoodValence:  0.5,
		},
	}

	s.playlists = []model.Playlist{
		{
			ID:         "p1",
			Name:       "Discover Weekly",
			CoverURL:   "https://picsum.photos/id/60/300/300",
			TrackCount: 30,
			Owner:      "Spotify",
			Tracks:     []model.Track{s.tracks[0], s.tracks[1], s.tracks[4]},
		},
		{
			ID:         "p2",
			Name:       "Synthwave Essentials",
			CoverURL:   "https://picsum.photos/id/70/300/300",
			TrackCount: 50,
			Owner:      "RetroLover",
			Tracks:     []model.Track{s.tracks[0], s.tracks[3], s.tracks[4]},
		},
	}

	s.stats = model.UserStats{
		TopArtists: []model.ArtistHours{
			{Name: "M83", Hours: 120},
			{Name: "The Weeknd", Hours: 95},
			{Name: "Queen", Hours: 80},
			{Name: "Daft Punk", Hours: 60},
			{Name: "Kavinsky", Hours: 55},
		},
		MoodHistory: []model.MoodPoint{
			{Date: "Mon", Valence: 0.4},
			{Date: "Tue", Valence: 0.6},
			{Date: "Wed", Valence: 0.3},
			{Date: "Thu", Valence: 0.8},
			{Date: "Fri", Valence: 0.9},
			{Date: "Sat", Valence: 0.85},
			{Date: "Sun", Valence: 0.7},
		},
		GenreDistribution: []model.GenreShare{
			{Name: "Pop", Value: 35},
			{Name: "Synthwave", Value: 35},
			{Name: "Rock", Value: 20},
			{Name: "Jazz", Value: 10},
		},
	}
}
