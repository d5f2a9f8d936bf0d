package model

// Track is the canonical track entity served to the client.
// Catalog tracks keep the id issued by the catalog; locally added tracks get
// a "local-" prefixed timestamp id so the two id spaces never collide.
type Track struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Artist        string  `json:"artist"` // multi-artist tracks are comma-joined
	Album         string  `json:"album"`
	CoverURL      string  `json:"coverUrl"`
	Duration      int     `json:"duration"` // seconds
	IsAIGenerated bool    `json:"isAiGenerated"`
	PrimaryColor  string  `json:"primaryColor"` // for dynamic theming
	MoodValence   float64 `json:"moodValence"`  // 0-1
	PreviewURL    string  `json:"previewUrl,omitempty"` // empty means no real audio, playback is simulated
}

// TrackUpload is the caller-supplied subset of Track fields for adding a
// track. Title and Artist are required; everything else is defaulted.
type TrackUpload struct {
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	Album      string `json:"album"`
	CoverURL   string `json:"coverUrl"`
	PreviewURL string `json:"previewUrl"`
}

// Playlist groups tracks for display. TrackCount is the advertised count and
// is not required to match len(Tracks).
type Playlist struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	CoverURL   string  `json:"coverUrl"`
	TrackCount int     `json:"trackCount"`
	Owner      string  `json:"owner"`
	Tracks     []Track `json:"tracks"`
}

// ArtistHours is one entry of the top-artists series.
type ArtistHours struct {
	Name  string  `json:"name"`
	Hours float64 `json:"hours"`
}

// MoodPoint is one entry of the mood-history series.
type MoodPoint struct {
	Date    string  `json:"date"`
	Valence float64 `json:"valence"` // 0-1
}

// GenreShare is one entry of the genre-distribution series.
// Value is a percentage share; the series should sum to 100.
type GenreShare struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// UserStats carries the three independent dashboard series.
type UserStats struct {
	TopArtists        []ArtistHours `json:"topArtists"`
	MoodHistory       []MoodPoint   `json:"moodHistory"`
	GenreDistribution []GenreShare  `json:"genreDistribution"`
}
