package catalog

import (
	"fmt"
	"math"
	"strings"

	"AuraFM/model"
)

// PlaceholderCoverURL is used when a catalog track carries no album art.
const PlaceholderCoverURL = "https://via.placeholder.com/300"

// stringHash folds a string into a 32-bit value. The exact constants don't
// matter; what matters is that it is stable, so a given album id always
// derives the same display color.
func stringHash(s string) int32 {
	var hash int32
	for _, r := range s {
		hash = int32(r) + ((hash << 5) - hash)
	}
	return hash
}

func hashAbs(s string) int64 {
	return int64(math.Abs(float64(stringHash(s))))
}

// WarmColor derives a deterministic HSL color from a seed string, constrained
// to the warm orange/red/amber band of the theme: hue 0-59, saturation
// 80-99%, lightness 40-59%.
func WarmColor(seed string) string {
	abs := hashAbs(seed)
	h := abs % 60
	s := 80 + abs%20
	l := 40 + abs%20
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", h, s, l)
}

// placeholderValence synthesizes a mood valence in [0.5, 1.0) from the track
// id. The catalog exposes no real mood signal (that would need the audio
// analysis endpoint), so this value is NOT authoritative: it exists only so
// the mood UI has something stable to render.
func placeholderValence(seed string) float64 {
	return 0.5 + float64(hashAbs(seed)%50)/100
}

// MapTrack translates a raw catalog track into the canonical Track shape.
// The input is assumed well-formed; a missing images array falls back to the
// placeholder cover rather than erroring.
func MapTrack(st SpotifyTrack) model.Track {
	names := make([]string, len(st.Artists))
	for i, a := range st.Artists {
		names[i] = a.Name
	}

	coverURL := PlaceholderCoverURL
	if len(st.Album.Images) > 0 {
		coverURL = st.Album.Images[0].URL
	}

	return model.Track{
		ID:            st.ID,
		Title:         st.Name,
		Artist:        strings.Join(names, ", "),
		Album:         st.Album.Name,
		CoverURL:      coverURL,
		Duration:      st.DurationMS / 1000,
		IsAIGenerated: false, // the catalog has no such flag
		PrimaryColor:  WarmColor(st.Album.ID),
		MoodValence:   placeholderValence(st.ID),
		PreviewURL:    st.PreviewURL,
	}
}

// MapTracks maps a batch of catalog tracks.
func MapTracks(sts []SpotifyTrack) []model.Track {
	tracks := make([]model.Track, len(sts))
	for i, st := range sts {
		tracks[i] = MapTrack(st)
	}
	return tracks
}
