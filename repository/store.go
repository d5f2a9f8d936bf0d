package repository

import (
	"sync"

	"AuraFM/model"
)

// Store defines the record store: the process-local collection of tracks,
// playlists and listening stats standing in for a persistent database.
// All read methods return independent snapshots, never live references to
// the backing slices.
type Store interface {
	FindAllTracks() []model.Track
	FindTrackByID(id string) (model.Track, bool)
	// AddTrack prepends the track so it is the first result of the next
	// FindAllTracks call.
	AddTrack(track model.Track) model.Track
	FindAllPlaylists() []model.Playlist
	GetStats() model.UserStats
}

// memoryStore implements Store with in-memory slices. State lives for the
// process lifetime and resets on restart.
type memoryStore struct {
	mu        sync.RWMutex
	tracks    []model.Track
	playlists []model.Playlist
	stats     model.UserStats
}

// NewMemoryStore creates a store pre-populated with the demo library.
func NewMemoryStore() Store {
	s := &memoryStore{}
	s.seed()
	return s
}

// NewEmptyMemoryStore creates a store with no seed data. Intended for tests.
func NewEmptyMemoryStore() Store {
	return &memoryStore{}
}

func (s *memoryStore) FindAllTracks() []model.Track {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tracks := make([]model.Track, len(s.tracks))
	copy(tracks, s.tracks)
	return tracks
}

func (s *memoryStore) FindTrackByID(id string) (model.Track, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.tracks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Track{}, false
}

func (s *memoryStore) AddTrack(track model.Track) model.Track {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Prepend so the newest addition surfaces first in listings.
	s.tracks = append([]model.Track{track}, s.tracks...)
	return track
}

func (s *memoryStore) FindAllPlaylists() []model.Playlist {
	s.mu.RLock()
	defer s.mu.RUnlock()

	playlists := make([]model.Playlist, len(s.playlists))
	copy(playlists, s.playlists)
	for i := range playlists {
		tracks := make([]model.Track, len(playlists[i].Tracks))
		copy(tracks, playlists[i].Tracks)
		playlists[i].Tracks = tracks
	}
	return playlists
}

func (s *memoryStore) GetStats() model.UserStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := model.UserStats{
		TopArtists:        make([]model.ArtistHours, len(s.stats.TopArtists)),
		MoodHistory:       make([]model.MoodPoint, len(s.stats.MoodHistory)),
		GenreDistribution: make([]model.GenreShare, len(s.stats.GenreDistribution)),
	}
	copy(stats.TopArtists, s.stats.TopArtists)
	copy(stats.MoodHistory, s.stats.MoodHistory)
	copy(stats.GenreDistribution, s.stats.GenreDistribution)
	return stats
}
