package facade

import (
	"context"
	"time"

	"AuraFM/core/agent"
	"AuraFM/core/aggregator"
	"AuraFM/model"
	"AuraFM/repository"
)

const (
	defaultPlaylistDelay = 400 * time.Millisecond
	defaultStatsDelay    = 600 * time.Millisecond
)

// Facade is the single boundary the transport layer talks to. Each
// capability group owns one slice of the backend.
type Facade struct {
	Tracks    *TrackService
	Playlists *PlaylistService
	User      *UserService
	AI        *ChatService
}

func New(store repository.Store, agg *aggregator.Service, supportAgent *agent.SupportAgent) *Facade {
	return &Facade{
		Tracks:    &TrackService{agg: agg},
		Playlists: &PlaylistService{store: store, delay: defaultPlaylistDelay},
		User:      &UserService{store: store, delay: defaultStatsDelay},
		AI:        NewChatService(supportAgent),
	}
}

// TrackService exposes track listing, search and uploads.
type TrackService struct {
	agg *aggregator.Service
}

func (s *TrackService) List(ctx context.Context) ([]model.Track, error) {
	return s.agg.ListTracks(ctx)
}

func (s *TrackService) Search(ctx context.Context, query string) ([]model.Track, error) {
	return s.agg.Search(ctx, query)
}

func (s *TrackService) Add(ctx context.Context, upload model.TrackUpload) (model.Track, error) {
	return s.agg.AddTrack(ctx, upload)
}

// PlaylistService lists curated playlists with simulated fetch latency.
type PlaylistService struct {
	store repository.Store
	delay time.Duration
}

// SetDelay overrides the simulated latency. Tests set it to zero.
func (s *PlaylistService) SetDelay(d time.Duration) {
	s.delay = d
}

func (s *PlaylistService) List(ctx context.Context) ([]model.Playlist, error) {
	if err := sleep(ctx, s.delay); err != nil {
		return nil, err
	}
	return s.store.FindAllPlaylists(), nil
}

// UserService returns listening statistics with simulated fetch latency.
type UserService struct {
	store repository.Store
	delay time.Duration
}

func (s *UserService) SetDelay(d time.Duration) {
	s.delay = d
}

func (s *UserService) Stats(ctx context.Context) (model.UserStats, error) {
	if err := sleep(ctx, s.delay); err != nil {
		return model.UserStats{}, err
	}
	return s.store.GetStats(), nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
