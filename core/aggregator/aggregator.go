package aggregator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"AuraFM/cache"
	"AuraFM/core/catalog"
	"AuraFM/logger"
	"AuraFM/model"
	"AuraFM/repository"
)

const (
	// Page size requested from the catalog for the home feed.
	newReleaseLimit = 8

	// Emulated round-trip latency when the catalog is unavailable, so the UI
	// sees consistent timing whether or not credentials are configured.
	defaultFallbackDelay = 300 * time.Millisecond
)

// Catalog is the slice of the catalog client the aggregator consumes.
// Absent results (ok == false) are treated exactly like empty results.
type Catalog interface {
	GetNewReleases(ctx context.Context, limit int) ([]catalog.SpotifyTrack, bool)
	Search(ctx context.Context, query string) ([]catalog.SpotifyTrack, bool)
}

// ValidationError reports a rejected track submission. It is the only error
// the aggregator surfaces to callers; upstream catalog failures degrade to
// local-only results instead.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Service merges record-store contents with catalog results. Ordering policy:
// locally added tracks always surface before catalog tracks, so new additions
// are immediately discoverable.
type Service struct {
	store         repository.Store
	catalog       Catalog
	cache         *cache.CatalogCache // nil disables caching
	fallbackDelay time.Duration
}

// NewService creates an aggregation service. cache may be nil.
func NewService(store repository.Store, cat Catalog, catalogCache *cache.CatalogCache) *Service {
	return &Service{
		store:         store,
		catalog:       cat,
		cache:         catalogCache,
		fallbackDelay: defaultFallbackDelay,
	}
}

// SetFallbackDelay overrides the emulated fallback latency. Used by tests.
func (s *Service) SetFallbackDelay(d time.Duration) {
	s.fallbackDelay = d
}

// ListTracks returns the home feed: all record-store tracks followed by a
// page of mapped catalog new releases. When the catalog yields nothing the
// store snapshot alone is returned after the fallback delay.
func (s *Service) ListTracks(ctx context.Context) ([]model.Track, error) {
	local := s.store.FindAllTracks()

	remote := s.cache.GetTracks(ctx, "new-releases", fmt.Sprintf("%d", newReleaseLimit))
	if remote == nil {
		if raw, ok := s.catalog.GetNewReleases(ctx, newReleaseLimit); ok && len(raw) > 0 {
			remote = catalog.MapTracks(raw)
			s.cache.SetTracks(ctx, "new-releases", fmt.Sprintf("%d", newReleaseLimit), remote)
		}
	}

	if len(remote) == 0 {
		logger.Debug("Catalog unavailable or empty, serving record store only",
			logger.Int("localTracks", len(local)))
		if err := s.simulateLatency(ctx); err != nil {
			return nil, err
		}
		return local, nil
	}

	return append(local, remote...), nil
}

// Search merges a local substring match with a catalog full-text search.
// A blank query is equivalent to ListTracks. Local matches come first; a
// failed catalog lookup leaves only the local matches, never an error.
func (s *Service) Search(ctx context.Context, query string) ([]model.Track, error) {
	if strings.TrimSpace(query) == "" {
		return s.ListTracks(ctx)
	}

	// Catalog search runs concurrently with the local scan. Completion order
	// doesn't matter: output ordering is fixed policy, not arrival order.
	remoteCh := make(chan []model.Track, 1)
	go func() {
		cacheArg := strings.ToLower(query)
		if cached := s.cache.GetTracks(ctx, "search", cacheArg); cached != nil {
			remoteCh <- cached
			return
		}
		raw, ok := s.catalog.Search(ctx, query)
		if !ok {
			remoteCh <- nil
			return
		}
		mapped := catalog.MapTracks(raw)
		s.cache.SetTracks(ctx, "search", cacheArg, mapped)
		remoteCh <- mapped
	}()

	lowerQuery := strings.ToLower(query)
	var local []model.Track
	for _, t := range s.store.FindAllTracks() {
		if strings.Contains(strings.ToLower(t.Title), lowerQuery) ||
			strings.Contains(strings.ToLower(t.Artist), lowerQuery) {
			local = append(local, t)
		}
	}

	remote := <-remoteCh
	return append(local, remote...), nil
}

// AddTrack validates and stores a locally added track. The returned track is
// fully populated; it becomes the first element of the next ListTracks.
func (s *Service) AddTrack(ctx context.Context, upload model.TrackUpload) (model.Track, error) {
	if strings.TrimSpace(upload.Title) == "" {
		return model.Track{}, &ValidationError{Message: "title is required"}
	}
	if strings.TrimSpace(upload.Artist) == "" {
		return model.Track{}, &ValidationError{Message: "artist is required"}
	}

	track := applyTrackDefaults(upload, time.Now())
	s.store.AddTrack(track)

	logger.Info("Track added",
		logger.String("id", track.ID),
		logger.String("title", track.Title),
		logger.String("artist", track.Artist))
	return track, nil
}

// applyTrackDefaults fills every optional field with a fixed default.
// Precedence is explicit: a non-empty upload field always wins over its
// default.
func applyTrackDefaults(upload model.TrackUpload, now time.Time) model.Track {
	ms := now.UnixMilli()

	track := model.Track{
		// "local-" namespace keeps timestamp ids disjoint from catalog ids.
		ID:           fmt.Sprintf("local-%d", ms),
		Title:        upload.Title,
		Artist:       upload.Artist,
		Album:        "Custom Upload",
		CoverURL:     fmt.Sprintf("https://picsum.photos/seed/%d/300/300", ms),
		Duration:     180,
		PrimaryColor: "#ea580c",
		MoodValence:  0.5,
		PreviewURL:   upload.PreviewURL,
	}

	if upload.Album != "" {
		track.Album = upload.Album
	}
	if upload.CoverURL != "" {
		track.CoverURL = upload.CoverURL
	}
	return track
}

func (s *Service) simulateLatency(ctx context.Context) error {
	if s.fallbackDelay <= 0 {
		return nil
	}
	timer := time.NewTimer(s.fallbackDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
