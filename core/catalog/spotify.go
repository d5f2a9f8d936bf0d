package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"AuraFM/logger"

	"github.com/avast/retry-go"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

const (
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"

	// Spotify allows well over this, but the feed never needs more.
	searchLimit = 10

	// One in-flight album-track lookup per permit.
	albumLookupConcurrency = 4

	requestTimeout = 10 * time.Second
)

// Client queries the Spotify catalog using the client-credentials flow.
// The zero-credential client is valid: every call reports the result as
// absent without touching the network, so the app degrades to local-only.
//
// Failure semantics: any auth, network or parse failure yields absent
// (ok == false). Errors never escape this boundary.
type Client struct {
	authConfig *clientcredentials.Config // nil when credentials are not configured
	baseURL    string
	limiter    *rate.Limiter

	mu         sync.Mutex
	httpClient *http.Client // token-refreshing client, built on first use
}

// NewClient creates a catalog client. Empty credentials disable the catalog.
func NewClient(clientID, clientSecret string) *Client {
	c := &Client{
		baseURL: spotifyBaseURL,
		limiter: rate.NewLimiter(rate.Every(250*time.Millisecond), 8),
	}
	if clientID != "" && clientSecret != "" {
		c.authConfig = &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     spotifyTokenURL,
		}
	}
	return c
}

// SetBaseURL overrides the API base URL. Used by tests.
func (c *Client) SetBaseURL(base string) {
	c.baseURL = base
}

// SetTokenURL overrides the token endpoint. Used by tests.
func (c *Client) SetTokenURL(tokenURL string) {
	if c.authConfig != nil {
		c.authConfig.TokenURL = tokenURL
	}
}

// Configured reports whether catalog credentials are present.
func (c *Client) Configured() bool {
	return c.authConfig != nil
}

// authenticate returns an HTTP client carrying a bearer token, or nil when
// credentials are missing. The oauth2 token source caches the token and
// re-authenticates only after expiry.
func (c *Client) authenticate(ctx context.Context) *http.Client {
	if c.authConfig == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.httpClient == nil {
		client := c.authConfig.Client(context.Background())
		client.Timeout = requestTimeout
		c.httpClient = client
	}
	return c.httpClient
}

// getJSON performs a rate-limited GET with one bounded retry on transient
// failures and decodes the JSON response into result.
func (c *Client) getJSON(ctx context.Context, httpClient *http.Client, endpoint string, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait failed: %w", err)
	}

	return retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}

			resp, err := httpClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
				return fmt.Errorf("spotify API transient error: status %d", resp.StatusCode)
			}
			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				return retry.Unrecoverable(fmt.Errorf("spotify API error: status %d", resp.StatusCode))
			}

			if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
				return retry.Unrecoverable(fmt.Errorf("failed to decode response: %w", err))
			}
			return nil
		},
		retry.Attempts(2),
		retry.Delay(500*time.Millisecond),
		retry.LastErrorOnly(true),
	)
}

// GetNewReleases fetches a page of newly released albums and resolves one
// playable track per album. The new-releases endpoint only returns albums,
// so each album needs a follow-up track lookup; those run concurrently and
// a failed album is dropped rather than failing the batch.
func (c *Client) GetNewReleases(ctx context.Context, limit int) ([]SpotifyTrack, bool) {
	httpClient := c.authenticate(ctx)
	if httpClient == nil {
		return nil, false
	}

	var releases newReleasesResponse
	endpoint := fmt.Sprintf("/browse/new-releases?limit=%d", limit)
	if err := c.getJSON(ctx, httpClient, endpoint, &releases); err != nil {
		logger.Warn("Spotify new releases fetch failed", logger.ErrorField(err))
		return nil, false
	}

	albums := releases.Albums.Items
	results := make([]*SpotifyTrack, len(albums))

	sem := semaphore.NewWeighted(albumLookupConcurrency)
	var wg sync.WaitGroup
	for i, album := range albums {
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		wg.Add(1)
		go func(i int, album SpotifyAlbum) {
			defer sem.Release(1)
			defer wg.Done()

			var albumTracks albumTracksResponse
			endpoint := fmt.Sprintf("/albums/%s/tracks?limit=1", album.ID)
			if err := c.getJSON(ctx, httpClient, endpoint, &albumTracks); err != nil {
				logger.Debug("Album track lookup failed, dropping album",
					logger.String("albumID", album.ID),
					logger.ErrorField(err))
				return
			}
			if len(albumTracks.Items) == 0 {
				return
			}

			track := albumTracks.Items[0]
			// The simplified album-track object carries no album metadata or
			// cover images; enrich it from the release listing.
			track.Album = album
			results[i] = &track
		}(i, album)
	}
	wg.Wait()

	tracks := make([]SpotifyTrack, 0, len(albums))
	for _, t := range results {
		if t != nil {
			tracks = append(tracks, *t)
		}
	}

	logger.Debug("Spotify new releases fetched",
		logger.Int("albums", len(albums)),
		logger.Int("tracks", len(tracks)))
	return tracks, true
}

// Search runs a full-text track search. Result ordering is the catalog's own
// ranking and is passed through unchanged.
func (c *Client) Search(ctx context.Context, query string) ([]SpotifyTrack, bool) {
	httpClient := c.authenticate(ctx)
	if httpClient == nil {
		return nil, false
	}

	var result searchResponse
	endpoint := fmt.Sprintf("/search?q=%s&type=track&limit=%d", url.QueryEscape(query), searchLimit)
	if err := c.getJSON(ctx, httpClient, endpoint, &result); err != nil {
		logger.Warn("Spotify search failed",
			logger.String("query", query),
			logger.ErrorField(err))
		return nil, false
	}

	return result.Tracks.Items, true
}
