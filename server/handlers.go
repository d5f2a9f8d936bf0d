package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"AuraFM/core/aggregator"
	"AuraFM/core/player"
	"AuraFM/facade"
	"AuraFM/logger"
	"AuraFM/model"
)

// APIHandler serves the track, playlist, stats and player endpoints.
type APIHandler struct {
	app    *facade.Facade
	player *player.Controller
}

// NewAPIHandler creates a new API handler.
func NewAPIHandler(app *facade.Facade, playerCtl *player.Controller) *APIHandler {
	return &APIHandler{app: app, player: playerCtl}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// GetTracksHandler returns the home feed: local tracks merged with catalog
// new releases.
func (h *APIHandler) GetTracksHandler(w http.ResponseWriter, r *http.Request) {
	tracks, err := h.app.Tracks.List(r.Context())
	if err != nil {
		logger.Error("Failed to list tracks", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	respondJSON(w, http.StatusOK, tracks)
}

// SearchTracksHandler searches local tracks and the catalog. A blank query
// behaves like the plain listing.
func (h *APIHandler) SearchTracksHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	tracks, err := h.app.Tracks.Search(r.Context(), query)
	if err != nil {
		logger.Error("Failed to search tracks",
			logger.String("query", query),
			logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	respondJSON(w, http.StatusOK, tracks)
}

// AddTrackHandler accepts a track submission and returns the stored track.
func (h *APIHandler) AddTrackHandler(w http.ResponseWriter, r *http.Request) {
	var upload model.TrackUpload
	if err := json.NewDecoder(r.Body).Decode(&upload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	track, err := h.app.Tracks.Add(r.Context(), upload)
	if err != nil {
		var validationErr *aggregator.ValidationError
		if errors.As(err, &validationErr) {
			respondError(w, http.StatusBadRequest, validationErr.Message)
			return
		}
		logger.Error("Failed to add track", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	respondJSON(w, http.StatusCreated, track)
}

// GetPlaylistsHandler returns the curated playlists.
func (h *APIHandler) GetPlaylistsHandler(w http.ResponseWriter, r *http.Request) {
	playlists, err := h.app.Playlists.List(r.Context())
	if err != nil {
		logger.Error("Failed to list playlists", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	respondJSON(w, http.StatusOK, playlists)
}

// GetStatsHandler returns the listening statistics series.
func (h *APIHandler) GetStatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := h.app.User.Stats(r.Context())
	if err != nil {
		logger.Error("Failed to load stats", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
