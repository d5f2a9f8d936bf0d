package server

import (
	"encoding/json"
	"net/http"

	"AuraFM/core/player"
	"AuraFM/logger"
)

type playerSelectRequest struct {
	TrackID string `json:"trackId"`
}

type playerPositionRequest struct {
	Position float64 `json:"position"`
	Duration float64 `json:"duration"`
}

// PlayerStatusHandler returns the current player snapshot.
func (h *APIHandler) PlayerStatusHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.player.Status())
}

// PlayerSelectHandler loads a track into the player and starts playback.
// The play queue is refreshed from the current listing so next/prev walk
// the same order the client sees.
func (h *APIHandler) PlayerSelectHandler(w http.ResponseWriter, r *http.Request) {
	var req playerSelectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.TrackID == "" {
		respondError(w, http.StatusBadRequest, "trackId is required")
		return
	}

	tracks, err := h.app.Tracks.List(r.Context())
	if err != nil {
		logger.Error("Failed to refresh play queue", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	h.player.SetQueue(tracks)

	for _, t := range tracks {
		if t.ID == req.TrackID {
			h.player.SelectTrack(t)
			respondJSON(w, http.StatusOK, h.player.Status())
			return
		}
	}
	respondError(w, http.StatusNotFound, "Track not found")
}

// PlayerToggleHandler toggles play/pause. A no-op when nothing is loaded.
func (h *APIHandler) PlayerToggleHandler(w http.ResponseWriter, r *http.Request) {
	h.player.TogglePlayPause()
	respondJSON(w, http.StatusOK, h.player.Status())
}

// PlayerNextHandler skips to the next queue entry, wrapping at the end.
func (h *APIHandler) PlayerNextHandler(w http.ResponseWriter, r *http.Request) {
	h.player.Advance(player.Next)
	respondJSON(w, http.StatusOK, h.player.Status())
}

// PlayerPrevHandler skips to the previous queue entry, wrapping at the start.
func (h *APIHandler) PlayerPrevHandler(w http.ResponseWriter, r *http.Request) {
	h.player.Advance(player.Prev)
	respondJSON(w, http.StatusOK, h.player.Status())
}

// PlayerPositionHandler reports real audio progress for preview playback.
func (h *APIHandler) PlayerPositionHandler(w http.ResponseWriter, r *http.Request) {
	var req playerPositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	h.player.ReportPosition(req.Position, req.Duration)
	respondJSON(w, http.StatusOK, h.player.Status())
}
