package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rocketscienceinc/wordguess-backend/internal/apperror"
	"github.com/rocketscienceinc/wordguess-backend/internal/entity"
	"github.com/rocketscienceinc/wordguess-backend/internal/game"
)

type guessRequest struct {
	Word string `json:"word"`
}

type letterHintRequest struct {
	Letter string `json:"letter"`
}

type playerNameRequest struct {
	Name string `json:"name"`
}

type sessionResponse struct {
	Game       game.Snapshot          `json:"game"`
	Submission entity.SubmissionState `json:"submission"`
}

func (that *Server) sessionJSON(w http.ResponseWriter, snapshot game.Snapshot) {
	that.respondJSON(w, http.StatusOK, sessionResponse{
		Game:       snapshot,
		Submission: that.manager.SubmissionState(),
	})
}

func (that *Server) handleNewRound(w http.ResponseWriter, r *http.Request) {
	that.sessionJSON(w, that.manager.StartNewRound(r.Context()))
}

func (that *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	that.sessionJSON(w, that.manager.State())
}

func (that *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var request guessRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		that.respondError(w, fmt.Errorf("%w: malformed request body", apperror.ErrInvalidArgument))
		return
	}

	that.sessionJSON(w, that.manager.Guess(r.Context(), request.Word))
}

func (that *Server) handleLetterHint(w http.ResponseWriter, r *http.Request) {
	var request letterHintRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		that.respondError(w, fmt.Errorf("%w: malformed request body", apperror.ErrInvalidArgument))
		return
	}

	that.sessionJSON(w, that.manager.CheckLetter(request.Letter))
}

func (that *Server) handleLengthHint(w http.ResponseWriter, _ *http.Request) {
	that.sessionJSON(w, that.manager.WordLengthHint())
}

func (that *Server) handleThesaurusHint(w http.ResponseWriter, r *http.Request) {
	that.sessionJSON(w, that.manager.ThesaurusHint(r.Context()))
}

func (that *Server) handleSetPlayerName(w http.ResponseWriter, r *http.Request) {
	var request playerNameRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		that.respondError(w, fmt.Errorf("%w: malformed request body", apperror.ErrInvalidArgument))
		return
	}

	that.manager.SetPlayerName(request.Name)
	that.respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (that *Server) handleLocalLeaderboard(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleLocalLeaderboard")

	entries, err := that.manager.LocalLeaderboard(r.Context())
	if err != nil {
		log.Error("failed to load local leaderboard", "error", err)
		that.respondError(w, err)
		return
	}

	if entries == nil {
		entries = []entity.ScoreEntry{}
	}

	that.respondJSON(w, http.StatusOK, map[string]any{"success": true, "leaderboard": entries})
}

func (that *Server) handleGlobalLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			that.respondError(w, fmt.Errorf("%w: limit must be a number", apperror.ErrInvalidArgument))
			return
		}
		limit = parsed
	}

	view := that.manager.GlobalLeaderboard(r.Context(), limit)

	that.respondJSON(w, http.StatusOK, map[string]any{
		"success":     view.Error == "",
		"loading":     view.Loading,
		"error":       view.Error,
		"leaderboard": view.Entries,
	})
}
