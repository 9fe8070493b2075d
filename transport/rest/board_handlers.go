package rest

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rocketscienceinc/wordguess-backend/internal/apperror"
	"github.com/rocketscienceinc/wordguess-backend/internal/entity"
)

type submitScoreRequest struct {
	PlayerName       string   `json:"playerName"`
	Score            *float64 `json:"score"`
	TimeTakenSeconds *float64 `json:"timeTakenSeconds"`
}

type submitScoreResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type getLeaderboardRequest struct {
	Limit float64 `json:"limit"`
}

type getLeaderboardResponse struct {
	Success     bool                      `json:"success"`
	Leaderboard []entity.RemoteScoreEntry `json:"leaderboard"`
}

func (that *Server) handleSubmitScore(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleSubmitScore")

	var request submitScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		that.respondError(w, fmt.Errorf("%w: malformed request body", apperror.ErrInvalidArgument))
		return
	}

	if request.Score == nil {
		that.respondError(w, fmt.Errorf("%w: score must be a valid number", apperror.ErrInvalidArgument))
		return
	}

	if request.TimeTakenSeconds == nil {
		that.respondError(w, fmt.Errorf("%w: time taken must be a valid number", apperror.ErrInvalidArgument))
		return
	}

	entry, err := that.board.Submit(r.Context(), request.PlayerName, *request.Score, *request.TimeTakenSeconds)
	if err != nil {
		log.Error("failed to submit score", "error", err)
		that.respondError(w, err)
		return
	}

	log.Info("score submitted", "player", entry.PlayerName, "score", entry.Score)
	that.respondJSON(w, http.StatusOK, submitScoreResponse{Success: true, Message: "Score submitted successfully!"})
}

func (that *Server) handleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleGetLeaderboard")

	var request getLeaderboardRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		that.respondError(w, fmt.Errorf("%w: malformed request body", apperror.ErrInvalidArgument))
		return
	}

	entries, err := that.board.Top(r.Context(), request.Limit)
	if err != nil {
		log.Error("failed to fetch leaderboard", "error", err)
		that.respondError(w, err)
		return
	}

	if entries == nil {
		entries = []entity.RemoteScoreEntry{}
	}

	that.respondJSON(w, http.StatusOK, getLeaderboardResponse{Success: true, Leaderboard: entries})
}
