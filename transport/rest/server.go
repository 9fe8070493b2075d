package rest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/wordguess-backend/internal/entity"
	"github.com/rocketscienceinc/wordguess-backend/internal/game"
	"github.com/rocketscienceinc/wordguess-backend/internal/service"
)

type gameManager interface {
	StartNewRound(ctx context.Context) game.Snapshot
	State() game.Snapshot
	Guess(ctx context.Context, word string) game.Snapshot
	CheckLetter(letter string) game.Snapshot
	WordLengthHint() game.Snapshot
	ThesaurusHint(ctx context.Context) game.Snapshot
	SetPlayerName(name string)
	SubmissionState() entity.SubmissionState
	LocalLeaderboard(ctx context.Context) ([]entity.ScoreEntry, error)
	GlobalLeaderboard(ctx context.Context, limit int) service.GlobalView
}

type globalBoard interface {
	Submit(ctx context.Context, playerName string, score, timeTakenSeconds float64) (entity.RemoteScoreEntry, error)
	Top(ctx context.Context, limit float64) ([]entity.RemoteScoreEntry, error)
}

type Server struct {
	logger *slog.Logger
	router *chi.Mux

	manager gameManager
	board   globalBoard
}

func New(logger *slog.Logger, manager gameManager, board globalBoard) *Server {
	that := &Server{
		logger: logger.With("component", "rest"),
		router: chi.NewRouter(),

		manager: manager,
		board:   board,
	}

	that.router.Use(middleware.RequestID)
	that.router.Use(middleware.RealIP)
	that.router.Use(middleware.Recoverer)
	that.router.Use(middleware.Timeout(60 * time.Second))

	that.router.Get("/ping", that.handlePing)

	// The shared leaderboard backend: RPC-style calls, mirrored by the
	// leaderboardapi client.
	that.router.Post("/submitScore", that.handleSubmitScore)
	that.router.Post("/getLeaderboard", that.handleGetLeaderboard)

	// The session surface for a thin client.
	that.router.Route("/game", func(r chi.Router) {
		r.Post("/new", that.handleNewRound)
		r.Get("/state", that.handleState)
		r.Post("/guess", that.handleGuess)
		r.Post("/hint/letter", that.handleLetterHint)
		r.Post("/hint/length", that.handleLengthHint)
		r.Post("/hint/thesaurus", that.handleThesaurusHint)
	})
	that.router.Post("/player/name", that.handleSetPlayerName)
	that.router.Get("/leaderboard/local", that.handleLocalLeaderboard)
	that.router.Get("/leaderboard/global", that.handleGlobalLeaderboard)

	return that
}

// Router exposes the mux for tests.
func (that *Server) Router() http.Handler {
	return that.router
}

func (that *Server) Start(port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 70 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}
