package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/wordguess-backend/internal/entity"
)

const defaultGlobalFetchLimit = 20

type localBoard interface {
	Append(ctx context.Context, entry entity.ScoreEntry) error
	ListAll(ctx context.Context) ([]entity.ScoreEntry, error)
	Qualifies(ctx context.Context, score int, timeTakenSeconds int64) (bool, error)
}

type remoteBoard interface {
	SubmitScore(ctx context.Context, playerName string, score int, timeTakenSeconds int64) (string, error)
	GetLeaderboard(ctx context.Context, limit int) ([]entity.RemoteScoreEntry, error)
}

type playerNames interface {
	Current() string
}

// GlobalView is the cached state of the shared leaderboard as last fetched.
type GlobalView struct {
	Entries []entity.RemoteScoreEntry
	Loading bool
	Error   string
}

// LeaderboardService reconciles finished rounds into the local store
// (synchronously) and the shared board (asynchronously, at most once per
// round), and serves both ranked views.
type LeaderboardService interface {
	RecordResult(ctx context.Context, finalScore int, timeTakenSeconds int64) bool
	ResetSubmission()
	SubmissionState() entity.SubmissionState

	LocalScores(ctx context.Context) ([]entity.ScoreEntry, error)
	RefreshGlobalScores(ctx context.Context, limit int) GlobalView
	GlobalScores() GlobalView
}

type leaderboardService struct {
	logger *slog.Logger
	local  localBoard
	remote remoteBoard
	names  playerNames

	mu            sync.Mutex
	submission    entity.SubmissionState
	globalLoading bool
	globalEntries []entity.RemoteScoreEntry
	globalError   string
}

func NewLeaderboardService(logger *slog.Logger, local localBoard, remote remoteBoard, names playerNames) LeaderboardService {
	return &leaderboardService{
		logger:     logger.With("component", "leaderboard"),
		local:      local,
		remote:     remote,
		names:      names,
		submission: entity.SubmissionState{Status: entity.SubmissionIdle},
	}
}

// RecordResult persists a won round. The local write completes before this
// returns; a write failure is logged loudly but never undoes the win. The
// shared-board submission runs in the background and only moves the
// submission status signal. Reports whether the score made the local board.
func (that *leaderboardService) RecordResult(ctx context.Context, finalScore int, timeTakenSeconds int64) bool {
	log := that.logger.With("method", "RecordResult")
	playerName := that.names.Current()

	qualified, err := that.local.Qualifies(ctx, finalScore, timeTakenSeconds)
	if err != nil {
		log.Error("failed to check leaderboard qualification", "error", err)
		qualified = false
	}

	if qualified {
		entry := entity.NewScoreEntry(playerName, finalScore, timeTakenSeconds)
		if err = that.local.Append(ctx, entry); err != nil {
			// A lost qualifying score is a correctness violation; shout,
			// but the round outcome stands.
			log.Error("failed to persist qualifying score", "error", err, "player", playerName, "score", finalScore)
			qualified = false
		} else {
			log.Info("score added to local leaderboard", "player", playerName, "score", finalScore)
		}
	} else {
		log.Info("score did not qualify for local leaderboard", "player", playerName, "score", finalScore)
	}

	go that.submitRemote(playerName, finalScore, timeTakenSeconds)

	return qualified
}

// submitRemote pushes the result to the shared board at most once per round:
// any call while the status is not Idle is a no-op.
func (that *leaderboardService) submitRemote(playerName string, finalScore int, timeTakenSeconds int64) {
	log := that.logger.With("method", "submitRemote")

	that.mu.Lock()
	if that.submission.Status != entity.SubmissionIdle {
		that.mu.Unlock()
		return
	}
	that.submission = entity.SubmissionState{Status: entity.SubmissionInFlight}
	that.mu.Unlock()

	message, err := that.remote.SubmitScore(context.Background(), playerName, finalScore, timeTakenSeconds)

	that.mu.Lock()
	defer that.mu.Unlock()

	if err != nil {
		log.Error("failed to submit score to shared board", "error", err)
		that.submission = entity.SubmissionState{Status: entity.SubmissionFailed, Message: err.Error()}
		return
	}

	log.Info("score submitted to shared board", "player", playerName, "score", finalScore)
	that.submission = entity.SubmissionState{Status: entity.SubmissionSubmitted, Message: message}
}

func (that *leaderboardService) ResetSubmission() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.submission = entity.SubmissionState{Status: entity.SubmissionIdle}
}

func (that *leaderboardService) SubmissionState() entity.SubmissionState {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.submission
}

func (that *leaderboardService) LocalScores(ctx context.Context) ([]entity.ScoreEntry, error) {
	entries, err := that.local.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list local scores: %w", err)
	}

	return entries, nil
}

// RefreshGlobalScores fetches the shared board. A call while a fetch is
// already in flight is a no-op returning the last known view, so concurrent
// readers never stack duplicate requests.
func (that *leaderboardService) RefreshGlobalScores(ctx context.Context, limit int) GlobalView {
	log := that.logger.With("method", "RefreshGlobalScores")

	if limit <= 0 {
		limit = defaultGlobalFetchLimit
	}

	that.mu.Lock()
	if that.globalLoading {
		view := that.globalViewLocked()
		that.mu.Unlock()
		return view
	}
	that.globalLoading = true
	that.globalError = ""
	that.mu.Unlock()

	entries, err := that.remote.GetLeaderboard(ctx, limit)

	that.mu.Lock()
	defer that.mu.Unlock()

	that.globalLoading = false
	if err != nil {
		log.Error("failed to fetch shared board", "error", err)
		that.globalError = err.Error()
	} else {
		that.globalEntries = entries
	}

	return that.globalViewLocked()
}

func (that *leaderboardService) GlobalScores() GlobalView {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.globalViewLocked()
}

func (that *leaderboardService) globalViewLocked() GlobalView {
	entries := make([]entity.RemoteScoreEntry, len(that.globalEntries))
	copy(entries, that.globalEntries)

	return GlobalView{
		Entries: entries,
		Loading: that.globalLoading,
		Error:   that.globalError,
	}
}
