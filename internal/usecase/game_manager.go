package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/wordguess-backend/internal/entity"
	"github.com/rocketscienceinc/wordguess-backend/internal/game"
	"github.com/rocketscienceinc/wordguess-backend/internal/service"
)

type boardService interface {
	LocalScores(ctx context.Context) ([]entity.ScoreEntry, error)
	RefreshGlobalScores(ctx context.Context, limit int) service.GlobalView
	SubmissionState() entity.SubmissionState
}

type nameService interface {
	SetName(name string)
}

// GameManager is the facade the transports talk to: one active session plus
// the leaderboard views around it.
type GameManager struct {
	logger *slog.Logger

	session *game.Session
	boards  boardService
	names   nameService
}

func NewGameManager(logger *slog.Logger, session *game.Session, boards boardService, names nameService) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		session: session,
		boards:  boards,
		names:   names,
	}
}

func (that *GameManager) StartNewRound(ctx context.Context) game.Snapshot {
	return that.session.StartNewRound(ctx)
}

func (that *GameManager) State() game.Snapshot {
	return that.session.State()
}

// Guess buffers the word and submits it in one step.
func (that *GameManager) Guess(ctx context.Context, word string) game.Snapshot {
	that.session.UpdateGuess(word)
	return that.session.SubmitGuess(ctx)
}

// CheckLetter buffers the letter and reveals its occurrence count.
func (that *GameManager) CheckLetter(letter string) game.Snapshot {
	that.session.UpdateLetterToCheck(letter)
	return that.session.CheckLetterOccurrence()
}

func (that *GameManager) WordLengthHint() game.Snapshot {
	return that.session.RequestWordLengthHint()
}

func (that *GameManager) ThesaurusHint(ctx context.Context) game.Snapshot {
	return that.session.RequestThesaurusHint(ctx)
}

func (that *GameManager) SetPlayerName(name string) {
	that.names.SetName(name)
}

func (that *GameManager) SubmissionState() entity.SubmissionState {
	return that.boards.SubmissionState()
}

func (that *GameManager) LocalLeaderboard(ctx context.Context) ([]entity.ScoreEntry, error) {
	entries, err := that.boards.LocalScores(ctx)
	if err != nil {
		that.logger.Error("failed to load local leaderboard", "method", "LocalLeaderboard", "error", err)
		return nil, fmt.Errorf("failed to load local leaderboard: %w", err)
	}

	return entries, nil
}

func (that *GameManager) GlobalLeaderboard(ctx context.Context, limit int) service.GlobalView {
	return that.boards.RefreshGlobalScores(ctx, limit)
}
