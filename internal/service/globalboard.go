package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/wordguess-backend/internal/apperror"
	"github.com/rocketscienceinc/wordguess-backend/internal/entity"
)

const (
	maxPlayerNameLength = 25
	defaultBoardLimit   = 10
	maxBoardLimit       = 50
)

type globalBoardRepo interface {
	Add(ctx context.Context, entry entity.RemoteScoreEntry) error
	Top(ctx context.Context, limit int) ([]entity.RemoteScoreEntry, error)
}

// GlobalBoardService is the backend side of the shared leaderboard: it
// validates submissions, stamps server-assigned fields and serves the
// ordered top-N query. Entries are never mutated or deleted.
type GlobalBoardService interface {
	Submit(ctx context.Context, playerName string, score, timeTakenSeconds float64) (entity.RemoteScoreEntry, error)
	Top(ctx context.Context, limit float64) ([]entity.RemoteScoreEntry, error)
}

type globalBoardService struct {
	boardRepo globalBoardRepo
}

func NewGlobalBoardService(boardRepo globalBoardRepo) GlobalBoardService {
	return &globalBoardService{
		boardRepo: boardRepo,
	}
}

func (that *globalBoardService) Submit(ctx context.Context, playerName string, score, timeTakenSeconds float64) (entity.RemoteScoreEntry, error) {
	playerName = strings.TrimSpace(playerName)
	if playerName == "" {
		return entity.RemoteScoreEntry{}, fmt.Errorf("%w: player name is required and must be a non-empty string", apperror.ErrInvalidArgument)
	}

	if math.IsNaN(score) || math.IsInf(score, 0) {
		return entity.RemoteScoreEntry{}, fmt.Errorf("%w: score must be a valid number", apperror.ErrInvalidArgument)
	}

	if math.IsNaN(timeTakenSeconds) || math.IsInf(timeTakenSeconds, 0) {
		return entity.RemoteScoreEntry{}, fmt.Errorf("%w: time taken must be a valid number", apperror.ErrInvalidArgument)
	}

	if runes := []rune(playerName); len(runes) > maxPlayerNameLength {
		playerName = string(runes[:maxPlayerNameLength])
	}

	entry := entity.RemoteScoreEntry{
		ID:               uuid.NewString(),
		PlayerName:       playerName,
		Score:            int(math.Round(score)),
		TimeTakenSeconds: int64(math.Round(timeTakenSeconds)),
		Timestamp:        time.Now().UnixMilli(),
	}

	if err := that.boardRepo.Add(ctx, entry); err != nil {
		return entity.RemoteScoreEntry{}, fmt.Errorf("failed to store board entry: %w", err)
	}

	return entry, nil
}

func (that *globalBoardService) Top(ctx context.Context, limit float64) ([]entity.RemoteScoreEntry, error) {
	if limit <= 0 {
		limit = defaultBoardLimit
	}

	if limit > maxBoardLimit {
		return nil, fmt.Errorf("%w: limit cannot exceed %d", apperror.ErrInvalidArgument, maxBoardLimit)
	}

	entries, err := that.boardRepo.Top(ctx, int(math.Floor(limit)))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch board entries: %w", err)
	}

	return entries, nil
}
