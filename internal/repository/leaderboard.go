package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/wordguess-backend/internal/entity"
)

const (
	localBoardKey   = "leaderboard:local"
	maxLocalEntries = 10
)

// LocalBoardRepository is the device-local top-10 leaderboard. The whole list
// lives under one key and every write replaces it, so readers never observe a
// partial update.
type LocalBoardRepository interface {
	Append(ctx context.Context, entry entity.ScoreEntry) error
	ListAll(ctx context.Context) ([]entity.ScoreEntry, error)
	Qualifies(ctx context.Context, score int, timeTakenSeconds int64) (bool, error)
}

type dbLocalBoard struct {
	client *redis.Client
}

func NewLocalBoardRepository(client *redis.Client) LocalBoardRepository {
	return &dbLocalBoard{
		client: client,
	}
}

func (that *dbLocalBoard) Append(ctx context.Context, entry entity.ScoreEntry) error {
	entries, err := that.readAll(ctx)
	if err != nil {
		return err
	}

	entries = append(entries, entry)
	sortEntries(entries)
	if len(entries) > maxLocalEntries {
		entries = entries[:maxLocalEntries]
	}

	entriesJSON, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("could not marshal leaderboard: %w", err)
	}

	if err = that.client.Set(ctx, localBoardKey, entriesJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to save leaderboard: %w", err)
	}

	return nil
}

func (that *dbLocalBoard) ListAll(ctx context.Context) ([]entity.ScoreEntry, error) {
	entries, err := that.readAll(ctx)
	if err != nil {
		return nil, err
	}

	sortEntries(entries)

	return entries, nil
}

// Qualifies must agree with the ordering used by Append: a score makes the
// board when it is not full, when it beats the current worst score, or when
// it ties the worst score with a strictly lower time.
func (that *dbLocalBoard) Qualifies(ctx context.Context, score int, timeTakenSeconds int64) (bool, error) {
	entries, err := that.readAll(ctx)
	if err != nil {
		return false, err
	}

	if len(entries) < maxLocalEntries {
		return true, nil
	}

	sortEntries(entries)
	worst := entries[len(entries)-1]

	if score > worst.Score {
		return true, nil
	}

	return score == worst.Score && timeTakenSeconds < worst.TimeTakenSeconds, nil
}

func (that *dbLocalBoard) readAll(ctx context.Context) ([]entity.ScoreEntry, error) {
	response, err := that.client.Get(ctx, localBoardKey).Result()

	if errors.Is(err, redis.Nil) {
		return []entity.ScoreEntry{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard: %w", err)
	}

	var entries []entity.ScoreEntry
	if err = json.Unmarshal([]byte(response), &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal leaderboard: %w", err)
	}

	return entries, nil
}

// sortEntries orders by score descending, ties broken by time taken ascending.
func sortEntries(entries []entity.ScoreEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Better(entries[j])
	})
}
