package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/wordguess-backend/internal/entity"
)

const globalBoardKey = "leaderboard:global"

// rankTimeWeight folds the two-field ordering (score desc, time asc) into one
// sorted-set rank. Valid while timeTakenSeconds stays below the weight, which
// a per-round wall clock guarantees.
const rankTimeWeight = 1e9

// GlobalBoardRepository is the server-side shared leaderboard backing the
// submitScore/getLeaderboard endpoints. Entries are append-only.
type GlobalBoardRepository interface {
	Add(ctx context.Context, entry entity.RemoteScoreEntry) error
	Top(ctx context.Context, limit int) ([]entity.RemoteScoreEntry, error)
}

type dbGlobalBoard struct {
	client *redis.Client
}

func NewGlobalBoardRepository(client *redis.Client) GlobalBoardRepository {
	return &dbGlobalBoard{
		client: client,
	}
}

func (that *dbGlobalBoard) Add(ctx context.Context, entry entity.RemoteScoreEntry) error {
	entryJSON, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("could not marshal board entry: %w", err)
	}

	member := redis.Z{
		Score:  float64(entry.Score)*rankTimeWeight - float64(entry.TimeTakenSeconds),
		Member: entryJSON,
	}

	if err = that.client.ZAdd(ctx, globalBoardKey, member).Err(); err != nil {
		return fmt.Errorf("failed to add board entry: %w", err)
	}

	return nil
}

func (that *dbGlobalBoard) Top(ctx context.Context, limit int) ([]entity.RemoteScoreEntry, error) {
	if limit <= 0 {
		return []entity.RemoteScoreEntry{}, nil
	}

	members, err := that.client.ZRevRange(ctx, globalBoardKey, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read board entries: %w", err)
	}

	entries := make([]entity.RemoteScoreEntry, 0, len(members))
	for _, member := range members {
		var entry entity.RemoteScoreEntry
		if err = json.Unmarshal([]byte(member), &entry); err != nil {
			return nil, fmt.Errorf("failed to unmarshal board entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
