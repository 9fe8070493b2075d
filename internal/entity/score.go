package entity

import (
	"time"

	"github.com/google/uuid"
)

// ScoreEntry is an immutable record of a won round kept on the local leaderboard.
type ScoreEntry struct {
	ID               string `json:"id"`
	PlayerName       string `json:"player_name"`
	Score            int    `json:"score"`
	TimeTakenSeconds int64  `json:"time_taken_seconds"`
	Timestamp        int64  `json:"timestamp"`
}

func NewScoreEntry(playerName string, score int, timeTakenSeconds int64) ScoreEntry {
	return ScoreEntry{
		ID:               uuid.NewString(),
		PlayerName:       playerName,
		Score:            score,
		TimeTakenSeconds: timeTakenSeconds,
		Timestamp:        time.Now().UnixMilli(),
	}
}

// Better reports whether this entry ranks above other: higher score first,
// ties broken by lower time taken.
func (that ScoreEntry) Better(other ScoreEntry) bool {
	if that.Score != other.Score {
		return that.Score > other.Score
	}
	return that.TimeTakenSeconds < other.TimeTakenSeconds
}

// RemoteScoreEntry is one row of the shared leaderboard as returned by the backend.
type RemoteScoreEntry struct {
	ID               string `json:"id"`
	PlayerName       string `json:"playerName"`
	Score            int    `json:"score"`
	TimeTakenSeconds int64  `json:"timeTakenSeconds"`
	Timestamp        int64  `json:"timestamp"`
}

// CandidateWord is a single word suggestion from the word association service.
type CandidateWord struct {
	Word  string `json:"word"`
	Score int    `json:"score"`
}
