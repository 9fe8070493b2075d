package game

import (
	"math/rand"
	"strings"

	"github.com/rocketscienceinc/wordguess-backend/internal/entity"
)

const minWordLength = 3

// IsPlayable reports whether a word may serve as the secret of a round:
// at least three characters, no spaces, no hyphens.
func IsPlayable(word string) bool {
	return len(word) >= minWordLength && !strings.ContainsAny(word, " -")
}

// SelectValidWord draws a random candidate and keeps redrawing, up to retries
// times in total, until the pick survives validation. Candidates are
// normalized to lowercase before checking. Sampling over the raw batch keeps
// the pick uniform over a cheap reject set instead of pre-filtering.
func SelectValidWord(candidates []entity.CandidateWord, retries int, rng *rand.Rand) (string, bool) {
	if len(candidates) == 0 {
		return "", false
	}

	for i := 0; i < retries; i++ {
		word := strings.ToLower(strings.TrimSpace(candidates[rng.Intn(len(candidates))].Word))
		if IsPlayable(word) {
			return word, true
		}
	}

	return "", false
}

// ChooseHintWord picks a thesaurus hint from similar-word candidates using a
// two-tier preference: first a word of exactly the secret's length, then any
// word longer than two characters. The secret itself never qualifies.
func ChooseHintWord(candidates []entity.CandidateWord, secret string) (string, bool) {
	secret = strings.ToLower(secret)

	for _, candidate := range candidates {
		word := strings.ToLower(strings.TrimSpace(candidate.Word))
		if word != secret && len(word) == len(secret) && !strings.ContainsAny(word, " -") {
			return word, true
		}
	}

	for _, candidate := range candidates {
		word := strings.ToLower(strings.TrimSpace(candidate.Word))
		if word != secret && len(word) > 2 && !strings.ContainsAny(word, " -") {
			return word, true
		}
	}

	return "", false
}
