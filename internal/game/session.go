package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/rocketscienceinc/wordguess-backend/internal/apperror"
	"github.com/rocketscienceinc/wordguess-backend/internal/entity"
)

type Status string

const (
	StatusLoadingWord Status = "loading_word"
	StatusPlaying     Status = "playing"
	StatusWon         Status = "won"
	StatusLost        Status = "lost"
	StatusError       Status = "error"
)

// Rules is the per-round scoring and hint configuration.
type Rules struct {
	InitialScore         int
	MaxAttempts          int
	GuessPenalty         int
	HintCost             int
	ThesaurusHintCost    int
	ThesaurusMinAttempts int
	SelectionRetries     int
}

func DefaultRules() Rules {
	return Rules{
		InitialScore:         100,
		MaxAttempts:          10,
		GuessPenalty:         10,
		HintCost:             5,
		ThesaurusHintCost:    10,
		ThesaurusMinAttempts: 5,
		SelectionRetries:     5,
	}
}

type wordSource interface {
	CandidateWords(ctx context.Context) ([]entity.CandidateWord, error)
	SimilarWords(ctx context.Context, word string) ([]entity.CandidateWord, error)
}

// resultSink receives the outcome of a won round. RecordResult persists the
// result and reports whether it made the local leaderboard; ResetSubmission
// rearms the shared-board submission gate for the next round.
type resultSink interface {
	RecordResult(ctx context.Context, finalScore int, timeTakenSeconds int64) bool
	ResetSubmission()
}

// Session is the state machine of a single round. Every mutating action is
// gated on the current status under one mutex; the only operations that leave
// the lock mid-action are the word fetch and the thesaurus-hint fetch.
type Session struct {
	logger *slog.Logger
	rules  Rules
	words  wordSource
	sink   resultSink
	rng    *rand.Rand
	now    func() time.Time

	mu           sync.Mutex
	status       Status
	roundGen     uint64
	secretWord   string
	score        int
	attemptsLeft int

	currentGuess  string
	letterToCheck string
	feedback      string
	errMessage    string

	letterOccurrenceMessage string
	wordLengthActive        bool
	wordLengthConsumed      bool
	wordLengthMessage       string
	thesaurusHint           string
	thesaurusMessage        string
	thesaurusConsumed       bool
	thesaurusLoading        bool

	startedAt        time.Time
	timeTakenSeconds int64
	elapsedDisplay   string
	stopTick         context.CancelFunc

	subscribers []chan Snapshot
}

func NewSession(logger *slog.Logger, rules Rules, words wordSource, sink resultSink) *Session {
	return &Session{
		logger:         logger.With("component", "game_session"),
		rules:          rules,
		words:          words,
		sink:           sink,
		rng:            rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // game randomness, not crypto
		now:            time.Now,
		status:         StatusLoadingWord,
		elapsedDisplay: "00:00",
	}
}

// StartNewRound resets all per-round state, fetches a fresh batch of
// candidate words and transitions to Playing, or to Error when no usable
// word could be obtained. Any state is a legal starting point.
func (that *Session) StartNewRound(ctx context.Context) Snapshot {
	log := that.logger.With("method", "StartNewRound")

	that.mu.Lock()
	that.resetRoundLocked()
	that.roundGen++
	gen := that.roundGen
	that.publishLocked()
	that.mu.Unlock()

	that.sink.ResetSubmission()

	candidates, err := that.words.CandidateWords(ctx)

	that.mu.Lock()
	defer that.mu.Unlock()

	if that.status != StatusLoadingWord || that.roundGen != gen {
		// The round was restarted while this fetch was in flight; a stale
		// batch must not complete the newer round.
		return that.snapshotLocked()
	}

	if err != nil {
		log.Error("failed to fetch candidate words", "error", err)
		that.failRoundLocked(describeFetchError(err))
		return that.snapshotLocked()
	}

	if len(candidates) == 0 {
		log.Error("word service returned no candidates")
		that.failRoundLocked("API returned an empty list of words.")
		return that.snapshotLocked()
	}

	word, ok := SelectValidWord(candidates, that.rules.SelectionRetries, that.rng)
	if !ok {
		log.Error("no playable word after bounded retries", "candidates", len(candidates))
		that.failRoundLocked("Could not find a suitable word.")
		return that.snapshotLocked()
	}

	that.secretWord = word
	that.status = StatusPlaying
	that.startTimerLocked()
	log.Info("round started", "word_length", len(word))

	that.publishLocked()
	return that.snapshotLocked()
}

// UpdateGuess replaces the guess input buffer. Accepted only while Playing.
func (that *Session) UpdateGuess(guess string) Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.status == StatusPlaying {
		that.currentGuess = guess
	}

	return that.snapshotLocked()
}

// SubmitGuess evaluates the buffered guess against the secret word. An
// attempt is spent unconditionally; a mismatch costs the configured penalty,
// floored at zero. The round is lost when attempts run out or when the
// penalty drives the score to exactly zero.
func (that *Session) SubmitGuess(ctx context.Context) Snapshot {
	log := that.logger.With("method", "SubmitGuess")

	that.mu.Lock()
	defer that.mu.Unlock()

	if that.currentGuess == "" || that.status != StatusPlaying {
		if that.currentGuess == "" {
			that.feedback = "Please enter a word."
		} else {
			that.feedback = ""
		}
		that.clearHintMessagesLocked()
		return that.snapshotLocked()
	}

	if that.secretWord == "" {
		that.feedback = "Still loading the word, please wait."
		that.clearHintMessagesLocked()
		return that.snapshotLocked()
	}

	that.attemptsLeft--
	that.feedback = ""
	that.clearHintMessagesLocked()

	if strings.EqualFold(that.currentGuess, that.secretWord) {
		that.stopTimerLocked()
		that.freezeElapsedLocked()

		finalScore := that.score
		finalTime := that.timeTakenSeconds

		that.status = StatusWon
		that.feedback = fmt.Sprintf("Correct! You guessed '%s' in %s! Score: %d",
			that.secretWord, formatElapsed(time.Duration(finalTime)*time.Second), finalScore)
		log.Info("round won", "score", finalScore, "time_taken_seconds", finalTime)

		if that.sink.RecordResult(ctx, finalScore, finalTime) {
			that.feedback += "\nYou made it to the local leaderboard!"
		}
	} else {
		that.score -= that.rules.GuessPenalty
		if that.score < 0 {
			that.score = 0
		}

		if that.attemptsLeft <= 0 || (that.score == 0 && that.rules.GuessPenalty > 0) {
			that.stopTimerLocked()
			that.status = StatusLost
			that.feedback = fmt.Sprintf("Game Over! The word was '%s'.", that.secretWord)
			log.Info("round lost", "score", that.score, "attempts_left", that.attemptsLeft)
		} else {
			that.feedback = "Incorrect guess. Try again."
		}
	}

	that.currentGuess = ""
	that.publishLocked()

	return that.snapshotLocked()
}

// State returns the current immutable snapshot.
func (that *Session) State() Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.snapshotLocked()
}

// Subscribe returns a channel receiving a snapshot per state transition.
// Slow consumers miss intermediate snapshots rather than block the engine.
func (that *Session) Subscribe() <-chan Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	updates := make(chan Snapshot, 16)
	that.subscribers = append(that.subscribers, updates)

	return updates
}

func (that *Session) resetRoundLocked() {
	that.stopTimerLocked()

	that.status = StatusLoadingWord
	that.secretWord = ""
	that.score = that.rules.InitialScore
	that.attemptsLeft = that.rules.MaxAttempts
	that.currentGuess = ""
	that.letterToCheck = ""
	that.feedback = ""
	that.errMessage = ""

	that.letterOccurrenceMessage = ""
	that.wordLengthActive = false
	that.wordLengthConsumed = false
	that.wordLengthMessage = ""
	that.thesaurusHint = ""
	that.thesaurusMessage = ""
	that.thesaurusConsumed = false
	that.thesaurusLoading = false

	that.startedAt = time.Time{}
	that.timeTakenSeconds = 0
	that.elapsedDisplay = "00:00"
}

func (that *Session) failRoundLocked(message string) {
	that.errMessage = message
	that.status = StatusError
	that.publishLocked()
}

func (that *Session) clearHintMessagesLocked() {
	that.letterOccurrenceMessage = ""
	that.wordLengthMessage = ""
	that.thesaurusMessage = ""
}

func (that *Session) freezeElapsedLocked() {
	if that.startedAt.IsZero() {
		that.timeTakenSeconds = 0
		that.elapsedDisplay = formatElapsed(0)
		return
	}

	elapsed := that.now().Sub(that.startedAt)
	that.timeTakenSeconds = int64(elapsed / time.Second)
	that.elapsedDisplay = formatElapsed(elapsed)
}

func describeFetchError(err error) string {
	switch {
	case errors.Is(err, apperror.ErrService):
		return "Error fetching word: the word service rejected the request."
	case errors.Is(err, apperror.ErrEmptyResult):
		return "API returned an empty list of words."
	default:
		return "Network error: could not reach the word service."
	}
}
