package game

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// UpdateLetterToCheck replaces the letter-occurrence input buffer. Only a
// single character is accepted, lowercased on the way in.
func (that *Session) UpdateLetterToCheck(letter string) Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.status == StatusPlaying && utf8.RuneCountInString(letter) <= 1 {
		that.letterToCheck = strings.ToLower(letter)
	}

	return that.snapshotLocked()
}

// CheckLetterOccurrence reveals how many times the buffered letter appears in
// the secret word. Repeatable; each successful reveal costs the hint price.
func (that *Session) CheckLetterOccurrence() Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.letterToCheck == "" || that.secretWord == "" || that.status != StatusPlaying {
		that.letterOccurrenceMessage = "Please enter a single letter to check."
		return that.snapshotLocked()
	}

	letter, _ := utf8.DecodeRuneInString(that.letterToCheck)
	if utf8.RuneCountInString(that.letterToCheck) != 1 || !unicode.IsLetter(letter) {
		that.letterOccurrenceMessage = "Invalid input. Please enter a single letter."
		that.letterToCheck = ""
		return that.snapshotLocked()
	}

	if that.score < that.rules.HintCost {
		that.letterOccurrenceMessage = fmt.Sprintf("Not enough points for this hint (costs %d).", that.rules.HintCost)
		return that.snapshotLocked()
	}

	that.score -= that.rules.HintCost
	count := strings.Count(strings.ToLower(that.secretWord), string(unicode.ToLower(letter)))
	that.letterOccurrenceMessage = fmt.Sprintf("The letter '%s' appears %d time(s).",
		strings.ToUpper(string(letter)), count)

	that.feedback = ""
	that.letterToCheck = ""
	that.wordLengthMessage = ""
	that.thesaurusMessage = ""
	that.publishLocked()

	return that.snapshotLocked()
}

// RequestWordLengthHint reveals the secret word's length. Single use per
// round; once active, repeated calls re-display the length for free.
func (that *Session) RequestWordLengthHint() Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.status != StatusPlaying || that.secretWord == "" {
		return that.snapshotLocked()
	}

	if that.wordLengthActive {
		that.wordLengthMessage = fmt.Sprintf("Word length: %d letters.", len(that.secretWord))
		return that.snapshotLocked()
	}

	if that.score < that.rules.HintCost {
		that.wordLengthMessage = fmt.Sprintf("Not enough points for this hint (costs %d).", that.rules.HintCost)
		return that.snapshotLocked()
	}

	that.score -= that.rules.HintCost
	that.wordLengthActive = true
	that.wordLengthConsumed = true
	that.wordLengthMessage = fmt.Sprintf("The word has %d letters.", len(that.secretWord))

	that.feedback = ""
	that.letterOccurrenceMessage = ""
	that.thesaurusMessage = ""
	that.publishLocked()

	return that.snapshotLocked()
}

// checkThesaurusGatesLocked applies the eligibility rules of the thesaurus
// hint and sets a refusal message when one fails. Reports true on refusal.
func (that *Session) checkThesaurusGatesLocked() bool {
	if that.status != StatusPlaying || that.secretWord == "" {
		that.thesaurusMessage = "Cannot request hint now."
		return true
	}

	if that.thesaurusConsumed {
		that.thesaurusMessage = "You've already used the thesaurus hint for this word."
		if that.thesaurusHint != "" {
			that.thesaurusMessage = fmt.Sprintf("A similar word is: '%s'.", that.thesaurusHint)
		}
		return true
	}

	attemptsMade := that.rules.MaxAttempts - that.attemptsLeft
	if attemptsMade < that.rules.ThesaurusMinAttempts {
		that.thesaurusMessage = fmt.Sprintf("This hint is available after %d incorrect guesses.", that.rules.ThesaurusMinAttempts)
		return true
	}

	if that.score < that.rules.ThesaurusHintCost {
		that.thesaurusMessage = fmt.Sprintf("Not enough points for this hint (costs %d).", that.rules.ThesaurusHintCost)
		return true
	}

	return that.thesaurusLoading
}

// RequestThesaurusHint fetches words similar in meaning to the secret and
// reveals one of them. Single use, available only after the configured number
// of guesses has been spent. The cost is charged only on a successful reveal;
// a failed fetch or an unusable candidate set leaves the score untouched.
func (that *Session) RequestThesaurusHint(ctx context.Context) Snapshot {
	log := that.logger.With("method", "RequestThesaurusHint")

	that.mu.Lock()

	if refused := that.checkThesaurusGatesLocked(); refused {
		snapshot := that.snapshotLocked()
		that.mu.Unlock()
		return snapshot
	}

	that.thesaurusLoading = true
	that.thesaurusMessage = ""
	that.feedback = ""
	that.letterOccurrenceMessage = ""
	that.wordLengthMessage = ""
	secret := that.secretWord
	that.publishLocked()
	that.mu.Unlock()

	similar, err := that.words.SimilarWords(ctx, secret)

	that.mu.Lock()
	defer that.mu.Unlock()

	that.thesaurusLoading = false

	if that.status != StatusPlaying || that.secretWord != secret {
		// The round ended or restarted while the fetch was in flight.
		return that.snapshotLocked()
	}

	switch {
	case err != nil:
		log.Error("failed to fetch similar words", "error", err)
		that.thesaurusMessage = "Network error while fetching hint."
	case len(similar) == 0:
		that.thesaurusMessage = fmt.Sprintf("Could not fetch similar words from the API for '%s'.", secret)
	default:
		hint, ok := ChooseHintWord(similar, secret)
		if !ok {
			that.thesaurusMessage = fmt.Sprintf("Could not find a suitable similar word hint for '%s'.", secret)
			break
		}

		// The score may have shrunk while the fetch was in flight; the
		// pre-fetch affordability check no longer holds.
		if that.score < that.rules.ThesaurusHintCost {
			that.thesaurusMessage = fmt.Sprintf("Not enough points for this hint (costs %d).", that.rules.ThesaurusHintCost)
			break
		}

		that.thesaurusHint = hint
		if len(hint) == len(secret) {
			that.thesaurusMessage = fmt.Sprintf("Hint: A similar %d-letter word is '%s'.", len(secret), hint)
		} else {
			that.thesaurusMessage = fmt.Sprintf("Hint: A word with a similar meaning is '%s' (length: %d).", hint, len(hint))
		}
		that.score -= that.rules.ThesaurusHintCost
		that.thesaurusConsumed = true
	}

	that.publishLocked()

	return that.snapshotLocked()
}
