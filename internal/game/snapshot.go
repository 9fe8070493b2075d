package game

// Snapshot is the immutable view of the session published on every state
// transition. The secret word is exposed only once the round is over.
type Snapshot struct {
	Status       Status `json:"status"`
	Score        int    `json:"score"`
	AttemptsLeft int    `json:"attempts_left"`
	SecretWord   string `json:"secret_word,omitempty"`

	CurrentGuess  string `json:"current_guess"`
	LetterToCheck string `json:"letter_to_check"`
	Feedback      string `json:"feedback,omitempty"`
	Error         string `json:"error,omitempty"`

	LetterOccurrenceMessage string `json:"letter_occurrence_message,omitempty"`
	WordLengthMessage       string `json:"word_length_message,omitempty"`
	WordLengthHintUsed      bool   `json:"word_length_hint_used"`
	ThesaurusMessage        string `json:"thesaurus_message,omitempty"`
	ThesaurusHintUsed       bool   `json:"thesaurus_hint_used"`
	ThesaurusHintLoading    bool   `json:"thesaurus_hint_loading"`

	Elapsed          string `json:"elapsed"`
	TimeTakenSeconds int64  `json:"time_taken_seconds"`
}

func (that *Session) snapshotLocked() Snapshot {
	snapshot := Snapshot{
		Status:       that.status,
		Score:        that.score,
		AttemptsLeft: that.attemptsLeft,

		CurrentGuess:  that.currentGuess,
		LetterToCheck: that.letterToCheck,
		Feedback:      that.feedback,
		Error:         that.errMessage,

		LetterOccurrenceMessage: that.letterOccurrenceMessage,
		WordLengthMessage:       that.wordLengthMessage,
		WordLengthHintUsed:      that.wordLengthConsumed,
		ThesaurusMessage:        that.thesaurusMessage,
		ThesaurusHintUsed:       that.thesaurusConsumed,
		ThesaurusHintLoading:    that.thesaurusLoading,

		Elapsed:          that.elapsedDisplay,
		TimeTakenSeconds: that.timeTakenSeconds,
	}

	if that.status == StatusWon || that.status == StatusLost {
		snapshot.SecretWord = that.secretWord
	}

	return snapshot
}

// publishLocked fans the current snapshot out to subscribers without
// blocking; a full subscriber buffer drops the intermediate snapshot.
func (that *Session) publishLocked() {
	snapshot := that.snapshotLocked()
	for _, updates := range that.subscribers {
		select {
		case updates <- snapshot:
		default:
		}
	}
}
