package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/wordguess-backend/internal/entity"
)

type fakeLocalBoard struct {
	mu           sync.Mutex
	entries      []entity.ScoreEntry
	qualifies    bool
	qualifiesErr error
	appendErr    error
	listErr      error
}

func (that *fakeLocalBoard) Append(_ context.Context, entry entity.ScoreEntry) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.appendErr != nil {
		return that.appendErr
	}
	that.entries = append(that.entries, entry)

	return nil
}

func (that *fakeLocalBoard) ListAll(_ context.Context) ([]entity.ScoreEntry, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.entries, that.listErr
}

func (that *fakeLocalBoard) Qualifies(_ context.Context, _ int, _ int64) (bool, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.qualifies, that.qualifiesErr
}

func (that *fakeLocalBoard) appended() []entity.ScoreEntry {
	that.mu.Lock()
	defer that.mu.Unlock()

	entries := make([]entity.ScoreEntry, len(that.entries))
	copy(entries, that.entries)

	return entries
}

type fakeRemoteBoard struct {
	mu            sync.Mutex
	submitMessage string
	submitErr     error
	submitCalls   int

	fetchEntries []entity.RemoteScoreEntry
	fetchErr     error
	fetchCalls   int
	lastLimit    int
	fetchGate    chan struct{}
}

func (that *fakeRemoteBoard) SubmitScore(_ context.Context, _ string, _ int, _ int64) (string, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.submitCalls++

	return that.submitMessage, that.submitErr
}

func (that *fakeRemoteBoard) GetLeaderboard(_ context.Context, limit int) ([]entity.RemoteScoreEntry, error) {
	that.mu.Lock()
	that.fetchCalls++
	that.lastLimit = limit
	gate := that.fetchGate
	that.mu.Unlock()

	if gate != nil {
		<-gate
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	return that.fetchEntries, that.fetchErr
}

func (that *fakeRemoteBoard) submittedTimes() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.submitCalls
}

func (that *fakeRemoteBoard) fetchedTimes() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.fetchCalls
}

type fixedNames string

func (that fixedNames) Current() string { return string(that) }

func newTestLeaderboard(local *fakeLocalBoard, remote *fakeRemoteBoard) LeaderboardService {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	return NewLeaderboardService(logger, local, remote, fixedNames("Ada"))
}

func waitForStatus(t *testing.T, svc LeaderboardService, want entity.SubmissionStatus) entity.SubmissionState {
	t.Helper()

	require.Eventually(t, func() bool {
		return svc.SubmissionState().Status == want
	}, time.Second, 5*time.Millisecond)

	return svc.SubmissionState()
}

func TestLeaderboardService_RecordResult(t *testing.T) {
	ctx := context.Background()

	t.Run("Qualifying score is stored locally and pushed to the shared board", func(t *testing.T) {
		// Given: a local board that accepts the score
		local := &fakeLocalBoard{qualifies: true}
		remote := &fakeRemoteBoard{submitMessage: "Score submitted successfully!"}
		svc := newTestLeaderboard(local, remote)

		// When: a won round is recorded
		qualified := svc.RecordResult(ctx, 90, 65)

		// Then: the local write happened with the current player name
		assert.True(t, qualified)
		entries := local.appended()
		require.Len(t, entries, 1)
		assert.Equal(t, "Ada", entries[0].PlayerName)
		assert.Equal(t, 90, entries[0].Score)
		assert.EqualValues(t, 65, entries[0].TimeTakenSeconds)
		assert.NotEmpty(t, entries[0].ID)

		// Then: the background submission lands exactly once
		state := waitForStatus(t, svc, entity.SubmissionSubmitted)
		assert.Equal(t, "Score submitted successfully!", state.Message)
		assert.Equal(t, 1, remote.submittedTimes())
	})

	t.Run("Non-qualifying score skips the local board but still submits", func(t *testing.T) {
		local := &fakeLocalBoard{qualifies: false}
		remote := &fakeRemoteBoard{}
		svc := newTestLeaderboard(local, remote)

		qualified := svc.RecordResult(ctx, 10, 300)

		assert.False(t, qualified)
		assert.Empty(t, local.appended())

		waitForStatus(t, svc, entity.SubmissionSubmitted)
		assert.Equal(t, 1, remote.submittedTimes())
	})

	t.Run("Local write failure is reported as not qualified", func(t *testing.T) {
		local := &fakeLocalBoard{qualifies: true, appendErr: errors.New("storage offline")}
		remote := &fakeRemoteBoard{}
		svc := newTestLeaderboard(local, remote)

		qualified := svc.RecordResult(ctx, 90, 65)

		assert.False(t, qualified)
		waitForStatus(t, svc, entity.SubmissionSubmitted)
	})

	t.Run("Failed remote submission moves the status to error", func(t *testing.T) {
		local := &fakeLocalBoard{}
		remote := &fakeRemoteBoard{submitErr: errors.New("board unreachable")}
		svc := newTestLeaderboard(local, remote)

		svc.RecordResult(ctx, 90, 65)

		state := waitForStatus(t, svc, entity.SubmissionFailed)
		assert.Equal(t, "board unreachable", state.Message)
	})
}

func TestLeaderboardService_Submission(t *testing.T) {
	ctx := context.Background()

	t.Run("Second record without a reset never submits twice", func(t *testing.T) {
		// Given: a round already submitted to the shared board
		local := &fakeLocalBoard{}
		remote := &fakeRemoteBoard{submitMessage: "first"}
		svc := newTestLeaderboard(local, remote)

		svc.RecordResult(ctx, 80, 50)
		waitForStatus(t, svc, entity.SubmissionSubmitted)

		// When: another result arrives before the next round resets the gate
		svc.RecordResult(ctx, 95, 40)

		// Then: the earlier submission stands untouched
		time.Sleep(50 * time.Millisecond)
		assert.Equal(t, 1, remote.submittedTimes())
		assert.Equal(t, "first", svc.SubmissionState().Message)
	})

	t.Run("Reset rearms the gate for the next round", func(t *testing.T) {
		local := &fakeLocalBoard{}
		remote := &fakeRemoteBoard{}
		svc := newTestLeaderboard(local, remote)

		svc.RecordResult(ctx, 80, 50)
		waitForStatus(t, svc, entity.SubmissionSubmitted)

		// When: the gate is reset and a new result is recorded
		svc.ResetSubmission()
		assert.Equal(t, entity.SubmissionIdle, svc.SubmissionState().Status)

		svc.RecordResult(ctx, 85, 45)

		// Then: a second submission goes out
		waitForStatus(t, svc, entity.SubmissionSubmitted)
		assert.Equal(t, 2, remote.submittedTimes())
	})
}

func TestLeaderboardService_RefreshGlobalScores(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores the fetched entries", func(t *testing.T) {
		// Given: a remote board with two entries
		remote := &fakeRemoteBoard{fetchEntries: []entity.RemoteScoreEntry{
			{ID: "1", PlayerName: "Ada", Score: 95},
			{ID: "2", PlayerName: "Bo", Score: 80},
		}}
		svc := newTestLeaderboard(&fakeLocalBoard{}, remote)

		// When: the view is refreshed
		view := svc.RefreshGlobalScores(ctx, 20)

		// Then: the view carries the entries and the cache agrees
		require.Len(t, view.Entries, 2)
		assert.False(t, view.Loading)
		assert.Empty(t, view.Error)
		assert.Equal(t, view.Entries, svc.GlobalScores().Entries)
	})

	t.Run("Non-positive limit falls back to the default", func(t *testing.T) {
		remote := &fakeRemoteBoard{}
		svc := newTestLeaderboard(&fakeLocalBoard{}, remote)

		svc.RefreshGlobalScores(ctx, 0)

		assert.Equal(t, defaultGlobalFetchLimit, remote.lastLimit)
	})

	t.Run("Fetch failure keeps the previous entries and records the error", func(t *testing.T) {
		// Given: a view populated by a successful fetch
		remote := &fakeRemoteBoard{fetchEntries: []entity.RemoteScoreEntry{{ID: "1", Score: 95}}}
		svc := newTestLeaderboard(&fakeLocalBoard{}, remote)
		require.Len(t, svc.RefreshGlobalScores(ctx, 10).Entries, 1)

		// When: the next fetch fails
		remote.mu.Lock()
		remote.fetchErr = errors.New("board unreachable")
		remote.mu.Unlock()
		view := svc.RefreshGlobalScores(ctx, 10)

		// Then: the stale entries survive alongside the error
		assert.Equal(t, "board unreachable", view.Error)
		require.Len(t, view.Entries, 1)
	})

	t.Run("Refresh during an in-flight fetch is a no-op", func(t *testing.T) {
		// Given: a fetch blocked mid-flight
		gate := make(chan struct{})
		remote := &fakeRemoteBoard{fetchGate: gate}
		svc := newTestLeaderboard(&fakeLocalBoard{}, remote)

		done := make(chan struct{})
		go func() {
			svc.RefreshGlobalScores(ctx, 10)
			close(done)
		}()

		require.Eventually(t, func() bool {
			return remote.fetchedTimes() == 1
		}, time.Second, 5*time.Millisecond)

		// When: a second refresh arrives while the first is still running
		view := svc.RefreshGlobalScores(ctx, 10)

		// Then: it returns the loading view without a second request
		assert.True(t, view.Loading)
		assert.Equal(t, 1, remote.fetchedTimes())

		close(gate)
		<-done
	})
}
