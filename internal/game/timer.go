package game

import (
	"context"
	"fmt"
	"time"
)

// startTimerLocked arms the per-second round clock. A fresh timer is created
// for every round; none survives across rounds.
func (that *Session) startTimerLocked() {
	that.stopTimerLocked()

	ctx, cancel := context.WithCancel(context.Background())
	that.stopTick = cancel
	that.startedAt = that.now()
	that.elapsedDisplay = "00:00"

	go that.runTimer(ctx)
}

// stopTimerLocked cancels the round clock. Safe to call when no timer runs.
func (that *Session) stopTimerLocked() {
	if that.stopTick != nil {
		that.stopTick()
		that.stopTick = nil
	}
}

func (that *Session) runTimer(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			that.mu.Lock()
			if that.status != StatusPlaying {
				that.mu.Unlock()
				return
			}
			that.elapsedDisplay = formatElapsed(that.now().Sub(that.startedAt))
			that.publishLocked()
			that.mu.Unlock()
		}
	}
}

func formatElapsed(elapsed time.Duration) string {
	totalSeconds := int64(elapsed / time.Second)
	return fmt.Sprintf("%02d:%02d", totalSeconds/60%60, totalSeconds%60)
}
