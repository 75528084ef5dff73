package monitoring

import (
	"sync"
	"time"

	"github.com/mfbridge/mfbridge/bridge"
	"github.com/mfbridge/mfbridge/sim"
)

// A ProgressBar tracks how far a bounded run has come.
type ProgressBar struct {
	sync.Mutex
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	StartTime  time.Time `json:"start_time"`
	Total      uint64    `json:"total"`
	Finished   uint64    `json:"finished"`
	InProgress uint64    `json:"in_progress"`
}

// IncrementInProgress adds the number of in-progress element.
func (b *ProgressBar) IncrementInProgress(amount uint64) {
	b.Lock()
	defer b.Unlock()

	b.InProgress += amount
}

// IncrementFinished add a certain amount to finished element.
func (b *ProgressBar) IncrementFinished(amount uint64) {
	b.Lock()
	defer b.Unlock()

	b.Finished += amount
}

// Func makes a ProgressBar a bridge hook that counts polled frames.
func (b *ProgressBar) Func(ctx sim.HookCtx) {
	if ctx.Pos == bridge.HookPosFramePolled {
		b.IncrementFinished(1)
	}
}

// Done reports whether every element has finished.
func (b *ProgressBar) Done() bool {
	b.Lock()
	defer b.Unlock()

	return b.Total > 0 && b.Finished >= b.Total
}
