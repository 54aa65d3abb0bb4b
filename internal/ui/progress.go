package ui

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/getmanga/getmanga/internal/util"
)

// ProgressManager renders one bar per chapter on stdout.
type ProgressManager struct {
	p *mpb.Progress
}

func NewProgressManager() *ProgressManager {
	return &ProgressManager{
		p: mpb.New(
			mpb.WithWidth(52),
			mpb.WithOutput(os.Stdout),
			mpb.WithRefreshRate(120*time.Millisecond),
		),
	}
}

// Wait blocks until all registered bars have finished rendering.
func (pm *ProgressManager) Wait() {
	pm.p.Wait()
}

// Register creates the bar for one chapter, labeled with its name.
func (pm *ProgressManager) Register(label string) *ProgressHandle {
	h := &ProgressHandle{start: time.Now()}

	h.bar = pm.p.New(
		0,
		mpb.BarStyle().Rbound("]"),
		mpb.PrependDecorators(
			decor.Name(label+"  "),
		),
		mpb.AppendDecorators(
			decor.Percentage(decor.WCSyncWidth),
			decor.CountersNoUnit(" | page %d of %d", decor.WCSyncWidth),
			decor.Any(func(_ decor.Statistics) string {
				return " | " + util.Human(h.bytes.Load())
			}),
			decor.Any(func(_ decor.Statistics) string {
				if h.final.Load() {
					return fmt.Sprintf(" | %ds", h.elapsed.Load())
				}
				return fmt.Sprintf(" | %ds", int(time.Since(h.start).Seconds()))
			}),
		),
	)

	return h
}

// ProgressHandle is the sink for one chapter's page-collection progress. A
// bar only renders its completion state through Done, so a failed chapter
// never shows as finished.
type ProgressHandle struct {
	bar   *mpb.Bar
	start time.Time

	total   atomic.Int64
	bytes   atomic.Int64
	elapsed atomic.Int64
	final   atomic.Bool
}

func (h *ProgressHandle) Update(done, total int, bytes int64) {
	if h.final.Load() {
		return
	}

	if total > 0 {
		h.total.Store(int64(total))
		h.bar.SetTotal(int64(total), false)
	}
	h.bytes.Store(bytes)
	h.bar.SetCurrent(int64(done))
}

func (h *ProgressHandle) Done() {
	if h.final.Swap(true) {
		return
	}

	h.elapsed.Store(int64(time.Since(h.start).Seconds()))
	h.bar.SetCurrent(h.total.Load())
	h.bar.SetTotal(h.total.Load(), true)
}

// Abandon drops an unfinished bar so the manager's Wait does not hang on a
// failed chapter.
func (h *ProgressHandle) Abandon() {
	if h.final.Swap(true) {
		return
	}
	h.bar.Abort(false)
}
