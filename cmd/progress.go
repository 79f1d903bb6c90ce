package cmd

import (
	"fmt"
	"hytalebackup/internal/progress"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

const renderTick = 100 * time.Millisecond

// progressView draws tracker snapshots as a terminal progress bar. The bar is
// created once the total is known.
type progressView struct {
	w           io.Writer
	description string
	bar         *progressbar.ProgressBar
	max         int
}

func newProgressView(w io.Writer, description string) *progressView {
	return &progressView{w: w, description: description}
}

func (v *progressView) render(s progress.Snapshot) {
	if s.Total <= 0 {
		return
	}
	if v.bar == nil {
		v.bar = progressbar.NewOptions(s.Total,
			progressbar.OptionSetDescription(v.description),
			progressbar.OptionSetWriter(v.w),
			progressbar.OptionSetWidth(40),
			progressbar.OptionThrottle(renderTick),
			progressbar.OptionShowCount(),
			progressbar.OptionSetRenderBlankState(true),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionSetPredictTime(false),
		)
	}
	if s.Total != v.max {
		v.max = s.Total
		v.bar.ChangeMax(s.Total)
	}
	if s.CurrentItem != "" {
		v.bar.Describe(fmt.Sprintf("%s %s", v.description, s.CurrentItem))
	}
	_ = v.bar.Set(s.Completed)
}

func (v *progressView) finish() {
	if v.bar == nil {
		return
	}
	_ = v.bar.Finish()
	fmt.Fprintln(v.w)
}

// pollTransfer renders the tracker until done is closed. repaint carries
// update hints from the worker; the ticker covers missed hints.
func pollTransfer(tracker *progress.Tracker, done <-chan struct{}, repaint <-chan struct{}, view *progressView) {
	ticker := time.NewTicker(renderTick)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			view.render(tracker.Snapshot())
			view.finish()
			return
		case <-repaint:
			view.render(tracker.Snapshot())
		case <-ticker.C:
			view.render(tracker.Snapshot())
		}
	}
}
