package transform

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// progressBar renders an in-place progress bar for a batch. Workers report
// finished points with Add from any goroutine.
type progressBar struct {
	w         io.Writer
	total     int64
	processed atomic.Int64
	barWidth  int
	start     time.Time
	done      chan struct{}
	stopped   sync.WaitGroup
	mu        sync.Mutex
}

func newProgressBar(w io.Writer, total int64) *progressBar {
	pb := &progressBar{
		w:        w,
		total:    total,
		barWidth: 30,
		start:    time.Now(),
		done:     make(chan struct{}),
	}
	pb.stopped.Add(1)
	go pb.run()
	return pb
}

func (pb *progressBar) Add(n int) {
	pb.processed.Add(int64(n))
}

// Finish stops the refresh loop and draws the final state.
func (pb *progressBar) Finish() {
	close(pb.done)
	pb.stopped.Wait()
	pb.draw()
	fmt.Fprint(pb.w, "\n")
}

func (pb *progressBar) run() {
	defer pb.stopped.Done()
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-pb.done:
			return
		case <-ticker.C:
			pb.draw()
		}
	}
}

func (pb *progressBar) draw() {
	pb.mu.Lock()
	defer pb.mu.Unlock()

	processed := pb.processed.Load()
	frac := 1.0
	if pb.total > 0 {
		frac = min(float64(processed)/float64(pb.total), 1)
	}
	filled := int(float64(pb.barWidth) * frac)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", pb.barWidth-filled)

	elapsed := time.Since(pb.start)
	rate := float64(0)
	if secs := elapsed.Seconds(); secs > 0 {
		rate = float64(processed) / secs
	}
	fmt.Fprintf(pb.w, "\rtransform [%s] %3.0f%%  %d/%d points  %.0f/s  %s\033[K",
		bar, frac*100, processed, pb.total, rate, formatDuration(elapsed))
}

// formatDuration formats a duration concisely (e.g. "1m23s", "45s", "0s").
func formatDuration(d time.Duration) string {
	d = d.Truncate(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) - m*60
	return fmt.Sprintf("%dm%02ds", m, s)
}
