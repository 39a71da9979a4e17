// Package progress prints progress for long-running fetches.
package progress

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Indicator provides progress indication for long-running operations.
type Indicator struct {
	enabled    bool
	message    string
	total      int
	current    int
	startTime  time.Time
	lastUpdate time.Time
}

// WithTotal creates a progress indicator with a known total.
func WithTotal(message string, total int, quiet bool) *Indicator {
	return &Indicator{
		enabled:   !quiet,
		message:   message,
		total:     total,
		startTime: time.Now(),
	}
}

// Start begins the progress indication.
func (p *Indicator) Start() {
	if !p.enabled {
		return
	}
	p.startTime = time.Now()
	p.lastUpdate = p.startTime
	fmt.Fprintf(os.Stderr, "%s...\n", p.message)
}

// Update increments progress and shows current status.
func (p *Indicator) Update(current int) {
	if !p.enabled {
		return
	}

	p.current = current
	now := time.Now()

	// Only redraw every 100ms to avoid flickering
	if now.Sub(p.lastUpdate) < 100*time.Millisecond && current < p.total {
		return
	}
	p.lastUpdate = now

	if p.total <= 0 {
		fmt.Fprintf(os.Stderr, "\r%s (%d processed)", p.message, current)
		return
	}

	percentage := float64(current) / float64(p.total) * 100
	fmt.Fprintf(os.Stderr, "\r%s [%s] %d/%d (%.1f%%)",
		p.message, bar(percentage), current, p.total, percentage)
}

// Finish completes the progress indication.
func (p *Indicator) Finish() {
	if !p.enabled {
		return
	}
	elapsed := time.Since(p.startTime)
	fmt.Fprintf(os.Stderr, "\r%s done: %d items in %s\n",
		p.message, p.current, formatDuration(elapsed))
}

// FinishWithError completes the progress indication with an error.
func (p *Indicator) FinishWithError(err error) {
	if !p.enabled {
		return
	}
	elapsed := time.Since(p.startTime)
	fmt.Fprintf(os.Stderr, "\r%s failed after %s: %v\n",
		p.message, formatDuration(elapsed), err)
}

func bar(percentage float64) string {
	const width = 30
	filled := int(percentage / 100.0 * width)

	var b strings.Builder
	for i := 0; i < width; i++ {
		if i < filled {
			b.WriteString("█")
		} else {
			b.WriteString("░")
		}
	}
	return b.String()
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return fmt.Sprintf("%.1fm", d.Minutes())
	}
}
