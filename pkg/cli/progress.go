package cli

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// ProgressReporter reports progress for long-running imports. Registry dumps
// are streamed, so the total object count is unknown up front; reporting is
// count-based rather than percentage-based.
type ProgressReporter interface {
	Start()
	Increment()
	Finish()
	Error(err error)
}

// SimpleProgress implements a simple text-based progress reporter.
type SimpleProgress struct {
	mu       sync.Mutex
	count    int64
	started  time.Time
	rendered time.Time
	writer   io.Writer
}

// renderInterval limits terminal updates for large dumps.
const renderInterval = 250 * time.Millisecond

// NewProgressReporter creates a new progress reporter that writes to w.
// If w is nil, it defaults to os.Stderr.
func NewProgressReporter(w io.Writer) ProgressReporter {
	if w == nil {
		w = os.Stderr
	}
	return &SimpleProgress{
		writer: w,
	}
}

// Start initializes the progress reporter.
func (p *SimpleProgress) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.count = 0
	p.started = time.Now()
	p.render()
}

// Increment counts one processed object.
func (p *SimpleProgress) Increment() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.count++
	if time.Since(p.rendered) >= renderInterval {
		p.render()
	}
}

// Finish renders the final count.
func (p *SimpleProgress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.render()
	fmt.Fprintln(p.writer)
}

// Error reports an error during progress.
func (p *SimpleProgress) Error(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.writer, "\n✗ Error: %v\n", err)
}

func (p *SimpleProgress) render() {
	elapsed := time.Since(p.started)
	rate := float64(0)
	if elapsed > 0 {
		rate = float64(p.count) / elapsed.Seconds()
	}

	fmt.Fprintf(p.writer, "\rProcessed %d objects (%.0f obj/s)", p.count, rate)
	p.rendered = time.Now()
}
