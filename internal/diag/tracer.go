// Package diag provides colored console diagnostics for the scan
// orchestrator: which path (pruned / sorted / dictionary / generic) each
// chunk took, mirroring the teacher's use of github.com/fatih/color for
// ad-hoc terminal highlighting in chunk_thread_processor.go and
// filters/filter_vector_of_values.go.
package diag

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/fatih/color"

	"columnscan/orchestrator"
)

// Tracer accumulates a colored, human-readable trace of an orchestrator
// scan's per-chunk path decisions, and logs each one at debug level via
// log/slog, matching the teacher's worker lifecycle logging. The
// orchestrator runs one goroutine per chunk (spec §5), so Trace is called
// concurrently across chunks; a mutex guards the accumulated lines.
type Tracer struct {
	logger *slog.Logger
	mu     sync.Mutex
	lines  []string
}

// NewTracer builds a Tracer; a nil logger falls back to slog.Default().
func NewTracer(logger *slog.Logger) *Tracer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracer{logger: logger}
}

// Trace is an orchestrator.Trace callback: pass t.Trace as Options.Trace
// to collect a colored per-chunk report of the scan.
func (t *Tracer) Trace(chunkID uint32, path orchestrator.Path) {
	t.logger.Debug("chunk scan path", "chunk_id", chunkID, "path", path.String())

	var paint func(format string, a ...any) string
	switch path {
	case orchestrator.PathPruned:
		paint = color.GreenString
	case orchestrator.PathSorted:
		paint = color.CyanString
	case orchestrator.PathDictionary:
		paint = color.YellowString
	default:
		paint = color.RedString
	}
	line := fmt.Sprintf("chunk %d: %s", chunkID, paint(path.String()))

	t.mu.Lock()
	t.lines = append(t.lines, line)
	t.mu.Unlock()
}

// Report returns the accumulated colored lines. Since the orchestrator
// scans chunks concurrently, lines may arrive in any order — callers that
// care about a particular chunk's line should search by its "chunk %d: "
// prefix rather than assume chunk order.
func (t *Tracer) Report() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, len(t.lines))
	copy(out, t.lines)
	return out
}

// Reset clears the accumulated report, so one Tracer can be reused across
// successive scans without mixing their output.
func (t *Tracer) Reset() {
	t.mu.Lock()
	t.lines = t.lines[:0]
	t.mu.Unlock()
}
