package barchart

import (
	"fmt"
	"time"
)

// debugStats holds per-frame timing and draw-call metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	traverseTime  time.Duration
	submitTime    time.Duration
	commandCount  int
	drawCallCount int
}

// debugLog logs timing and draw-call stats at debug level.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	s.logger.Debug("frame",
		"traverse", stats.traverseTime,
		"submit", stats.submitTime,
		"total", stats.traverseTime+stats.submitTime,
		"faces", stats.commandCount,
		"draw_calls", stats.drawCallCount,
	)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. In release mode callers skip this entirely.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("barchart debug: %s on disposed node %q", op, n.Name))
	}
}

// debugMaxChildCount is the child count above which a warning is logged.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		globalLogger.Warn("too many children", "node", n.Name, "children", len(n.children), "threshold", debugMaxChildCount)
	}
}
