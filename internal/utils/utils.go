// Package utils holds small helpers shared by the CLI and the AI client.
package utils

import (
	"context"
	"strings"
	"time"
)

// newTimer is replaced in tests.
var newTimer = func(d time.Duration) (<-chan time.Time, func() bool) {
	t := time.NewTimer(d)
	return t.C, t.Stop
}

// WaitFor blocks for d or until ctx is done. It returns ctx.Err() when the
// context ends first.
func WaitFor(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	fired, stop := newTimer(d)
	defer stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-fired:
		return nil
	}
}

// Truncate folds whitespace runs into single spaces and cuts s to limit
// runes, appending "..." when something was cut. A non-positive limit
// yields "".
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return strings.TrimRight(string(runes[:limit]), " ") + "..."
}
