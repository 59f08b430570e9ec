package engine

import (
	"context"
	"errors"
	"time"
)

// ErrTimeout is wrapped by every Session method that ran out of time.
var ErrTimeout = errors.New("engine: timed out")

// Session is one exclusively-owned browser instance. It is not safe for
// concurrent use: a run drives a single session from start to finish.
type Session interface {
	// Navigate loads url and waits for the load event, bounded by timeout.
	Navigate(ctx context.Context, url string, timeout time.Duration) error

	// Location returns the address of the current document.
	Location(ctx context.Context) (string, error)

	// HTML returns the rendered DOM of the current document.
	HTML(ctx context.Context) (string, error)

	// WaitInnerHTML waits up to timeout for the first element matching
	// selector and returns its inner markup.
	WaitInnerHTML(ctx context.Context, selector string, timeout time.Duration) (string, error)

	// Close releases the browser. It is safe to call more than once.
	Close() error
}

// Launcher starts fresh sessions.
type Launcher interface {
	Launch(ctx context.Context) (Session, error)
}
