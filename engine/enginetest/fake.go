// Package enginetest provides in-memory engine doubles for tests.
package enginetest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/use-agent/kanoon/engine"
)

// Page is a canned document served by Session.
type Page struct {
	// HTML is returned by Session.HTML.
	HTML string

	// Location overrides the address reported after navigating here,
	// e.g. to simulate a redirect.
	Location string

	// Content is the inner markup of the waited-for container. An empty
	// Content makes WaitInnerHTML time out.
	Content string

	NavErr  error
	WaitErr error

	// Panic makes Navigate panic with this value.
	Panic any
}

// Session is an in-memory engine.Session.
type Session struct {
	mu      sync.Mutex
	pages   map[string]Page
	current string

	Visited    []string
	CloseCalls int
}

var _ engine.Session = (*Session)(nil)

// NewSession returns a Session serving pages keyed by URL.
func NewSession(pages map[string]Page) *Session {
	return &Session{pages: pages}
}

func (s *Session) Navigate(_ context.Context, url string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Visited = append(s.Visited, url)
	p, ok := s.pages[url]
	if !ok {
		return fmt.Errorf("navigate: no page for %s", url)
	}
	if p.Panic != nil {
		panic(p.Panic)
	}
	if p.NavErr != nil {
		return p.NavErr
	}
	s.current = url
	return nil
}

func (s *Session) Location(context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if loc := s.pages[s.current].Location; loc != "" {
		return loc, nil
	}
	return s.current, nil
}

func (s *Session) HTML(context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.pages[s.current].HTML, nil
}

func (s *Session) WaitInnerHTML(_ context.Context, selector string, _ time.Duration) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.pages[s.current]
	if p.WaitErr != nil {
		return "", p.WaitErr
	}
	if p.Content == "" {
		return "", fmt.Errorf("wait for %q: %w", selector, engine.ErrTimeout)
	}
	return p.Content, nil
}

func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.CloseCalls++
	return nil
}

// Closed reports whether Close was called at least once.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.CloseCalls > 0
}

// Launcher hands out a single Session, or fails with Err.
type Launcher struct {
	Session *Session
	Err     error

	mu       sync.Mutex
	launches int
}

var _ engine.Launcher = (*Launcher)(nil)

func (l *Launcher) Launch(context.Context) (engine.Session, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.launches++
	if l.Err != nil {
		return nil, l.Err
	}
	return l.Session, nil
}

// Launches returns how many sessions were requested.
func (l *Launcher) Launches() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.launches
}
