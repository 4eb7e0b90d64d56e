// internal/game/session.go
package game

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Session owns one Game and serializes all access to it through a single
// worker goroutine. Handlers never touch the Game directly; they submit
// closures and the worker applies them one at a time, so the aggregate
// needs no locking of its own.
type Session struct {
	Game *Game

	reqs chan func(*Game)
	quit chan struct{}
	once sync.Once
}

// NewSession wraps a game and starts its worker.
func NewSession(g *Game) *Session {
	s := &Session{
		Game: g,
		reqs: make(chan func(*Game), 32),
		quit: make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *Session) run() {
	for {
		select {
		case fn := <-s.reqs:
			fn(s.Game)
		case <-s.quit:
			return
		}
	}
}

// submit schedules fn on the worker and waits for it to finish.
func (s *Session) submit(ctx context.Context, fn func(*Game)) error {
	done := make(chan struct{})
	wrapped := func(g *Game) {
		fn(g)
		close(done)
	}
	select {
	case s.reqs <- wrapped:
	case <-s.quit:
		return invalidActionf("session closed")
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-done:
		return nil
	case <-s.quit:
		return invalidActionf("session closed")
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Do applies one action on the worker. The returned error is the engine's
// verdict and belongs to the acting connection only.
func (s *Session) Do(ctx context.Context, a Action) error {
	var actErr error
	if err := s.submit(ctx, func(g *Game) {
		actErr = g.DoAction(a)
	}); err != nil {
		return err
	}
	return actErr
}

// View captures a snapshot for one viewer, serialized like any mutation.
func (s *Session) View(ctx context.Context, forUser uuid.UUID) (State, error) {
	var st State
	if err := s.submit(ctx, func(g *Game) {
		st = g.GetState(forUser)
	}); err != nil {
		return State{}, err
	}
	return st, nil
}

// Players reports the seated player count at the time of the call.
func (s *Session) Players(ctx context.Context) (int, error) {
	var n int
	if err := s.submit(ctx, func(g *Game) {
		n = g.NumberOfUserPlayers()
	}); err != nil {
		return 0, err
	}
	return n, nil
}

// Close stops the worker. Idempotent; in-flight submissions fail with a
// session-closed error.
func (s *Session) Close() {
	s.once.Do(func() { close(s.quit) })
}
