// internal/handlers/api_server.go
package handlers

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/playscrew/screw/internal/cache"
	"github.com/playscrew/screw/internal/database"
	"github.com/playscrew/screw/internal/game"
)

// SessionServer owns the session store and the per-session WebSocket
// connection registry. Engine callbacks fan events out through it.
type SessionServer struct {
	Logger *logrus.Logger
	Store  *game.SessionStore

	mu    sync.Mutex
	conns map[uuid.UUID]map[uuid.UUID]*websocket.Conn
}

func NewSessionServer(logger *logrus.Logger) *SessionServer {
	return &SessionServer{
		Logger: logger,
		Store:  game.NewSessionStore(),
		conns:  make(map[uuid.UUID]map[uuid.UUID]*websocket.Conn),
	}
}

// CreateSession builds a game, wires the engine callbacks and registers
// the session in the store.
func (s *SessionServer) CreateSession(maxPlayers int) (*game.Session, error) {
	g, err := game.NewGame(maxPlayers, rand.New(rand.NewSource(time.Now().UnixNano())))
	if err != nil {
		return nil, err
	}
	sess := game.NewSession(g)
	sessionID := g.ID

	g.EmitFn = func(ev game.Event) {
		s.broadcast(sessionID, ev)
		if ev.Type == game.EventGameEnded {
			s.persistFinalState(sess, sessionID)
		}
	}
	g.EmitToUserFn = func(userID uuid.UUID, ev game.Event) {
		s.sendToUser(sessionID, userID, ev)
	}
	g.OnAction = func(rec game.ActionRecord) {
		// Synchronous on the session worker so the journal keeps the
		// engine's ordering.
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := cache.PublishActionRecord(ctx, rec); err != nil {
			s.Logger.Warnf("failed to journal action %s for session %s: %v", rec.Code, sessionID, err)
		}
	}

	s.Store.Add(sess)
	s.Logger.Infof("created session %s with %d seats", sessionID, maxPlayers)
	return sess, nil
}

// persistFinalState stores a closing spectator snapshot. Runs off the
// worker goroutine because View has to go through it.
func (s *SessionServer) persistFinalState(sess *game.Session, sessionID uuid.UUID) {
	go func() {
		if database.DB == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		st, err := sess.View(ctx, uuid.Nil)
		if err != nil {
			s.Logger.Warnf("failed to snapshot ended session %s: %v", sessionID, err)
			return
		}
		if err := database.StoreFinalSessionState(ctx, sessionID, st); err != nil {
			s.Logger.Warnf("failed to persist final state for session %s: %v", sessionID, err)
		}
	}()
}

func (s *SessionServer) registerConn(sessionID, userID uuid.UUID, c *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conns[sessionID] == nil {
		s.conns[sessionID] = make(map[uuid.UUID]*websocket.Conn)
	}
	s.conns[sessionID][userID] = c
}

func (s *SessionServer) dropConn(sessionID, userID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conns[sessionID], userID)
	if len(s.conns[sessionID]) == 0 {
		delete(s.conns, sessionID)
	}
}

// broadcast sends an event to every connection attached to the session.
// Writes happen on a separate goroutine so the engine never blocks on a
// slow client.
func (s *SessionServer) broadcast(sessionID uuid.UUID, ev game.Event) {
	s.mu.Lock()
	targets := make([]*websocket.Conn, 0, len(s.conns[sessionID]))
	for _, c := range s.conns[sessionID] {
		targets = append(targets, c)
	}
	s.mu.Unlock()

	go func() {
		for _, c := range targets {
			sendWsMessage(context.Background(), c, wsEvent{Type: "event", Event: ev})
		}
	}()
}

// sendToUser delivers a private event to one user's connection only.
func (s *SessionServer) sendToUser(sessionID, userID uuid.UUID, ev game.Event) {
	s.mu.Lock()
	c := s.conns[sessionID][userID]
	s.mu.Unlock()
	if c == nil {
		return
	}
	go sendWsMessage(context.Background(), c, wsEvent{Type: "event", Event: ev})
}

// wsEvent is the outbound envelope for engine events.
type wsEvent struct {
	Type  string     `json:"type"`
	Event game.Event `json:"event"`
}
