// internal/handlers/game_ws.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/playscrew/screw/internal/database"
	"github.com/playscrew/screw/internal/game"
	"github.com/playscrew/screw/internal/middleware"
)

// wsRequest is one inbound client message. Card references use the opaque
// card ids from snapshots and events.
type wsRequest struct {
	Action      string `json:"action"`
	Seat        *int   `json:"playerId,omitempty"`
	CardID      string `json:"cardId,omitempty"`
	OtherSeat   *int   `json:"otherPlayerId,omitempty"`
	OtherCardID string `json:"otherCardId,omitempty"`
}

// SessionWSHandler upgrades the connection for one session, authenticates
// the user and runs the read loop. Every message becomes one engine
// action; rejections go back to this connection only.
// Route: /session/ws/{session_id}
func SessionWSHandler(logger *logrus.Logger, s *SessionServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idStr := strings.TrimPrefix(r.URL.Path, "/session/ws/")
		if i := strings.Index(idStr, "/"); i >= 0 {
			idStr = idStr[:i]
		}
		sessionID, err := uuid.Parse(idStr)
		if err != nil {
			http.Error(w, "invalid session_id format", http.StatusBadRequest)
			return
		}

		sess, ok := s.Store.Get(sessionID)
		if !ok {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}

		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			Subprotocols:   []string{"screw"},
			OriginPatterns: []string{"*"},
		})
		if err != nil {
			logger.Warnf("WebSocket accept error for session %s: %v", sessionID, err)
			return
		}
		defer c.Close(websocket.StatusInternalError, "internal error during handler exit")

		if c.Subprotocol() != "screw" {
			c.Close(BadSubprotocolClose, "client must use the 'screw' subprotocol")
			return
		}
		middleware.LogWebSocketConnect(logger, r.RemoteAddr, r.URL.Path)

		userID, err := EnsureEphemeralUser(w, r)
		if err != nil {
			logger.Warnf("user authentication failed for session %s: %v", sessionID, err)
			c.Close(AuthFailedClose, "authentication failed")
			return
		}

		s.registerConn(sessionID, userID, c)
		defer s.dropConn(sessionID, userID)

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		// Initial snapshot so the client can render before acting.
		if st, err := sess.View(ctx, userID); err == nil {
			sendWsMessage(ctx, c, map[string]interface{}{"type": "state", "state": st})
		}

		readErr := readSessionMessages(ctx, c, s, sess, sessionID, userID, logger)
		middleware.LogWebSocketDisconnect(logger, r.RemoteAddr, r.URL.Path, readErr)
	}
}

// readSessionMessages consumes client messages until the connection drops.
func readSessionMessages(ctx context.Context, c *websocket.Conn, s *SessionServer, sess *game.Session, sessionID, userID uuid.UUID, logger *logrus.Logger) error {
	for {
		msgType, data, err := c.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				return nil
			}
			return err
		}
		if msgType != websocket.MessageText {
			continue
		}

		var msg wsRequest
		if err := json.Unmarshal(data, &msg); err != nil {
			sendWsError(ctx, c, "invalid JSON format")
			continue
		}

		switch msg.Action {
		case "ping":
			sendWsMessage(ctx, c, map[string]string{"type": "pong"})
			continue
		case "sync":
			if st, err := sess.View(ctx, userID); err == nil {
				sendWsMessage(ctx, c, map[string]interface{}{"type": "state", "state": st})
			}
			continue
		}

		action, err := buildAction(msg, userID)
		if err != nil {
			sendWsError(ctx, c, err.Error())
			continue
		}

		logger.Debugf("session %s: action %s from user %s", sessionID, action.Code, userID)
		if err := sess.Do(ctx, action); err != nil {
			if errors.Is(err, game.ErrInvalidAction) {
				sendWsError(ctx, c, err.Error())
				continue
			}
			return err
		}

		s.afterAction(ctx, sess, sessionID, userID, action)
	}
}

// buildAction translates a wire message into an engine action.
func buildAction(msg wsRequest, userID uuid.UUID) (game.Action, error) {
	a := game.Action{
		Code:      game.ActionCode(msg.Action),
		UserID:    userID,
		Seat:      -1,
		OtherSeat: -1,
	}
	if msg.Seat != nil {
		a.Seat = *msg.Seat
	}
	if msg.OtherSeat != nil {
		a.OtherSeat = *msg.OtherSeat
	}
	if msg.CardID != "" {
		id, err := uuid.Parse(msg.CardID)
		if err != nil {
			return game.Action{}, fmt.Errorf("invalid cardId: %w", err)
		}
		a.CardID = id
	}
	if msg.OtherCardID != "" {
		id, err := uuid.Parse(msg.OtherCardID)
		if err != nil {
			return game.Action{}, fmt.Errorf("invalid otherCardId: %w", err)
		}
		a.OtherCardID = id
	}
	return a, nil
}

// afterAction handles the bookkeeping that belongs outside the engine:
// user-to-session bindings, participant rows and session teardown.
func (s *SessionServer) afterAction(ctx context.Context, sess *game.Session, sessionID, userID uuid.UUID, action game.Action) {
	switch action.Code {
	case game.ActionJoinAsPlayer:
		if err := s.Store.Bind(userID, sessionID); err != nil {
			s.Logger.Warnf("bind after join failed for user %s: %v", userID, err)
		}
		if database.DB != nil {
			go func() {
				dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := database.RecordParticipant(dbCtx, sessionID, userID, action.Seat); err != nil {
					s.Logger.Warnf("failed to record participant %s: %v", userID, err)
				}
			}()
		}
	case game.ActionJoinAsSpectator:
		if err := s.Store.Bind(userID, sessionID); err != nil {
			s.Logger.Warnf("bind after spectate failed for user %s: %v", userID, err)
		}
	case game.ActionLeave:
		s.Store.Unbind(userID)
		s.dropConn(sessionID, userID)
		if n, err := sess.Players(ctx); err == nil && n == 0 {
			s.Logger.Infof("session %s has no seated players left, deleting", sessionID)
			s.Store.Delete(sessionID)
		}
	case game.ActionStartGame:
		if database.DB != nil {
			go func() {
				dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				st, err := sess.View(dbCtx, uuid.Nil)
				if err != nil {
					return
				}
				if err := database.UpsertSessionStarted(dbCtx, sessionID, st); err != nil {
					s.Logger.Warnf("failed to persist session start %s: %v", sessionID, err)
				}
			}()
		}
	}
}
