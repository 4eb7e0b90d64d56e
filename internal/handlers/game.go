// internal/handlers/game.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/playscrew/screw/internal/game"
)

type createSessionRequest struct {
	Players int `json:"players"`
}

type createSessionResponse struct {
	SessionID uuid.UUID `json:"sessionId"`
	Players   int       `json:"players"`
}

// CreateSessionHandler creates a new session with the requested seat
// count and returns its id.
func CreateSessionHandler(s *SessionServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req createSessionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid payload", http.StatusBadRequest)
			return
		}
		if req.Players == 0 {
			req.Players = game.MinPlayers
		}

		sess, err := s.CreateSession(req.Players)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusCreated, createSessionResponse{
			SessionID: sess.Game.ID,
			Players:   req.Players,
		})
	}
}

// SessionStateHandler returns the caller's view of a session.
// Route: GET /session/state/{session_id}
func SessionStateHandler(s *SessionServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idStr := strings.TrimPrefix(r.URL.Path, "/session/state/")
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

		// Unauthenticated callers get the spectator view.
		viewer := uuid.Nil
		token := extractCookieToken(r.Header.Get("Cookie"), "auth_token")
		if token != "" {
			if userID, err := authenticatedUserID(token); err == nil {
				viewer = userID
			}
		}

		st, err := sess.View(r.Context(), viewer)
		if err != nil {
			http.Error(w, "session unavailable", http.StatusGone)
			return
		}
		writeJSON(w, http.StatusOK, st)
	}
}
