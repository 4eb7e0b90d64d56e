// internal/handlers/ws_codes.go
package handlers

import "github.com/coder/websocket"

// Custom WebSocket close codes used by the session handlers. These give
// clients a more specific reason for closure than the standard codes.
const (
	BadSubprotocolClose websocket.StatusCode = 3000 // unsupported subprotocol
	AuthFailedClose     websocket.StatusCode = 3001 // token invalid or guest creation failed
)
