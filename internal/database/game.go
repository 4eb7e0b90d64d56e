// internal/database/game.go
package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UpsertSessionStarted marks a session row as in progress. Called when the
// leader starts the game; the row is created on first use.
func UpsertSessionStarted(ctx context.Context, sessionID uuid.UUID, initialSnapshot interface{}) error {
	data, err := json.Marshal(initialSnapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal initial session state: %w", err)
	}
	q := `
		INSERT INTO sessions (id, status, initial_state, start_time)
		VALUES ($1, 'in_progress', $2, NOW())
		ON CONFLICT (id)
		DO UPDATE SET initial_state = EXCLUDED.initial_state, status='in_progress', start_time=NOW()
	`
	return pgx.BeginTxFunc(ctx, DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, e := tx.Exec(ctx, q, sessionID, data)
		return e
	})
}

// StoreFinalSessionState persists the closing snapshot and flips the
// session row to completed.
func StoreFinalSessionState(ctx context.Context, sessionID uuid.UUID, finalSnapshot interface{}) error {
	data, err := json.Marshal(finalSnapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal final session state: %w", err)
	}
	q := `
		INSERT INTO sessions (id, status, final_state, end_time)
		VALUES ($1, 'completed', $2, NOW())
		ON CONFLICT (id)
		DO UPDATE SET final_state = $2, status='completed', end_time=NOW()
	`
	err = pgx.BeginTxFunc(ctx, DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, e := tx.Exec(ctx, q, sessionID, data)
		return e
	})
	if err != nil {
		return fmt.Errorf("storing final session state: %w", err)
	}
	return nil
}

// RecordParticipant links a user to a session row for later lookups.
func RecordParticipant(ctx context.Context, sessionID, userID uuid.UUID, seat int) error {
	q := `
		INSERT INTO session_participants (session_id, user_id, seat)
		VALUES ($1, $2, $3)
		ON CONFLICT (session_id, user_id) DO UPDATE SET seat=$3
	`
	return pgx.BeginTxFunc(ctx, DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, e := tx.Exec(ctx, q, sessionID, userID, seat)
		return e
	})
}
