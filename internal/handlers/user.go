package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/playscrew/screw/internal/auth"
	"github.com/playscrew/screw/internal/database"
	"github.com/playscrew/screw/internal/models"
)

// authenticatedUserID verifies a token and parses its subject.
func authenticatedUserID(token string) (uuid.UUID, error) {
	sub, err := auth.AuthenticateJWT(token)
	if err != nil {
		return uuid.Nil, err
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid user id in token: %w", err)
	}
	return userID, nil
}

// EnsureEphemeralUser resolves the caller's identity, creating a guest
// account and setting its cookie when no valid token is presented.
func EnsureEphemeralUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, error) {
	cookieHeader := r.Header.Get("Cookie")
	if strings.Contains(cookieHeader, "auth_token=") {
		token := extractCookieToken(cookieHeader, "auth_token")
		if userID, err := authenticatedUserID(token); err == nil {
			return userID, nil
		}
	}
	return createGuest(w)
}

func createGuest(w http.ResponseWriter) (uuid.UUID, error) {
	guest := models.User{
		Username:    "Guest",
		IsEphemeral: true,
	}
	if err := database.CreateUser(context.Background(), &guest); err != nil {
		return uuid.Nil, fmt.Errorf("failed to create ephemeral user: %w", err)
	}
	token, err := auth.CreateJWT(guest.ID.String())
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create ephemeral JWT: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    token,
		HttpOnly: true,
		Path:     "/",
	})
	return guest.ID, nil
}

type claimEphemeralRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

// ClaimEphemeralHandler converts a guest account into a permanent one.
func ClaimEphemeralHandler(w http.ResponseWriter, r *http.Request) {
	token := extractCookieToken(r.Header.Get("Cookie"), "auth_token")
	userID, err := authenticatedUserID(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusForbidden)
		return
	}

	u, err := database.GetUserByID(r.Context(), userID)
	if err != nil {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}
	if !u.IsEphemeral {
		http.Error(w, "user is not ephemeral", http.StatusBadRequest)
		return
	}

	var req claimEphemeralRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid claim payload", http.StatusBadRequest)
		return
	}

	u.Email = req.Email
	u.Password = req.Password
	if req.Username != "" {
		u.Username = req.Username
	}
	u.IsEphemeral = false

	if err := database.UpdateUserCredentials(r.Context(), u); err != nil {
		http.Error(w, "failed to finalize ephemeral user", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "ephemeral user claimed successfully")
}

// CreateUserHandler registers a permanent account.
func CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	user := models.User{
		Email:       req.Email,
		Password:    req.Password,
		Username:    req.Username,
		IsEphemeral: false,
		IsAdmin:     false,
	}

	if err := database.CreateUser(r.Context(), &user); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			http.Error(w, "email already exists", http.StatusConflict)
			return
		}
		http.Error(w, "error creating user", http.StatusInternalServerError)
		return
	}
	user.Password = ""
	writeJSON(w, http.StatusCreated, user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// LoginHandler exchanges credentials for a session token, returned both
// in the body and as an auth_token cookie.
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request payload", http.StatusBadRequest)
		return
	}

	token, err := database.AuthenticateUser(r.Context(), req.Email, req.Password)
	if err != nil {
		log.Printf("failed to authenticate user: %v", err)
		http.Error(w, "authentication failed", http.StatusForbidden)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    token,
		HttpOnly: true,
		Path:     "/",
		MaxAge:   auth.TokenTTLSeconds,
	})

	writeJSON(w, http.StatusOK, loginResponse{Token: token})
}
