package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hundreddays-io/hundreddays/internal/apperrors"
	"github.com/hundreddays-io/hundreddays/internal/auth"
	"github.com/hundreddays-io/hundreddays/internal/database"
	"github.com/hundreddays-io/hundreddays/internal/models"
)

type loginRequest struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

type loginResponse struct {
	User         *models.User `json:"user"`
	SessionToken string       `json:"session_token"`
	ExpiresAt    time.Time    `json:"expires_at"`
}

// LoginHandler resolves an email to a user, creating the account on first
// login, and issues a new bearer session. No rows are written when
// validation fails.
func (api *Api) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		api.respondError(w, r, err)
		return
	}

	if req.Email == "" {
		api.respondError(w, r, apperrors.InvalidArg("Email is required"))
		return
	}

	user, err := database.GetUserByEmail(req.Email)
	if err == database.ErrNotFound {
		name := req.Name
		if name == "" {
			name = strings.SplitN(req.Email, "@", 2)[0]
		}
		user, err = database.CreateUser(req.Email, name, req.Picture)
	}
	if err != nil {
		api.respondError(w, r, err)
		return
	}

	expiresAt := time.Now().UTC().Add(time.Duration(api.Config.SessionTTLHours) * time.Hour)
	session, err := database.CreateSession(user.ID, uuid.NewString(), expiresAt)
	if err != nil {
		api.respondError(w, r, err)
		return
	}

	api.respondJSON(w, http.StatusOK, loginResponse{
		User:         user,
		SessionToken: session.Token,
		ExpiresAt:    session.ExpiresAt,
	})
}

// LogoutHandler deletes the session backing the presented token. This is
// the only place a session row is removed outside the cleanup loop.
func (api *Api) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok {
		api.respondError(w, r, auth.ErrMissingCredential)
		return
	}

	if err := database.DeleteSession(session.Token); err != nil {
		api.respondError(w, r, err)
		return
	}
	api.respondJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

// CurrentUserHandler returns the authenticated user.
func (api *Api) CurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		api.respondError(w, r, auth.ErrMissingCredential)
		return
	}
	api.respondJSON(w, http.StatusOK, user)
}
