// Package auth resolves bearer tokens to users. The credential store sits
// behind the Store interface so a hosted identity provider can be swapped
// in without touching handler logic.
package auth

import (
	"errors"
	"time"

	"github.com/hundreddays-io/hundreddays/internal/apperrors"
	"github.com/hundreddays-io/hundreddays/internal/models"
)

// Failure reasons, all carried as UNAUTHENTICATED app errors so the
// middleware can return them verbatim with a 401.
var (
	ErrMissingCredential = apperrors.Unauthorized("missing credential")
	ErrInvalidCredential = apperrors.Unauthorized("invalid credential")
	ErrExpiredCredential = apperrors.Unauthorized("expired credential")
	ErrUserNotFound      = apperrors.Unauthorized("user not found")
)

// ErrNoRecord marks a lookup that matched no row. Store implementations
// return it, possibly wrapped, when the token or user does not exist; any
// other error means the store itself failed and must not read as a bad
// credential.
var ErrNoRecord = errors.New("no matching record")

// Store is the credential store the authenticator reads from.
type Store interface {
	SessionByToken(token string) (*models.Session, error)
	UserByID(id string) (*models.User, error)
}

// Authenticator validates bearer tokens against stored sessions. Validation
// reads fresh session and user state on every call; there is no caching.
type Authenticator struct {
	store Store
	now   func() time.Time
}

func NewAuthenticator(store Store) *Authenticator {
	return &Authenticator{store: store, now: time.Now}
}

// Authenticate resolves a bearer token to its user and session.
//
// An expired session is rejected but not deleted: rows are only removed on
// explicit logout or by the cleanup loop. A session whose user no longer
// exists is treated as invalid. Store failures other than a missing row
// surface as internal errors so an outage never reads as a revoked token.
func (a *Authenticator) Authenticate(token string) (*models.User, *models.Session, error) {
	if token == "" {
		return nil, nil, ErrMissingCredential
	}

	session, err := a.store.SessionByToken(token)
	if errors.Is(err, ErrNoRecord) {
		return nil, nil, ErrInvalidCredential
	}
	if err != nil {
		return nil, nil, apperrors.Wrap(apperrors.CodeInternal, "session lookup failed", err)
	}

	// expires_at equal to now counts as expired
	if !session.ExpiresAt.After(a.now()) {
		return nil, nil, ErrExpiredCredential
	}

	user, err := a.store.UserByID(session.UserID)
	if errors.Is(err, ErrNoRecord) {
		return nil, nil, ErrUserNotFound
	}
	if err != nil {
		return nil, nil, apperrors.Wrap(apperrors.CodeInternal, "user lookup failed", err)
	}

	return user, session, nil
}
