package database

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/hundreddays-io/hundreddays/internal/models"
)

// CreateSession inserts a new session for a user. The token must be unique;
// callers generate it.
func CreateSession(userID, token string, expiresAt time.Time) (*models.Session, error) {
	session := &models.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Token:     token,
		CreatedAt: time.Now().UTC(),
		ExpiresAt: expiresAt,
	}

	_, err := dbConn.Exec(
		q("INSERT INTO sessions (id, user_id, token, created_at, expires_at) VALUES (?, ?, ?, ?, ?)"),
		session.ID, session.UserID, session.Token, session.CreatedAt, session.ExpiresAt,
	)
	if err != nil {
		return nil, errors.Wrap(err, "insert session")
	}
	return session, nil
}

// GetSessionByToken looks up a session by its bearer token. Expiry is not
// checked here; the authenticator enforces it so that expired rows stay in
// place until explicit logout or cleanup.
func GetSessionByToken(token string) (*models.Session, error) {
	var session models.Session
	err := dbConn.QueryRow(
		q("SELECT id, user_id, token, created_at, expires_at FROM sessions WHERE token = ?"),
		token,
	).Scan(&session.ID, &session.UserID, &session.Token, &session.CreatedAt, &session.ExpiresAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "scan session")
	}
	return &session, nil
}

// DeleteSession removes a session by token. Deleting an absent token is not
// an error.
func DeleteSession(token string) error {
	_, err := dbConn.Exec(q("DELETE FROM sessions WHERE token = ?"), token)
	return errors.Wrap(err, "delete session")
}

// CleanupExpiredSessions removes all sessions past their expiry.
func CleanupExpiredSessions() error {
	_, err := dbConn.Exec(q("DELETE FROM sessions WHERE expires_at < ?"), time.Now().UTC())
	return errors.Wrap(err, "cleanup sessions")
}

// CountSessions returns the total number of sessions.
func CountSessions() (int, error) {
	var n int
	if err := dbConn.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&n); err != nil {
		return 0, errors.Wrap(err, "count sessions")
	}
	return n, nil
}
