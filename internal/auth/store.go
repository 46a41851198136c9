package auth

import (
	"errors"

	"github.com/hundreddays-io/hundreddays/internal/database"
	"github.com/hundreddays-io/hundreddays/internal/models"
)

// DatabaseStore adapts the database package to the Store interface. Missing
// rows translate to ErrNoRecord; every other error passes through untouched
// so the authenticator can tell a bad token from a broken store.
type DatabaseStore struct{}

func (DatabaseStore) SessionByToken(token string) (*models.Session, error) {
	session, err := database.GetSessionByToken(token)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrNoRecord
	}
	return session, err
}

func (DatabaseStore) UserByID(id string) (*models.User, error) {
	user, err := database.GetUserByID(id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrNoRecord
	}
	return user, err
}
