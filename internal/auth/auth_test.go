package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hundreddays-io/hundreddays/internal/apperrors"
	"github.com/hundreddays-io/hundreddays/internal/models"
)

// fakeStore is an in-memory Store for authenticator tests.
type fakeStore struct {
	sessions map[string]*models.Session
	users    map[string]*models.User
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		sessions: map[string]*models.Session{},
		users:    map[string]*models.User{},
	}
}

func (s *fakeStore) SessionByToken(token string) (*models.Session, error) {
	if session, ok := s.sessions[token]; ok {
		return session, nil
	}
	return nil, ErrNoRecord
}

func (s *fakeStore) UserByID(id string) (*models.User, error) {
	if user, ok := s.users[id]; ok {
		return user, nil
	}
	return nil, ErrNoRecord
}

// failingStore simulates a datastore outage.
type failingStore struct{}

func (failingStore) SessionByToken(string) (*models.Session, error) {
	return nil, errors.New("dial tcp: connection refused")
}

func (failingStore) UserByID(string) (*models.User, error) {
	return nil, errors.New("dial tcp: connection refused")
}

func newTestAuthenticator(store *fakeStore, now time.Time) *Authenticator {
	a := NewAuthenticator(store)
	a.now = func() time.Time { return now }
	return a
}

func TestAuthenticateSuccess(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := newFakeStore()
	store.users["u1"] = &models.User{ID: "u1", Email: "dev@example.com"}
	store.sessions["tok"] = &models.Session{ID: "s1", UserID: "u1", Token: "tok", ExpiresAt: now.Add(time.Hour)}

	user, session, err := newTestAuthenticator(store, now).Authenticate("tok")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "s1", session.ID)
}

func TestAuthenticateMissingToken(t *testing.T) {
	_, _, err := newTestAuthenticator(newFakeStore(), time.Now()).Authenticate("")
	assert.ErrorIs(t, err, ErrMissingCredential)
}

func TestAuthenticateUnknownToken(t *testing.T) {
	_, _, err := newTestAuthenticator(newFakeStore(), time.Now()).Authenticate("nope")
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestAuthenticateExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := newFakeStore()
	store.users["u1"] = &models.User{ID: "u1"}
	store.sessions["tok"] = &models.Session{UserID: "u1", Token: "tok", ExpiresAt: now.Add(-time.Second)}

	_, _, err := newTestAuthenticator(store, now).Authenticate("tok")
	assert.ErrorIs(t, err, ErrExpiredCredential)

	// expired sessions are rejected, not deleted
	_, ok := store.sessions["tok"]
	assert.True(t, ok)
}

func TestAuthenticateExpiryBoundary(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := newFakeStore()
	store.users["u1"] = &models.User{ID: "u1"}
	store.sessions["tok"] = &models.Session{UserID: "u1", Token: "tok", ExpiresAt: now}

	// expires_at equal to now counts as expired
	_, _, err := newTestAuthenticator(store, now).Authenticate("tok")
	assert.ErrorIs(t, err, ErrExpiredCredential)
}

func TestAuthenticateStoreFailure(t *testing.T) {
	a := NewAuthenticator(failingStore{})

	_, _, err := a.Authenticate("tok")
	require.Error(t, err)

	// an outage must not read as a revoked token
	assert.NotErrorIs(t, err, ErrInvalidCredential)
	assert.Equal(t, apperrors.CodeInternal, apperrors.From(err).Code)
}

func TestAuthenticateUserLookupFailure(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := &flakyUserStore{fakeStore: newFakeStore()}
	store.sessions["tok"] = &models.Session{UserID: "u1", Token: "tok", ExpiresAt: now.Add(time.Hour)}

	a := NewAuthenticator(store)
	a.now = func() time.Time { return now }

	_, _, err := a.Authenticate("tok")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUserNotFound)
	assert.Equal(t, apperrors.CodeInternal, apperrors.From(err).Code)
}

// flakyUserStore serves sessions but fails user reads.
type flakyUserStore struct {
	*fakeStore
}

func (s *flakyUserStore) UserByID(string) (*models.User, error) {
	return nil, errors.New("dial tcp: connection refused")
}

func TestAuthenticateOrphanedSession(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := newFakeStore()
	store.sessions["tok"] = &models.Session{UserID: "gone", Token: "tok", ExpiresAt: now.Add(time.Hour)}

	_, _, err := newTestAuthenticator(store, now).Authenticate("tok")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
