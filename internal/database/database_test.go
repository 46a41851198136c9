package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/hundreddays-io/hundreddays/internal/config"
	"github.com/hundreddays-io/hundreddays/internal/models"
)

// DatabaseTestSuite runs the stores against a throwaway SQLite database.
type DatabaseTestSuite struct {
	suite.Suite
}

func (s *DatabaseTestSuite) SetupTest() {
	cfg := &config.Config{
		DatabasePath: filepath.Join(s.T().TempDir(), "test_100days.db"),
	}
	require.NoError(s.T(), Init(cfg))
}

func (s *DatabaseTestSuite) TearDownTest() {
	if dbConn != nil {
		dbConn.Close()
	}
	dbConn = nil // Reset connection so the next test re-initializes
	dbType = ""
}

func TestDatabaseTestSuite(t *testing.T) {
	suite.Run(t, new(DatabaseTestSuite))
}

func TestPostgresDSN(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		db   string
		want string
	}{
		{"fills missing name", "postgres://app:secret@db:5432", "100days", "postgres://app:secret@db:5432/100days"},
		{"fills bare slash", "postgres://db:5432/?sslmode=disable", "100days", "postgres://db:5432/100days?sslmode=disable"},
		{"url name wins", "postgres://db:5432/other", "100days", "postgres://db:5432/other"},
		{"postgresql scheme", "postgresql://db:5432", "100days", "postgresql://db:5432/100days"},
		{"keyword form untouched", "host=db dbname=other", "100days", "host=db dbname=other"},
		{"no configured name", "postgres://db:5432", "", "postgres://db:5432"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, postgresDSN(tt.raw, tt.db))
		})
	}
}

func (s *DatabaseTestSuite) mustCreateUser(email string) *models.User {
	user, err := CreateUser(email, "Test User", "")
	require.NoError(s.T(), err)
	return user
}

func (s *DatabaseTestSuite) mustCreateChallenge(userID string) *models.Challenge {
	now := time.Now().UTC()
	challenge := &models.Challenge{
		ID:           uuid.NewString(),
		UserID:       userID,
		Title:        "100 Apps in 100 Days",
		Goals:        []string{"ship daily"},
		Rules:        []string{},
		DurationDays: 100,
		StartDate:    now,
		EndDate:      now.Add(100 * 24 * time.Hour),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(s.T(), CreateChallenge(challenge))
	return challenge
}

func (s *DatabaseTestSuite) mustCreateProject(userID, challengeID, title string) *models.Project {
	now := time.Now().UTC()
	project := &models.Project{
		ID:          uuid.NewString(),
		ChallengeID: challengeID,
		UserID:      userID,
		Title:       title,
		TechStack:   []string{"Go"},
		Status:      models.StatusNotStarted,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(s.T(), CreateProject(project))
	return project
}

func (s *DatabaseTestSuite) TestCreateAndGetUser() {
	user := s.mustCreateUser("dev@example.com")

	byEmail, err := GetUserByEmail("dev@example.com")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), user.ID, byEmail.ID)

	byID, err := GetUserByID(user.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "dev@example.com", byID.Email)

	_, err = GetUserByEmail("missing@example.com")
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

func (s *DatabaseTestSuite) TestSessionLifecycle() {
	user := s.mustCreateUser("dev@example.com")
	expiresAt := time.Now().UTC().Add(time.Hour)

	session, err := CreateSession(user.ID, "token-1", expiresAt)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), user.ID, session.UserID)

	found, err := GetSessionByToken("token-1")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), session.ID, found.ID)
	assert.WithinDuration(s.T(), expiresAt, found.ExpiresAt, time.Second)

	require.NoError(s.T(), DeleteSession("token-1"))
	_, err = GetSessionByToken("token-1")
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

func (s *DatabaseTestSuite) TestExpiredSessionStillReadable() {
	user := s.mustCreateUser("dev@example.com")
	_, err := CreateSession(user.ID, "old-token", time.Now().UTC().Add(-time.Hour))
	require.NoError(s.T(), err)

	// expiry is the authenticator's concern; the store returns the row
	found, err := GetSessionByToken("old-token")
	require.NoError(s.T(), err)
	assert.True(s.T(), found.ExpiresAt.Before(time.Now()))
}

func (s *DatabaseTestSuite) TestCleanupExpiredSessions() {
	user := s.mustCreateUser("dev@example.com")
	_, err := CreateSession(user.ID, "live", time.Now().UTC().Add(time.Hour))
	require.NoError(s.T(), err)
	_, err = CreateSession(user.ID, "dead", time.Now().UTC().Add(-time.Hour))
	require.NoError(s.T(), err)

	require.NoError(s.T(), CleanupExpiredSessions())

	n, err := CountSessions()
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 1, n)

	_, err = GetSessionByToken("live")
	assert.NoError(s.T(), err)
}

func (s *DatabaseTestSuite) TestChallengeOwnershipScoping() {
	owner := s.mustCreateUser("owner@example.com")
	other := s.mustCreateUser("other@example.com")
	challenge := s.mustCreateChallenge(owner.ID)

	found, err := GetChallenge(challenge.ID, owner.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), []string{"ship daily"}, found.Goals)

	// the same id under another user's scope does not exist
	_, err = GetChallenge(challenge.ID, other.ID)
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

func (s *DatabaseTestSuite) TestDeleteChallengeCascades() {
	user := s.mustCreateUser("dev@example.com")
	challenge := s.mustCreateChallenge(user.ID)
	for i := 0; i < 3; i++ {
		s.mustCreateProject(user.ID, challenge.ID, "App")
	}

	n, err := CountProjectsByChallenge(challenge.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 3, n)

	require.NoError(s.T(), DeleteChallenge(challenge.ID, user.ID))

	n, err = CountProjectsByChallenge(challenge.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 0, n, "no orphaned projects may survive")

	_, err = GetChallenge(challenge.ID, user.ID)
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

func (s *DatabaseTestSuite) TestUpdateChallenge() {
	user := s.mustCreateUser("dev@example.com")
	challenge := s.mustCreateChallenge(user.ID)

	challenge.Title = "50 Apps in 50 Days"
	challenge.DurationDays = 50
	challenge.EndDate = challenge.StartDate.Add(50 * 24 * time.Hour)
	challenge.UpdatedAt = time.Now().UTC()
	require.NoError(s.T(), UpdateChallenge(challenge))

	found, err := GetChallenge(challenge.ID, user.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "50 Apps in 50 Days", found.Title)
	assert.Equal(s.T(), 50, found.DurationDays)
	assert.WithinDuration(s.T(), challenge.EndDate, found.EndDate, time.Second)
}

func (s *DatabaseTestSuite) TestProjectRoundTrip() {
	user := s.mustCreateUser("dev@example.com")
	challenge := s.mustCreateChallenge(user.ID)

	now := time.Now().UTC().Truncate(time.Second)
	completedAt := now.Add(-time.Hour)
	project := &models.Project{
		ID:                 uuid.NewString(),
		ChallengeID:        challenge.ID,
		UserID:             user.ID,
		Title:              "Habit tracker",
		Description:        "day 12",
		RepositoryURL:      "https://github.com/dev/habit",
		TechStack:          []string{"Go", "SQLite"},
		Status:             models.StatusCompleted,
		ProgressPercentage: 100,
		URLStatus: &models.URLStatus{
			Repository: &models.URLCheck{URL: "https://github.com/dev/habit", Status: "online", LastChecked: now},
		},
		LastURLCheck: &now,
		CompletedAt:  &completedAt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(s.T(), CreateProject(project))

	found, err := GetProject(project.ID, user.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), []string{"Go", "SQLite"}, found.TechStack)
	assert.Equal(s.T(), models.StatusCompleted, found.Status)
	require.NotNil(s.T(), found.URLStatus)
	require.NotNil(s.T(), found.URLStatus.Repository)
	assert.Equal(s.T(), "online", found.URLStatus.Repository.Status)
	assert.Nil(s.T(), found.URLStatus.Demo)
	require.NotNil(s.T(), found.CompletedAt)
	assert.WithinDuration(s.T(), completedAt, *found.CompletedAt, time.Second)
}

func (s *DatabaseTestSuite) TestProjectOwnershipScoping() {
	owner := s.mustCreateUser("owner@example.com")
	other := s.mustCreateUser("other@example.com")
	challenge := s.mustCreateChallenge(owner.ID)
	project := s.mustCreateProject(owner.ID, challenge.ID, "App 1")

	_, err := GetProject(project.ID, other.ID)
	assert.ErrorIs(s.T(), err, ErrNotFound)

	// a scoped delete by the wrong user removes nothing
	require.NoError(s.T(), DeleteProject(project.ID, other.ID))
	_, err = GetProject(project.ID, owner.ID)
	assert.NoError(s.T(), err)
}

func (s *DatabaseTestSuite) TestProjectsOrderedNewestFirst() {
	user := s.mustCreateUser("dev@example.com")
	challenge := s.mustCreateChallenge(user.ID)

	first := s.mustCreateProject(user.ID, challenge.ID, "first")
	second := s.mustCreateProject(user.ID, challenge.ID, "second")
	// force distinct created_at values
	second.CreatedAt = first.CreatedAt.Add(time.Minute)
	_, err := dbConn.Exec(q("UPDATE projects SET created_at = ? WHERE id = ?"), second.CreatedAt, second.ID)
	require.NoError(s.T(), err)

	projects, err := GetProjectsByChallenge(challenge.ID)
	require.NoError(s.T(), err)
	require.Len(s.T(), projects, 2)
	assert.Equal(s.T(), "second", projects[0].Title)
}
