package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hundreddays-io/hundreddays/internal/apperrors"
	"github.com/hundreddays-io/hundreddays/internal/auth"
	"github.com/hundreddays-io/hundreddays/internal/database"
	"github.com/hundreddays-io/hundreddays/internal/models"
	"github.com/hundreddays-io/hundreddays/internal/stats"
)

type createChallengeRequest struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Goals        []string   `json:"goals"`
	Rules        []string   `json:"rules"`
	DurationDays int        `json:"duration_days"`
	StartDate    *time.Time `json:"start_date"`
}

// Pointer fields distinguish "not sent" (nil, keep previous) from a sent
// value. Clearing a list is done with an explicit empty array; null is
// never a clear signal.
type updateChallengeRequest struct {
	Title        *string   `json:"title"`
	Description  *string   `json:"description"`
	Goals        *[]string `json:"goals"`
	Rules        *[]string `json:"rules"`
	DurationDays *int      `json:"duration_days"`
}

func (api *Api) ListChallengesHandler(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())

	challenges, err := database.GetChallengesByUser(user.ID)
	if err != nil {
		api.respondError(w, r, err)
		return
	}
	api.respondJSON(w, http.StatusOK, challenges)
}

func (api *Api) CreateChallengeHandler(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())

	var req createChallengeRequest
	if err := decodeJSON(r, &req); err != nil {
		api.respondError(w, r, err)
		return
	}

	if req.Title == "" || req.DurationDays <= 0 {
		api.respondError(w, r, apperrors.InvalidArg("Title and a positive duration_days are required"))
		return
	}

	now := time.Now().UTC()
	start := now
	if req.StartDate != nil {
		start = req.StartDate.UTC()
	}

	challenge := &models.Challenge{
		ID:           uuid.NewString(),
		UserID:       user.ID,
		Title:        req.Title,
		Description:  req.Description,
		Goals:        req.Goals,
		Rules:        req.Rules,
		DurationDays: req.DurationDays,
		StartDate:    start,
		EndDate:      start.Add(time.Duration(req.DurationDays) * 24 * time.Hour),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if challenge.Goals == nil {
		challenge.Goals = []string{}
	}
	if challenge.Rules == nil {
		challenge.Rules = []string{}
	}

	if err := database.CreateChallenge(challenge); err != nil {
		api.respondError(w, r, err)
		return
	}
	api.respondJSON(w, http.StatusOK, challenge)
}

func (api *Api) GetChallengeHandler(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())

	challenge, err := api.ownedChallenge(chi.URLParam(r, "challengeID"), user.ID)
	if err != nil {
		api.respondError(w, r, err)
		return
	}
	api.respondJSON(w, http.StatusOK, challenge)
}

func (api *Api) UpdateChallengeHandler(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())

	challenge, err := api.ownedChallenge(chi.URLParam(r, "challengeID"), user.ID)
	if err != nil {
		api.respondError(w, r, err)
		return
	}

	var req updateChallengeRequest
	if err := decodeJSON(r, &req); err != nil {
		api.respondError(w, r, err)
		return
	}

	if req.Title != nil {
		if *req.Title == "" {
			api.respondError(w, r, apperrors.InvalidArg("Title cannot be empty"))
			return
		}
		challenge.Title = *req.Title
	}
	if req.Description != nil {
		challenge.Description = *req.Description
	}
	if req.Goals != nil {
		challenge.Goals = *req.Goals
	}
	if req.Rules != nil {
		challenge.Rules = *req.Rules
	}
	if req.DurationDays != nil {
		if *req.DurationDays <= 0 {
			api.respondError(w, r, apperrors.InvalidArg("duration_days must be positive"))
			return
		}
		challenge.DurationDays = *req.DurationDays
		// a duration change moves the end date, anchored to the start
		challenge.EndDate = challenge.StartDate.Add(time.Duration(*req.DurationDays) * 24 * time.Hour)
	}
	challenge.UpdatedAt = time.Now().UTC()

	if err := database.UpdateChallenge(challenge); err != nil {
		api.respondError(w, r, err)
		return
	}
	api.respondJSON(w, http.StatusOK, challenge)
}

func (api *Api) DeleteChallengeHandler(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())

	challenge, err := api.ownedChallenge(chi.URLParam(r, "challengeID"), user.ID)
	if err != nil {
		api.respondError(w, r, err)
		return
	}

	if err := database.DeleteChallenge(challenge.ID, user.ID); err != nil {
		api.respondError(w, r, err)
		return
	}
	api.respondJSON(w, http.StatusOK, map[string]string{"message": "Challenge deleted successfully"})
}

type challengeStatsResponse struct {
	ChallengeID           string            `json:"challenge_id"`
	Goal                  int               `json:"goal"`
	CompletedCount        int               `json:"completed_count"`
	ProgressPercentage    float64           `json:"progress_percentage"`
	DaysElapsed           int               `json:"days_elapsed"`
	DailyAverage          float64           `json:"daily_average"`
	Milestones            []stats.Milestone `json:"milestones"`
	TechStackDistribution map[string]int    `json:"tech_stack_distribution"`
}

// ChallengeStatsHandler returns the aggregate bundle for one challenge. The
// goal is the challenge duration: one project per day.
func (api *Api) ChallengeStatsHandler(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())

	challenge, err := api.ownedChallenge(chi.URLParam(r, "challengeID"), user.ID)
	if err != nil {
		api.respondError(w, r, err)
		return
	}

	projects, err := database.GetProjectsByChallenge(challenge.ID)
	if err != nil {
		api.respondError(w, r, err)
		return
	}

	completed := stats.CompletedCount(projects)
	daysElapsed := stats.DaysElapsed(challenge.StartDate, time.Now().UTC())

	api.respondJSON(w, http.StatusOK, challengeStatsResponse{
		ChallengeID:           challenge.ID,
		Goal:                  challenge.DurationDays,
		CompletedCount:        completed,
		ProgressPercentage:    stats.ProgressPercentage(projects, challenge.DurationDays),
		DaysElapsed:           daysElapsed,
		DailyAverage:          stats.DailyAverage(completed, daysElapsed),
		Milestones:            stats.Milestones(challenge.DurationDays, completed),
		TechStackDistribution: stats.TechStackDistribution(projects),
	})
}

// ownedChallenge fetches a challenge scoped to its owner, mapping an absent
// or foreign row to a 404. Existence of other users' challenges is never
// revealed.
func (api *Api) ownedChallenge(id, userID string) (*models.Challenge, error) {
	challenge, err := database.GetChallenge(id, userID)
	if err == database.ErrNotFound {
		return nil, apperrors.NotFound("Challenge not found")
	}
	if err != nil {
		return nil, err
	}
	return challenge, nil
}
