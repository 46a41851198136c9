package api

import (
	"math"
	"net/http"
	"time"

	"github.com/hundreddays-io/hundreddays/internal/auth"
	"github.com/hundreddays-io/hundreddays/internal/database"
	"github.com/hundreddays-io/hundreddays/internal/models"
	"github.com/hundreddays-io/hundreddays/internal/stats"
)

type dashboardStats struct {
	TotalChallenges     int `json:"total_challenges"`
	ActiveChallenges    int `json:"active_challenges"`
	CompletedChallenges int `json:"completed_challenges"`
	TotalProjects       int `json:"total_projects"`
	CompletedProjects   int `json:"completed_projects"`
	OverallProgress     int `json:"overall_progress"`
}

type dashboardResponse struct {
	User                  *models.User        `json:"user"`
	Stats                 dashboardStats      `json:"stats"`
	RecentChallenges      []*models.Challenge `json:"recent_challenges"`
	RecentProjects        []*models.Project   `json:"recent_projects"`
	TechStackDistribution map[string]int      `json:"tech_stack_distribution"`
}

// DashboardHandler assembles the aggregate view of all of a user's
// challenges and projects.
func (api *Api) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())

	challenges, err := database.GetChallengesByUser(user.ID)
	if err != nil {
		api.respondError(w, r, err)
		return
	}
	projects, err := database.GetProjectsByUser(user.ID)
	if err != nil {
		api.respondError(w, r, err)
		return
	}

	now := time.Now().UTC()
	active, completedChallenges := 0, 0
	for _, c := range challenges {
		if !c.StartDate.After(now) && !c.EndDate.Before(now) {
			active++
		}
		if c.EndDate.Before(now) {
			completedChallenges++
		}
	}

	completedProjects := stats.CompletedCount(projects)
	overall := 0
	if len(projects) > 0 {
		overall = int(math.Round(float64(completedProjects) / float64(len(projects)) * 100))
	}

	api.respondJSON(w, http.StatusOK, dashboardResponse{
		User: user,
		Stats: dashboardStats{
			TotalChallenges:     len(challenges),
			ActiveChallenges:    active,
			CompletedChallenges: completedChallenges,
			TotalProjects:       len(projects),
			CompletedProjects:   completedProjects,
			OverallProgress:     overall,
		},
		RecentChallenges:      firstN(challenges, 5),
		RecentProjects:        firstN(projects, 5),
		TechStackDistribution: stats.TechStackDistribution(projects),
	})
}

func firstN[T any](list []T, n int) []T {
	if len(list) < n {
		return list
	}
	return list[:n]
}
