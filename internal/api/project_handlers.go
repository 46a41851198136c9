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
)

type createProjectRequest struct {
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	RepositoryURL      string   `json:"repository_url"`
	DemoURL            string   `json:"demo_url"`
	TechStack          []string `json:"tech_stack"`
	Status             string   `json:"status"`
	ProgressPercentage int      `json:"progress_percentage"`
}

// Nil means "not sent": the previous value is kept. Clearing is explicit:
// tech_stack takes [], the URL fields take "".
type updateProjectRequest struct {
	Title              *string   `json:"title"`
	Description        *string   `json:"description"`
	RepositoryURL      *string   `json:"repository_url"`
	DemoURL            *string   `json:"demo_url"`
	TechStack          *[]string `json:"tech_stack"`
	Status             *string   `json:"status"`
	ProgressPercentage *int      `json:"progress_percentage"`
}

func (api *Api) ListProjectsHandler(w http.ResponseWriter, r *http.Request) {
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
	api.respondJSON(w, http.StatusOK, projects)
}

func (api *Api) CreateProjectHandler(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())

	challenge, err := api.ownedChallenge(chi.URLParam(r, "challengeID"), user.ID)
	if err != nil {
		api.respondError(w, r, err)
		return
	}

	var req createProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		api.respondError(w, r, err)
		return
	}

	if req.Title == "" {
		api.respondError(w, r, apperrors.InvalidArg("Title is required"))
		return
	}

	status := req.Status
	if status == "" {
		status = models.StatusNotStarted
	}
	if !models.ValidStatus(status) {
		api.respondError(w, r, apperrors.InvalidArg("Invalid project status"))
		return
	}
	if req.ProgressPercentage < 0 || req.ProgressPercentage > 100 {
		api.respondError(w, r, apperrors.InvalidArg("progress_percentage must be between 0 and 100"))
		return
	}

	now := time.Now().UTC()
	project := &models.Project{
		ID:                 uuid.NewString(),
		ChallengeID:        challenge.ID,
		UserID:             user.ID,
		Title:              req.Title,
		Description:        req.Description,
		RepositoryURL:      req.RepositoryURL,
		DemoURL:            req.DemoURL,
		TechStack:          req.TechStack,
		Status:             status,
		ProgressPercentage: req.ProgressPercentage,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if project.TechStack == nil {
		project.TechStack = []string{}
	}
	if project.Status == models.StatusCompleted {
		project.CompletedAt = &now
	}

	if err := database.CreateProject(project); err != nil {
		api.respondError(w, r, err)
		return
	}
	api.respondJSON(w, http.StatusOK, project)
}

func (api *Api) GetProjectHandler(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())

	project, err := api.ownedProject(chi.URLParam(r, "projectID"), user.ID)
	if err != nil {
		api.respondError(w, r, err)
		return
	}
	api.respondJSON(w, http.StatusOK, project)
}

func (api *Api) UpdateProjectHandler(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())

	project, err := api.ownedProject(chi.URLParam(r, "projectID"), user.ID)
	if err != nil {
		api.respondError(w, r, err)
		return
	}

	var req updateProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		api.respondError(w, r, err)
		return
	}

	if req.Title != nil {
		if *req.Title == "" {
			api.respondError(w, r, apperrors.InvalidArg("Title cannot be empty"))
			return
		}
		project.Title = *req.Title
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.RepositoryURL != nil {
		project.RepositoryURL = *req.RepositoryURL
	}
	if req.DemoURL != nil {
		project.DemoURL = *req.DemoURL
	}
	if req.TechStack != nil {
		project.TechStack = *req.TechStack
		if project.TechStack == nil {
			project.TechStack = []string{}
		}
	}
	if req.Status != nil {
		if !models.ValidStatus(*req.Status) {
			api.respondError(w, r, apperrors.InvalidArg("Invalid project status"))
			return
		}
		project.Status = *req.Status
		// completed_at is written once, on the first completion
		if project.Status == models.StatusCompleted && project.CompletedAt == nil {
			now := time.Now().UTC()
			project.CompletedAt = &now
		}
	}
	if req.ProgressPercentage != nil {
		if *req.ProgressPercentage < 0 || *req.ProgressPercentage > 100 {
			api.respondError(w, r, apperrors.InvalidArg("progress_percentage must be between 0 and 100"))
			return
		}
		project.ProgressPercentage = *req.ProgressPercentage
	}
	project.UpdatedAt = time.Now().UTC()

	if err := database.UpdateProject(project); err != nil {
		api.respondError(w, r, err)
		return
	}
	api.respondJSON(w, http.StatusOK, project)
}

func (api *Api) DeleteProjectHandler(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())

	project, err := api.ownedProject(chi.URLParam(r, "projectID"), user.ID)
	if err != nil {
		api.respondError(w, r, err)
		return
	}

	if err := database.DeleteProject(project.ID, user.ID); err != nil {
		api.respondError(w, r, err)
		return
	}
	api.respondJSON(w, http.StatusOK, map[string]string{"message": "Project deleted successfully"})
}

// CheckProjectLinksHandler probes the project's repository and demo URLs
// and stores the observed health.
func (api *Api) CheckProjectLinksHandler(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())

	project, err := api.ownedProject(chi.URLParam(r, "projectID"), user.ID)
	if err != nil {
		api.respondError(w, r, err)
		return
	}

	now := time.Now().UTC()
	project.URLStatus = api.checker.CheckProject(project, now)
	project.LastURLCheck = &now
	project.UpdatedAt = now

	if err := database.UpdateProject(project); err != nil {
		api.respondError(w, r, err)
		return
	}
	api.respondJSON(w, http.StatusOK, project)
}

func (api *Api) ownedProject(id, userID string) (*models.Project, error) {
	project, err := database.GetProject(id, userID)
	if err == database.ErrNotFound {
		return nil, apperrors.NotFound("Project not found")
	}
	if err != nil {
		return nil, err
	}
	return project, nil
}
