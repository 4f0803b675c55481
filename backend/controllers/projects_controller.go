package controllers

import (
	"context"
	"errors"
	"log"
	"time"

	"buddycheck/backend/config"
	"buddycheck/backend/middleware"
	"buddycheck/backend/models"
	"buddycheck/backend/services"
	"buddycheck/backend/store"
	"buddycheck/backend/streak"
	"buddycheck/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProjectsController struct {
	Projects *services.ProjectService
	Cfg      *config.Config
	Logger   *log.Logger
}

func NewProjectsController(st store.Store, cfg *config.Config, logger *log.Logger) *ProjectsController {
	return &ProjectsController{
		Projects: services.NewProjectService(st, logger),
		Cfg:      cfg,
		Logger:   logger,
	}
}

// ProjectPayload is a project annotated with its derived completion state.
type ProjectPayload struct {
	models.Project
	Streak        int  `json:"streak"`
	TodayComplete bool `json:"today_complete"`
}

func annotate(project models.Project, now time.Time) ProjectPayload {
	return ProjectPayload{
		Project:       project,
		Streak:        streak.Calculate(project.Collaborators, now, time.Local),
		TodayComplete: streak.IsTodayComplete(project.Collaborators, now, time.Local),
	}
}

// GetProjects godoc
// @Summary List the user's projects
// @Description Returns each project with collaborators, check-ins, streak and today's completion
// @Tags projects
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /projects [get]
func (pc *ProjectsController) GetProjects(c *fiber.Ctx) error {
	userID, ok := c.Locals(middleware.UserIDKey).(uuid.UUID)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}

	projects, err := pc.Projects.LoadProjects(c.UserContext(), userID)
	if err != nil {
		return utils.InternalServerError(c, err.Error())
	}

	now := time.Now()
	payload := make([]ProjectPayload, 0, len(projects))
	for _, project := range projects {
		payload = append(payload, annotate(project, now))
	}

	return utils.Success(c, fiber.StatusOK, payload)
}

// CheckIn godoc
// @Summary Check in for today
// @Description Records today's check-in for the current user; checking in twice the same day is a no-op
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /projects/{id}/checkin [post]
func (pc *ProjectsController) CheckIn(c *fiber.Ctx) error {
	return pc.mutate(c, pc.Projects.CheckIn, "already_checked_in")
}

// UnCheckIn godoc
// @Summary Retract today's check-in
// @Description Deletes today's check-in for the current user; nothing to delete is a no-op
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /projects/{id}/uncheckin [post]
func (pc *ProjectsController) UnCheckIn(c *fiber.Ctx) error {
	return pc.mutate(c, pc.Projects.UnCheckIn, "not_checked_in")
}

type mutationFunc func(ctx context.Context, projects []models.Project, projectID, userID uuid.UUID) (*models.Checkin, error)

func (pc *ProjectsController) mutate(c *fiber.Ctx, op mutationFunc, noopKey string) error {
	userID, ok := c.Locals(middleware.UserIDKey).(uuid.UUID)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}

	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid project ID")
	}

	project, err := pc.Projects.LoadProject(c.UserContext(), projectID)
	if err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			return utils.NotFound(c, "Project not found")
		}
		return utils.InternalServerError(c, err.Error())
	}

	// The mutation patches this one-project graph in place, so the response
	// reflects the new state without a second fetch.
	graph := []models.Project{*project}
	checkin, err := op(c.UserContext(), graph, projectID, userID)
	if err != nil {
		if errors.Is(err, services.ErrNotSignedIn) {
			return utils.Unauthorized(c, "Not signed in")
		}
		return utils.InternalServerError(c, err.Error())
	}

	return utils.Success(c, fiber.StatusOK, annotate(graph[0], time.Now()), fiber.Map{
		noopKey: checkin == nil,
	})
}
