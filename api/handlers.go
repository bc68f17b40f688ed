package api

import (
	"context"

	"github.com/rpupo63/student-projects-backend/models"
	"github.com/rpupo63/student-projects-backend/services"
)

type projectService interface {
	List(ctx context.Context, viewerID uint, params services.ListParams) (*services.ProjectPage, error)
	Mine(ctx context.Context, userID uint, params services.ListParams) (*services.ProjectPage, error)
	ByTag(ctx context.Context, tag string) ([]services.ProjectView, error)
	Get(ctx context.Context, viewerID, projectID uint) (*services.ProjectView, error)
	Recommendations(ctx context.Context, userID uint) ([]services.ProjectView, error)
	Create(ctx context.Context, creatorID uint, in services.ProjectInput) (*models.Project, error)
	Edit(ctx context.Context, editorID uint, patch services.ProjectPatch) error
	Choices() models.ProjectChoices
	Categories(ctx context.Context) ([]models.Category, error)
}

type applicationService interface {
	Create(ctx context.Context, applicantID uint, in services.ApplyInput) (*models.Application, error)
	Process(ctx context.Context, ownerID uint, in services.ProcessInput) error
	Sent(ctx context.Context, applicantID uint) ([]services.ApplicationView, error)
	Incoming(ctx context.Context, ownerID uint) ([]services.ApplicationView, error)
}

type accountService interface {
	Register(ctx context.Context, in services.RegisterInput) (string, error)
	Login(ctx context.Context, in services.LoginInput) (string, error)
	Profile(ctx context.Context, userID uint) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uint, patch services.ProfilePatch) error
	Faculties(ctx context.Context) ([]models.Faculty, error)
	Categories(ctx context.Context) ([]models.Category, error)
	SetCategories(ctx context.Context, userID uint, sel services.CategorySelection) error
	SetFaculty(ctx context.Context, userID uint, in services.FacultyInput) error
}

type healthChecker interface {
	Ping(ctx context.Context) error
}

// Dependencies are the services the router dispatches to
type Dependencies struct {
	Projects     projectService
	Applications applicationService
	Accounts     accountService
	Tokens       tokenParser
	Health       healthChecker
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(deps Dependencies, r router) *routeHandlers {
	return &routeHandlers{
		healthHandler:      newHealthHandler(deps.Health, r.startupTime),
		authHandler:        newAuthHandler(deps.Accounts),
		projectHandler:     newProjectHandler(deps.Projects),
		applicationHandler: newApplicationHandler(deps.Applications),
		accountHandler:     newAccountHandler(deps.Accounts),
	}
}
