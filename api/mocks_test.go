package api

import (
	"context"

	"github.com/rpupo63/student-projects-backend/models"
	"github.com/rpupo63/student-projects-backend/services"
	"github.com/stretchr/testify/mock"
)

type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) List(ctx context.Context, viewerID uint, params services.ListParams) (*services.ProjectPage, error) {
	args := m.Called(ctx, viewerID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ProjectPage), args.Error(1)
}

func (m *MockProjectService) Mine(ctx context.Context, userID uint, params services.ListParams) (*services.ProjectPage, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ProjectPage), args.Error(1)
}

func (m *MockProjectService) ByTag(ctx context.Context, tag string) ([]services.ProjectView, error) {
	args := m.Called(ctx, tag)
	return args.Get(0).([]services.ProjectView), args.Error(1)
}

func (m *MockProjectService) Get(ctx context.Context, viewerID, projectID uint) (*services.ProjectView, error) {
	args := m.Called(ctx, viewerID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ProjectView), args.Error(1)
}

func (m *MockProjectService) Recommendations(ctx context.Context, userID uint) ([]services.ProjectView, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]services.ProjectView), args.Error(1)
}

func (m *MockProjectService) Create(ctx context.Context, creatorID uint, in services.ProjectInput) (*models.Project, error) {
	args := m.Called(ctx, creatorID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectService) Edit(ctx context.Context, editorID uint, patch services.ProjectPatch) error {
	args := m.Called(ctx, editorID, patch)
	return args.Error(0)
}

func (m *MockProjectService) Choices() models.ProjectChoices {
	args := m.Called()
	return args.Get(0).(models.ProjectChoices)
}

func (m *MockProjectService) Categories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Category), args.Error(1)
}

type MockApplicationService struct {
	mock.Mock
}

func (m *MockApplicationService) Create(ctx context.Context, applicantID uint, in services.ApplyInput) (*models.Application, error) {
	args := m.Called(ctx, applicantID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Application), args.Error(1)
}

func (m *MockApplicationService) Process(ctx context.Context, ownerID uint, in services.ProcessInput) error {
	args := m.Called(ctx, ownerID, in)
	return args.Error(0)
}

func (m *MockApplicationService) Sent(ctx context.Context, applicantID uint) ([]services.ApplicationView, error) {
	args := m.Called(ctx, applicantID)
	return args.Get(0).([]services.ApplicationView), args.Error(1)
}

func (m *MockApplicationService) Incoming(ctx context.Context, ownerID uint) ([]services.ApplicationView, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]services.ApplicationView), args.Error(1)
}

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) Register(ctx context.Context, in services.RegisterInput) (string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Error(1)
}

func (m *MockAccountService) Login(ctx context.Context, in services.LoginInput) (string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Error(1)
}

func (m *MockAccountService) Profile(ctx context.Context, userID uint) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAccountService) UpdateProfile(ctx context.Context, userID uint, patch services.ProfilePatch) error {
	args := m.Called(ctx, userID, patch)
	return args.Error(0)
}

func (m *MockAccountService) Faculties(ctx context.Context) ([]models.Faculty, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Faculty), args.Error(1)
}

func (m *MockAccountService) Categories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockAccountService) SetCategories(ctx context.Context, userID uint, sel services.CategorySelection) error {
	args := m.Called(ctx, userID, sel)
	return args.Error(0)
}

func (m *MockAccountService) SetFaculty(ctx context.Context, userID uint, in services.FacultyInput) error {
	args := m.Called(ctx, userID, in)
	return args.Error(0)
}

type MockHealthChecker struct {
	mock.Mock
}

func (m *MockHealthChecker) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
