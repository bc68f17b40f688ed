package services

import (
	"context"
	"time"

	"github.com/rpupo63/student-projects-backend/database"
	"github.com/rpupo63/student-projects-backend/models"
	"github.com/stretchr/testify/mock"
)

// MockUserRepo is a mock implementation of UserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) Add(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepo) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockUserRepo) TouchLastLogin(ctx context.Context, id uint, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockUserRepo) SetFaculty(ctx context.Context, id uint, facultyID uint) error {
	args := m.Called(ctx, id, facultyID)
	return args.Error(0)
}

func (m *MockUserRepo) ReplaceCategories(ctx context.Context, id uint, categories []models.Category) error {
	args := m.Called(ctx, id, categories)
	return args.Error(0)
}

// MockFacultyRepo is a mock implementation of FacultyRepo
type MockFacultyRepo struct {
	mock.Mock
}

func (m *MockFacultyRepo) FindAll(ctx context.Context) ([]models.Faculty, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Faculty), args.Error(1)
}

func (m *MockFacultyRepo) FindByID(ctx context.Context, id uint) (*models.Faculty, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Faculty), args.Error(1)
}

// MockCategoryRepo is a mock implementation of CategoryRepo
type MockCategoryRepo struct {
	mock.Mock
}

func (m *MockCategoryRepo) FindReference(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCategoryRepo) FindByIDs(ctx context.Context, ids []uint) ([]models.Category, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCategoryRepo) FindCustomByLabels(ctx context.Context, labels []string) ([]models.Category, error) {
	args := m.Called(ctx, labels)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCategoryRepo) AddAll(ctx context.Context, categories []models.Category) ([]models.Category, error) {
	args := m.Called(ctx, categories)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

// MockProjectRepo is a mock implementation of ProjectRepo
type MockProjectRepo struct {
	mock.Mock
}

func (m *MockProjectRepo) FindOpen(ctx context.Context, q database.ProjectQuery) ([]models.Project, int64, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Project), args.Get(1).(int64), args.Error(2)
}

func (m *MockProjectRepo) FindByCreator(ctx context.Context, creatorID uint, skip, take int) ([]models.Project, int64, error) {
	args := m.Called(ctx, creatorID, skip, take)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Project), args.Get(1).(int64), args.Error(2)
}

func (m *MockProjectRepo) FindAll(ctx context.Context) ([]models.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Project), args.Error(1)
}

func (m *MockProjectRepo) FindByID(ctx context.Context, id uint) (*models.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectRepo) FindOpenSharingCategories(ctx context.Context, viewerID uint, categoryIDs []uint, limit int) ([]models.Project, error) {
	args := m.Called(ctx, viewerID, categoryIDs, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Project), args.Error(1)
}

func (m *MockProjectRepo) Add(ctx context.Context, project *models.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepo) Update(ctx context.Context, project *models.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepo) ReplaceCategories(ctx context.Context, id uint, categories []models.Category) error {
	args := m.Called(ctx, id, categories)
	return args.Error(0)
}

// MockApplicationRepo is a mock implementation of ApplicationRepo
type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Exists(ctx context.Context, applicantID, projectID uint) (bool, error) {
	args := m.Called(ctx, applicantID, projectID)
	return args.Bool(0), args.Error(1)
}

func (m *MockApplicationRepo) Add(ctx context.Context, application *models.Application) error {
	args := m.Called(ctx, application)
	return args.Error(0)
}

func (m *MockApplicationRepo) FindByID(ctx context.Context, id uint) (*models.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Application), args.Error(1)
}

func (m *MockApplicationRepo) UpdateStatus(ctx context.Context, id uint, status models.ApplicationStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockApplicationRepo) FindByApplicant(ctx context.Context, applicantID uint) ([]models.Application, error) {
	args := m.Called(ctx, applicantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Application), args.Error(1)
}

func (m *MockApplicationRepo) FindIncoming(ctx context.Context, ownerID uint) ([]models.Application, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Application), args.Error(1)
}

// MockRecommendationRepo is a mock implementation of RecommendationRepo
type MockRecommendationRepo struct {
	mock.Mock
}

func (m *MockRecommendationRepo) FindOpenProjects(ctx context.Context, userID uint) ([]models.Project, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Project), args.Error(1)
}

// MockStore hands out the mock repositories. Transaction runs fn against the
// same mocks and returns its error.
type MockStore struct {
	users           *MockUserRepo
	faculties       *MockFacultyRepo
	categories      *MockCategoryRepo
	projects        *MockProjectRepo
	applications    *MockApplicationRepo
	recommendations *MockRecommendationRepo
	transactions    int
}

func newMockStore() *MockStore {
	return &MockStore{
		users:           &MockUserRepo{},
		faculties:       &MockFacultyRepo{},
		categories:      &MockCategoryRepo{},
		projects:        &MockProjectRepo{},
		applications:    &MockApplicationRepo{},
		recommendations: &MockRecommendationRepo{},
	}
}

func (s *MockStore) Users() UserRepo                     { return s.users }
func (s *MockStore) Faculties() FacultyRepo              { return s.faculties }
func (s *MockStore) Categories() CategoryRepo            { return s.categories }
func (s *MockStore) Projects() ProjectRepo               { return s.projects }
func (s *MockStore) Applications() ApplicationRepo       { return s.applications }
func (s *MockStore) Recommendations() RecommendationRepo { return s.recommendations }

func (s *MockStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	s.transactions++
	return fn(s)
}

func (s *MockStore) AssertExpectations(t mock.TestingT) {
	s.users.AssertExpectations(t)
	s.faculties.AssertExpectations(t)
	s.categories.AssertExpectations(t)
	s.projects.AssertExpectations(t)
	s.applications.AssertExpectations(t)
	s.recommendations.AssertExpectations(t)
}

// MockNotifier is a mock implementation of Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) ApplicationCreated(ctx context.Context, event ApplicationEvent) {
	m.Called(ctx, event)
}

func (m *MockNotifier) ApplicationProcessed(ctx context.Context, event ApplicationEvent) {
	m.Called(ctx, event)
}
