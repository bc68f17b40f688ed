package services

import (
	"context"
	"time"

	"github.com/rpupo63/student-projects-backend/database"
	"github.com/rpupo63/student-projects-backend/models"
)

// Repository contracts the services depend on. The database package satisfies
// them with its gorm repositories.

type UserRepo interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Add(ctx context.Context, user *models.User) error
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	TouchLastLogin(ctx context.Context, id uint, at time.Time) error
	SetFaculty(ctx context.Context, id uint, facultyID uint) error
	ReplaceCategories(ctx context.Context, id uint, categories []models.Category) error
}

type FacultyRepo interface {
	FindAll(ctx context.Context) ([]models.Faculty, error)
	FindByID(ctx context.Context, id uint) (*models.Faculty, error)
}

type CategoryRepo interface {
	FindReference(ctx context.Context) ([]models.Category, error)
	FindByIDs(ctx context.Context, ids []uint) ([]models.Category, error)
	FindCustomByLabels(ctx context.Context, labels []string) ([]models.Category, error)
	AddAll(ctx context.Context, categories []models.Category) ([]models.Category, error)
}

type ProjectRepo interface {
	FindOpen(ctx context.Context, q database.ProjectQuery) ([]models.Project, int64, error)
	FindByCreator(ctx context.Context, creatorID uint, skip, take int) ([]models.Project, int64, error)
	FindAll(ctx context.Context) ([]models.Project, error)
	FindByID(ctx context.Context, id uint) (*models.Project, error)
	FindOpenSharingCategories(ctx context.Context, viewerID uint, categoryIDs []uint, limit int) ([]models.Project, error)
	Add(ctx context.Context, project *models.Project) error
	Update(ctx context.Context, project *models.Project) error
	ReplaceCategories(ctx context.Context, id uint, categories []models.Category) error
}

type ApplicationRepo interface {
	Exists(ctx context.Context, applicantID, projectID uint) (bool, error)
	Add(ctx context.Context, application *models.Application) error
	FindByID(ctx context.Context, id uint) (*models.Application, error)
	UpdateStatus(ctx context.Context, id uint, status models.ApplicationStatus) error
	FindByApplicant(ctx context.Context, applicantID uint) ([]models.Application, error)
	FindIncoming(ctx context.Context, ownerID uint) ([]models.Application, error)
}

type RecommendationRepo interface {
	FindOpenProjects(ctx context.Context, userID uint) ([]models.Project, error)
}

// Store hands out repositories. Repositories obtained inside Transaction share
// the transaction.
type Store interface {
	Users() UserRepo
	Faculties() FacultyRepo
	Categories() CategoryRepo
	Projects() ProjectRepo
	Applications() ApplicationRepo
	Recommendations() RecommendationRepo
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

type dbStore struct {
	db database.Database
}

// NewStore adapts a database handle to the Store interface.
func NewStore(db database.Database) Store {
	return dbStore{db}
}

func (s dbStore) Users() UserRepo                     { return s.db.UserRepo() }
func (s dbStore) Faculties() FacultyRepo              { return s.db.FacultyRepo() }
func (s dbStore) Categories() CategoryRepo            { return s.db.CategoryRepo() }
func (s dbStore) Projects() ProjectRepo               { return s.db.ProjectRepo() }
func (s dbStore) Applications() ApplicationRepo       { return s.db.ApplicationRepo() }
func (s dbStore) Recommendations() RecommendationRepo { return s.db.RecommendationRepo() }

func (s dbStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.Transaction(ctx, func(tx database.Database) error {
		return fn(dbStore{tx})
	})
}
