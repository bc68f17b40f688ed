package database

import (
	"context"

	"github.com/rpupo63/student-projects-backend/models"
	"gorm.io/gorm"
)

type ApplicationRepo struct {
	db *gorm.DB
}

func NewApplicationRepo(db *gorm.DB) *ApplicationRepo {
	return &ApplicationRepo{db}
}

// Exists reports whether the applicant already applied to the project, whatever the status
func (r *ApplicationRepo) Exists(ctx context.Context, applicantID, projectID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("applicant_id = ? AND project_id = ?", applicantID, projectID).
		Count(&count).Error
	return count > 0, err
}

// Add inserts a new application into the database
func (r *ApplicationRepo) Add(ctx context.Context, application *models.Application) error {
	return r.db.WithContext(ctx).Omit("Applicant", "Project").Create(application).Error
}

// FindByID returns an application with its project loaded
func (r *ApplicationRepo) FindByID(ctx context.Context, id uint) (*models.Application, error) {
	var application models.Application
	err := r.db.WithContext(ctx).
		Preload("Project").
		Preload("Applicant").
		First(&application, id).Error
	if err != nil {
		return nil, err
	}
	return &application, nil
}

// UpdateStatus overwrites the status of an application
func (r *ApplicationRepo) UpdateStatus(ctx context.Context, id uint, status models.ApplicationStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Application{ID: id}).
		Update("status", status).Error
}

// FindByApplicant returns the applications a user sent, newest first
func (r *ApplicationRepo) FindByApplicant(ctx context.Context, applicantID uint) ([]models.Application, error) {
	var applications []models.Application
	err := r.db.WithContext(ctx).
		Where("applicant_id = ?", applicantID).
		Preload("Project.User").
		Preload("Project.Categories").
		Order("id DESC").
		Find(&applications).Error
	return applications, err
}

// FindIncoming returns the applications to projects the owner created, newest first
func (r *ApplicationRepo) FindIncoming(ctx context.Context, ownerID uint) ([]models.Application, error) {
	var applications []models.Application
	err := r.db.WithContext(ctx).
		Joins("JOIN projects ON projects.id = applications.project_id").
		Where("projects.creator_user_id = ?", ownerID).
		Preload("Applicant").
		Preload("Project").
		Order("applications.id DESC").
		Find(&applications).Error
	return applications, err
}
