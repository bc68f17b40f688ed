package database

import (
	"context"

	"github.com/rpupo63/student-projects-backend/models"
	"gorm.io/gorm"
)

type FacultyRepo struct {
	db *gorm.DB
}

func NewFacultyRepo(db *gorm.DB) *FacultyRepo {
	return &FacultyRepo{db}
}

// FindAll returns all faculties ordered by id
func (r *FacultyRepo) FindAll(ctx context.Context) ([]models.Faculty, error) {
	var faculties []models.Faculty
	err := r.db.WithContext(ctx).Order("id").Find(&faculties).Error
	return faculties, err
}

// FindByID returns a faculty by its ID
func (r *FacultyRepo) FindByID(ctx context.Context, id uint) (*models.Faculty, error) {
	var faculty models.Faculty
	if err := r.db.WithContext(ctx).First(&faculty, id).Error; err != nil {
		return nil, err
	}
	return &faculty, nil
}
