package database

import (
	"context"

	"github.com/rpupo63/student-projects-backend/models"
	"gorm.io/gorm"
)

type RecommendationRepo struct {
	db *gorm.DB
}

func NewRecommendationRepo(db *gorm.DB) *RecommendationRepo {
	return &RecommendationRepo{db}
}

// FindOpenProjects returns the open projects recommended to a user, newest first
func (r *RecommendationRepo) FindOpenProjects(ctx context.Context, userID uint) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).
		Joins("JOIN recommendations ON recommendations.project_id = projects.id").
		Where("recommendations.user_id = ? AND projects.is_closed = ?", userID, false).
		Preload("User").
		Preload("Categories").
		Order("projects.id DESC").
		Find(&projects).Error
	return projects, err
}
