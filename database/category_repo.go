package database

import (
	"context"

	"github.com/rpupo63/student-projects-backend/models"
	"gorm.io/gorm"
)

type CategoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{db}
}

// FindReference returns the non-custom categories ordered by id
func (r *CategoryRepo) FindReference(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).
		Where("is_custom = ?", false).
		Order("id").
		Find(&categories).Error
	return categories, err
}

// FindByIDs returns the categories with the given ids
func (r *CategoryRepo) FindByIDs(ctx context.Context, ids []uint) ([]models.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var categories []models.Category
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&categories).Error
	return categories, err
}

// FindCustomByLabels returns custom categories whose label exactly matches one of labels
func (r *CategoryRepo) FindCustomByLabels(ctx context.Context, labels []string) ([]models.Category, error) {
	if len(labels) == 0 {
		return nil, nil
	}
	var categories []models.Category
	err := r.db.WithContext(ctx).
		Where("is_custom = ? AND category IN ?", true, labels).
		Order("id").
		Find(&categories).Error
	return categories, err
}

// AddAll inserts categories in one statement and fills in their ids
func (r *CategoryRepo) AddAll(ctx context.Context, categories []models.Category) ([]models.Category, error) {
	if len(categories) == 0 {
		return categories, nil
	}
	if err := r.db.WithContext(ctx).Create(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}
