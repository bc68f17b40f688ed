package database

import (
	"context"
	"time"

	"github.com/rpupo63/student-projects-backend/models"
	"gorm.io/gorm"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db}
}

// FindByID returns a user with faculty and categories loaded
func (r *UserRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Preload("Faculty").
		Preload("Categories").
		First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail returns the user registered with email
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Add inserts a new user into the database
func (r *UserRepo) Add(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Omit("Faculty", "Categories").Create(user).Error
}

// UpdateFields updates the given columns of a user
func (r *UserRepo) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.User{ID: id}).Updates(fields).Error
}

// TouchLastLogin records a successful login
func (r *UserRepo) TouchLastLogin(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).Model(&models.User{ID: id}).Update("last_login", at).Error
}

// SetFaculty points the user at a faculty
func (r *UserRepo) SetFaculty(ctx context.Context, id uint, facultyID uint) error {
	return r.db.WithContext(ctx).Model(&models.User{ID: id}).Update("faculty_id", facultyID).Error
}

// ReplaceCategories swaps the user's category set for categories
func (r *UserRepo) ReplaceCategories(ctx context.Context, id uint, categories []models.Category) error {
	return r.db.WithContext(ctx).Model(&models.User{ID: id}).Association("Categories").Replace(categories)
}
