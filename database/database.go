package database

import (
	"context"
	"fmt"

	"github.com/rpupo63/student-projects-backend/models"
	"gorm.io/gorm"
)

type Database struct {
	db                 *gorm.DB
	userRepo           *UserRepo
	facultyRepo        *FacultyRepo
	categoryRepo       *CategoryRepo
	projectRepo        *ProjectRepo
	applicationRepo    *ApplicationRepo
	recommendationRepo *RecommendationRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:                 db,
		userRepo:           NewUserRepo(db),
		facultyRepo:        NewFacultyRepo(db),
		categoryRepo:       NewCategoryRepo(db),
		projectRepo:        NewProjectRepo(db),
		applicationRepo:    NewApplicationRepo(db),
		recommendationRepo: NewRecommendationRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) FacultyRepo() *FacultyRepo {
	return d.facultyRepo
}

func (d Database) CategoryRepo() *CategoryRepo {
	return d.categoryRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) ApplicationRepo() *ApplicationRepo {
	return d.applicationRepo
}

func (d Database) RecommendationRepo() *RecommendationRepo {
	return d.recommendationRepo
}

// Transaction runs fn with a Database whose repositories share one database
// transaction. The transaction commits when fn returns nil.
func (d Database) Transaction(ctx context.Context, fn func(tx Database) error) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

// Migrate creates the schema and seeds the reference faculties and categories.
func (d Database) Migrate() error {
	if err := models.Migrate(d.db); err != nil {
		return err
	}
	if err := models.SeedReferenceData(d.db); err != nil {
		return fmt.Errorf("seed reference data: %w", err)
	}
	return nil
}

// Ping checks the underlying connection pool.
func (d Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
