package database

import (
	"context"
	"strings"

	"github.com/rpupo63/student-projects-backend/models"
	"gorm.io/gorm"
)

// ProjectQuery selects a page of projects. Zero Skip or Take means no offset or no limit.
type ProjectQuery struct {
	ViewerID uint
	Search   string
	Skip     int
	Take     int
}

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// FindOpen returns open projects created by someone other than the viewer whose
// name or description contains the search term, newest first, plus the total
// number of matches.
func (r *ProjectRepo) FindOpen(ctx context.Context, q ProjectQuery) ([]models.Project, int64, error) {
	filter := func(db *gorm.DB) *gorm.DB {
		db = db.Where("creator_user_id <> ? AND is_closed = ?", q.ViewerID, false)
		if q.Search != "" {
			like := "%" + escapeLike(q.Search) + "%"
			db = db.Where("(name ILIKE ? OR description ILIKE ?)", like, like)
		}
		return db
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Project{}).Scopes(filter).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var projects []models.Project
	err := r.db.WithContext(ctx).
		Scopes(filter, paginate(q.Skip, q.Take)).
		Preload("User").
		Preload("Categories").
		Order("id DESC").
		Find(&projects).Error
	return projects, count, err
}

// FindByCreator returns the projects a user created, closed ones included, newest first
func (r *ProjectRepo) FindByCreator(ctx context.Context, creatorID uint, skip, take int) ([]models.Project, int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Project{}).Where("creator_user_id = ?", creatorID).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var projects []models.Project
	err := r.db.WithContext(ctx).
		Where("creator_user_id = ?", creatorID).
		Scopes(paginate(skip, take)).
		Preload("User").
		Preload("Categories").
		Order("id DESC").
		Find(&projects).Error
	return projects, count, err
}

// FindAll returns every project with creator and categories loaded
func (r *ProjectRepo) FindAll(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Categories").
		Order("id DESC").
		Find(&projects).Error
	return projects, err
}

// FindByID returns a project by its ID
func (r *ProjectRepo) FindByID(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Categories").
		First(&project, id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// FindOpenSharingCategories returns open projects of other users tagged with any of categoryIDs
func (r *ProjectRepo) FindOpenSharingCategories(ctx context.Context, viewerID uint, categoryIDs []uint, limit int) ([]models.Project, error) {
	if len(categoryIDs) == 0 {
		return nil, nil
	}
	tagged := r.db.Table("project_categories").Select("project_id").Where("category_id IN ?", categoryIDs)

	var projects []models.Project
	err := r.db.WithContext(ctx).
		Where("creator_user_id <> ? AND is_closed = ?", viewerID, false).
		Where("id IN (?)", tagged).
		Scopes(paginate(0, limit)).
		Preload("User").
		Preload("Categories").
		Order("id DESC").
		Find(&projects).Error
	return projects, err
}

// Add inserts a new project and links its categories
func (r *ProjectRepo) Add(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Omit("User", "Categories.*").Create(project).Error
}

// Update saves the project's own columns, leaving its category links alone
func (r *ProjectRepo) Update(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Omit("User", "Categories").Save(project).Error
}

// ReplaceCategories swaps the project's category set for categories
func (r *ProjectRepo) ReplaceCategories(ctx context.Context, id uint, categories []models.Category) error {
	return r.db.WithContext(ctx).Model(&models.Project{ID: id}).Association("Categories").Replace(categories)
}

func paginate(skip, take int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if skip > 0 {
			db = db.Offset(skip)
		}
		if take > 0 {
			db = db.Limit(take)
		}
		return db
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes wildcard characters in s match literally
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
