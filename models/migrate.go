package models

import (
	"fmt"

	"gorm.io/gorm"
)

// AllModels lists every table-backed model in dependency order.
func AllModels() []interface{} {
	return []interface{}{
		&Faculty{},
		&Category{},
		&User{},
		&Project{},
		&Application{},
		&Recommendation{},
	}
}

// Migrate creates or updates the schema for every model, join tables included.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// SeedReferenceData inserts the reference faculties and categories when their
// tables are still empty.
func SeedReferenceData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&Faculty{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count faculties: %w", err)
	}
	if count == 0 {
		faculties := make([]Faculty, 0, len(ReferenceFaculties))
		for _, name := range ReferenceFaculties {
			faculties = append(faculties, Faculty{Name: name})
		}
		if err := db.Create(&faculties).Error; err != nil {
			return fmt.Errorf("seed faculties: %w", err)
		}
	}

	if err := db.Model(&Category{}).Where("is_custom = ?", false).Count(&count).Error; err != nil {
		return fmt.Errorf("count reference categories: %w", err)
	}
	if count == 0 {
		categories := make([]Category, 0, len(ReferenceCategories))
		for _, label := range ReferenceCategories {
			categories = append(categories, Category{Label: label})
		}
		if err := db.Create(&categories).Error; err != nil {
			return fmt.Errorf("seed categories: %w", err)
		}
	}
	return nil
}
