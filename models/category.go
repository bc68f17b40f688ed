package models

// Category tags users and projects. Non-custom rows form the seeded reference
// list; custom rows are created on demand from free-text labels.
type Category struct {
	ID       uint   `json:"id" db:"id" gorm:"primaryKey"`
	Label    string `json:"category" db:"category" gorm:"column:category;type:text;not null;index:idx_category_label"`
	IsCustom bool   `json:"isCustom" db:"is_custom" gorm:"column:is_custom;not null;default:false"`
}
