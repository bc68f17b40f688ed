package models

type Faculty struct {
	ID   uint   `json:"id" db:"id" gorm:"primaryKey"`
	Name string `json:"name" db:"name" gorm:"type:text;not null;uniqueIndex:idx_faculty_name"`
}
