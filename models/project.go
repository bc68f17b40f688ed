package models

import (
	"time"

	"gorm.io/datatypes"
)

// Project is a student project other users can apply to join
type Project struct {
	ID                uint                        `json:"id" db:"id" gorm:"primaryKey"`
	CreatorUserID     uint                        `json:"creatorUserId" db:"creator_user_id" gorm:"column:creator_user_id;not null;index:idx_project_creator"`
	Name              string                      `json:"name" db:"name" gorm:"type:text;not null"`
	Description       string                      `json:"description" db:"description" gorm:"type:text;not null"`
	Contacts          string                      `json:"contacts" db:"contacts" gorm:"type:text;not null;default:''"`
	StartDate         *time.Time                  `json:"startDate,omitempty" db:"start_date" gorm:"column:start_date"`
	EndDate           *time.Time                  `json:"endDate,omitempty" db:"end_date" gorm:"column:end_date"`
	Deadline          *time.Time                  `json:"deadline,omitempty" db:"deadline" gorm:"column:deadline"`
	EmploymentType    string                      `json:"employmentType" db:"employment_type" gorm:"type:text;not null;default:''"`
	Territory         string                      `json:"territory" db:"territory" gorm:"type:text;not null;default:''"`
	Skills            datatypes.JSONSlice[string] `json:"skills" db:"skills" gorm:"type:jsonb"`
	Campus            string                      `json:"campus" db:"campus" gorm:"type:text;not null;default:''"`
	ParticipantsCount int                         `json:"participantsCount" db:"participants_count" gorm:"not null;default:0"`
	ProjectType       string                      `json:"projectType" db:"project_type" gorm:"type:text;not null;default:''"`
	WeeklyHours       int                         `json:"weeklyHours" db:"weekly_hours" gorm:"not null;default:0"`
	IsClosed          bool                        `json:"isClosed" db:"is_closed" gorm:"not null;default:false;index:idx_project_is_closed"`
	CreatedAt         time.Time                   `json:"createdDate" db:"created_date" gorm:"column:created_date;autoCreateTime"`
	UpdatedAt         time.Time                   `json:"updatedDate" db:"updated_date" gorm:"column:updated_date;autoUpdateTime"`

	User       *User      `json:"-" gorm:"foreignKey:CreatorUserID;references:ID;constraint:OnDelete:CASCADE"`
	Categories []Category `json:"categories" gorm:"many2many:project_categories;joinForeignKey:ProjectID;joinReferences:CategoryID"`
}

// HasCategoryLabel reports whether any attached category carries label.
func (p Project) HasCategoryLabel(label string) bool {
	for _, c := range p.Categories {
		if c.Label == label {
			return true
		}
	}
	return false
}
