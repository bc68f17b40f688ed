package models

import "time"

// Recommendation suggests a project to a user.
type Recommendation struct {
	ID        uint      `json:"id" db:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" db:"user_id" gorm:"column:user_id;not null;uniqueIndex:idx_recommendation_user_project"`
	ProjectID uint      `json:"projectId" db:"project_id" gorm:"column:project_id;not null;uniqueIndex:idx_recommendation_user_project"`
	CreatedAt time.Time `json:"createdDate" db:"created_date" gorm:"column:created_date;autoCreateTime"`

	User    *User    `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Project *Project `json:"project,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
}
