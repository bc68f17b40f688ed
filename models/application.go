package models

import "time"

// ApplicationStatus is stored as its integer value.
type ApplicationStatus int

const (
	StatusPending  ApplicationStatus = 1
	StatusAccepted ApplicationStatus = 2
	StatusRejected ApplicationStatus = 3
)

func (s ApplicationStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusAccepted:
		return "accepted"
	case StatusRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// IsDecision reports whether s is one of the statuses a project owner may set.
func (s ApplicationStatus) IsDecision() bool {
	return s == StatusAccepted || s == StatusRejected
}

// Application is a user's request to join a project. One per (applicant, project).
type Application struct {
	ID          uint              `json:"id" db:"id" gorm:"primaryKey"`
	ApplicantID uint              `json:"applicantId" db:"applicant_id" gorm:"column:applicant_id;not null;uniqueIndex:idx_application_applicant_project"`
	ProjectID   uint              `json:"projectId" db:"project_id" gorm:"column:project_id;not null;uniqueIndex:idx_application_applicant_project;index:idx_application_project"`
	Message     string            `json:"message" db:"message" gorm:"type:text;not null;default:''"`
	Status      ApplicationStatus `json:"status" db:"status" gorm:"not null;default:1"`
	CreatedAt   time.Time         `json:"createdDate" db:"created_date" gorm:"column:created_date;autoCreateTime"`
	UpdatedAt   time.Time         `json:"updatedDate" db:"updated_date" gorm:"column:updated_date;autoUpdateTime"`

	Applicant *User    `json:"applicant,omitempty" gorm:"foreignKey:ApplicantID;references:ID;constraint:OnDelete:CASCADE"`
	Project   *Project `json:"project,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
}
