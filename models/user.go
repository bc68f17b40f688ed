package models

import "time"

// User is a registered student. Password holds the bcrypt hash and is never serialized.
type User struct {
	ID          uint       `json:"id" db:"id" gorm:"primaryKey"`
	Email       string     `json:"email" db:"email" gorm:"type:text;not null;uniqueIndex:idx_user_email"`
	FullName    string     `json:"fullName" db:"fullname" gorm:"column:fullname;type:text;not null"`
	Bio         string     `json:"bio" db:"bio" gorm:"type:text;not null;default:''"`
	Description string     `json:"description" db:"description" gorm:"type:text;not null;default:''"`
	FacultyID   *uint      `json:"facultyId,omitempty" db:"faculty_id" gorm:"column:faculty_id"`
	Password    string     `json:"-" db:"password" gorm:"type:text;not null"`
	LastLogin   *time.Time `json:"lastLogin,omitempty" db:"last_login" gorm:"column:last_login"`
	CreatedAt   time.Time  `json:"createdDate" db:"created_date" gorm:"column:created_date;autoCreateTime"`
	UpdatedAt   time.Time  `json:"updatedDate" db:"updated_date" gorm:"column:updated_date;autoUpdateTime"`

	Faculty    *Faculty   `json:"faculty,omitempty" gorm:"foreignKey:FacultyID;references:ID;constraint:OnDelete:SET NULL"`
	Categories []Category `json:"categories,omitempty" gorm:"many2many:user_categories;joinForeignKey:UserID;joinReferences:CategoryID"`
}
