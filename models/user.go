package models

import (
	"time"
)

type UserRole string

const (
	RoleLearner UserRole = "Learner"
	RoleCreator UserRole = "Creator"
	RoleAdmin   UserRole = "Admin"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleLearner, RoleCreator, RoleAdmin:
		return true
	}
	return false
}

type ApplicationStatus string

const (
	ApplicationNone     ApplicationStatus = "None"
	ApplicationPending  ApplicationStatus = "Pending"
	ApplicationApproved ApplicationStatus = "Approved"
	ApplicationRejected ApplicationStatus = "Rejected"
)

type User struct {
	ID                       uint              `json:"id" gorm:"primarykey"`
	Name                     string            `json:"name" gorm:"not null"`
	Email                    string            `json:"email" gorm:"uniqueIndex;not null"`
	Password                 string            `json:"-" gorm:"not null"`
	Role                     UserRole          `json:"role" gorm:"not null;default:'Learner'"`
	CreatorApplicationStatus ApplicationStatus `json:"creatorApplicationStatus" gorm:"not null;default:'None';index"`
	Experience               string            `json:"experience,omitempty"`
	Motivation               string            `json:"motivation,omitempty"`
	Portfolio                string            `json:"portfolio,omitempty"`
	CreatedAt                time.Time         `json:"createdAt"`
	UpdatedAt                time.Time         `json:"updatedAt"`
}

// Standing folds role and application status into one value.
func (u *User) Standing() Standing {
	return StandingOf(u.Role, u.CreatorApplicationStatus)
}

// UserSummary is the creator view embedded in course listings.
type UserSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
