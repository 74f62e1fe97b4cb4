package models

import (
	"time"
)

type CourseStatus string

const (
	CourseDraft         CourseStatus = "Draft"
	CoursePendingReview CourseStatus = "Pending Review"
	CoursePublished     CourseStatus = "Published"
	CourseRejected      CourseStatus = "Rejected"
)

func (s CourseStatus) Valid() bool {
	switch s {
	case CourseDraft, CoursePendingReview, CoursePublished, CourseRejected:
		return true
	}
	return false
}

// AdminOnly reports whether only an admin may move a course into s.
func (s CourseStatus) AdminOnly() bool {
	return s == CoursePublished || s == CourseRejected
}

type Course struct {
	ID          uint         `json:"id" gorm:"primarykey"`
	Title       string       `json:"title" gorm:"not null"`
	Description string       `json:"description" gorm:"type:text;not null"`
	Price       float64      `json:"price" gorm:"not null;default:0"`
	Thumbnail   string       `json:"thumbnail,omitempty"`
	CreatorID   uint         `json:"creatorId" gorm:"not null;index"`
	Creator     *UserSummary `json:"creator,omitempty" gorm:"-"`
	Status      CourseStatus `json:"status" gorm:"not null;default:'Draft';index"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// CourseSummary is the course view embedded in enrollment listings.
type CourseSummary struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail,omitempty"`
}
