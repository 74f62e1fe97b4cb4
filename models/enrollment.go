package models

import (
	"time"
)

type Enrollment struct {
	ID                uint           `json:"id" gorm:"primarykey"`
	UserID            uint           `json:"userId" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	CourseID          uint           `json:"courseId" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	Course            *CourseSummary `json:"course,omitempty" gorm:"-"`
	EnrolledAt        time.Time      `json:"enrolledAt" gorm:"not null"`
	CompletedAt       *time.Time     `json:"completedAt"`
	Progress          int            `json:"progress" gorm:"not null;default:0"`
	CompletedLessons  []uint         `json:"completedLessons" gorm:"-"`
	CertificateIssued bool           `json:"certificateIssued" gorm:"not null;default:false"`
	CertificateHash   string         `json:"certificateHash,omitempty"`
}

// LessonCompletion is one member of an enrollment's completed lesson set.
type LessonCompletion struct {
	ID           uint      `gorm:"primarykey"`
	EnrollmentID uint      `gorm:"not null;uniqueIndex:idx_completion_enrollment_lesson"`
	LessonID     uint      `gorm:"not null;uniqueIndex:idx_completion_enrollment_lesson;index"`
	CompletedAt  time.Time `gorm:"not null"`
}
