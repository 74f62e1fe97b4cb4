package models

import (
	"time"
)

type Lesson struct {
	ID          uint   `json:"id" gorm:"primarykey"`
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description" gorm:"type:text;not null"`
	CourseID    uint   `json:"courseId" gorm:"not null;index"`
	VideoURL    string `json:"videoUrl" gorm:"not null"`
	Transcript  string `json:"transcript" gorm:"type:text;not null;default:''"`
	// Order is unique across every course, not only within one.
	Order     int       `json:"order" gorm:"column:lesson_order;not null;uniqueIndex"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
