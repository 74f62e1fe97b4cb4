package models

import "time"

type RegisterRequest struct {
	Name     string   `json:"name" binding:"required,max=100"`
	Email    string   `json:"email" binding:"required,email"`
	Password string   `json:"password" binding:"required,min=6"`
	Role     UserRole `json:"role" binding:"omitempty,oneof=Learner Creator Admin"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type CreatorApplicationRequest struct {
	Experience string `json:"experience" binding:"required"`
	Motivation string `json:"motivation" binding:"required"`
	Portfolio  string `json:"portfolio"`
}

type ApplicationStatusRequest struct {
	Status ApplicationStatus `json:"status" binding:"required"`
}

type CreateCourseRequest struct {
	Title       string  `json:"title" binding:"required,max=200"`
	Description string  `json:"description" binding:"required"`
	Price       float64 `json:"price" binding:"gte=0"`
	Thumbnail   string  `json:"thumbnail" binding:"omitempty,url"`
}

// UpdateCourseRequest only overwrites fields that are non-zero.
type UpdateCourseRequest struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Price       float64      `json:"price" binding:"gte=0"`
	Thumbnail   string       `json:"thumbnail" binding:"omitempty,url"`
	Status      CourseStatus `json:"status"`
}

type CourseStatusRequest struct {
	Status CourseStatus `json:"status" binding:"required"`
}

type CreateLessonRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"required"`
	VideoURL    string `json:"videoUrl" binding:"required,url"`
	Order       int    `json:"order" binding:"required,min=1"`
}

// UpdateLessonRequest only overwrites fields that are non-zero.
type UpdateLessonRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoURL    string `json:"videoUrl" binding:"omitempty,url"`
	Order       int    `json:"order" binding:"omitempty,min=1"`
	Transcript  string `json:"transcript"`
}

type MessageResponse struct {
	Msg string `json:"msg"`
}

type CertificateResponse struct {
	Msg             string     `json:"msg"`
	CertificateHash string     `json:"certificateHash"`
	CompletedAt     *time.Time `json:"completedAt"`
}

type TranscriptResponse struct {
	Msg        string `json:"msg"`
	Transcript string `json:"transcript"`
}
