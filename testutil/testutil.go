// Package testutil builds throwaway databases and fixtures for tests.
package testutil

import (
	"testing"
	"time"

	"microcourses/config"
	"microcourses/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const Password = "password123"

// Config returns a configuration suitable for tests: sqlite in memory, no
// redis, no broker, cheap bcrypt.
func Config() *config.Config {
	return &config.Config{
		AppEnv: "test",
		Port:   "0",
		Database: config.DatabaseConfig{
			Driver: "sqlite",
			DSN:    ":memory:",
		},
		JWT: config.JWTConfig{
			Secret:     []byte("test-secret"),
			Expiration: time.Hour,
		},
		BcryptCost: bcrypt.MinCost,
	}
}

// PrepareDB opens a fresh migrated in-memory database closed at test end.
func PrepareDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := config.InitDB(Config().Database)
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	t.Cleanup(func() { _ = config.CloseDB(db) })
	return db
}

// CreateUser inserts a user with Password as password.
func CreateUser(t testing.TB, db *gorm.DB, name, email string, role models.UserRole, status models.ApplicationStatus) *models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	if status == "" {
		status = models.ApplicationNone
	}
	user := &models.User{
		Name:                     name,
		Email:                    email,
		Password:                 string(hashed),
		Role:                     role,
		CreatorApplicationStatus: status,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("creating user %s: %v", email, err)
	}
	return user
}

// CreateCourse inserts a course owned by creatorID with the given status.
func CreateCourse(t testing.TB, db *gorm.DB, creatorID uint, title string, status models.CourseStatus) *models.Course {
	t.Helper()
	course := &models.Course{
		Title:       title,
		Description: title + " description",
		Price:       10,
		CreatorID:   creatorID,
		Status:      status,
	}
	if err := db.Create(course).Error; err != nil {
		t.Fatalf("creating course %s: %v", title, err)
	}
	return course
}

// CreateLesson inserts a lesson; order must be unique across all courses.
func CreateLesson(t testing.TB, db *gorm.DB, courseID uint, order int) *models.Lesson {
	t.Helper()
	lesson := &models.Lesson{
		Title:       "Lesson",
		Description: "Lesson description",
		CourseID:    courseID,
		VideoURL:    "https://videos.example.com/lesson.mp4",
		Order:       order,
	}
	if err := db.Create(lesson).Error; err != nil {
		t.Fatalf("creating lesson %d: %v", order, err)
	}
	return lesson
}
