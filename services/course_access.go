package services

import (
	"microcourses/models"
	"microcourses/repositories"

	"github.com/pkg/errors"
)

func loadCourse(repo repositories.CourseRepository, id uint) (*models.Course, error) {
	course, err := repo.GetByID(id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, models.NotFound("Course not found")
		}
		return nil, errors.Wrap(err, "loading course")
	}
	return course, nil
}

// canView: admins and the owner see every course, everybody else only
// published ones.
func canView(course *models.Course, user *models.User) bool {
	if user.Role == models.RoleAdmin || course.CreatorID == user.ID {
		return true
	}
	return course.Status == models.CoursePublished
}

func isOwner(course *models.Course, user *models.User) bool {
	return course.CreatorID == user.ID
}
