package services

import (
	"strings"

	"microcourses/models"
	"microcourses/repositories"

	"github.com/pkg/errors"
)

type LessonService interface {
	AddLesson(courseID uint, requester *models.User, req models.CreateLessonRequest) (*models.Lesson, error)
	ListLessons(courseID uint, requester *models.User) ([]models.Lesson, error)
	GetLesson(courseID, lessonID uint, requester *models.User) (*models.Lesson, error)
	UpdateLesson(courseID, lessonID uint, requester *models.User, req models.UpdateLessonRequest) (*models.Lesson, error)
	DeleteLesson(courseID, lessonID uint, requester *models.User) error
}

type lessonService struct {
	courseRepo repositories.CourseRepository
	lessonRepo repositories.LessonRepository
}

func NewLessonService(courseRepo repositories.CourseRepository, lessonRepo repositories.LessonRepository) LessonService {
	return &lessonService{courseRepo: courseRepo, lessonRepo: lessonRepo}
}

var errOrderTaken = models.Conflict("Lesson order must be unique")

func (s *lessonService) AddLesson(courseID uint, requester *models.User, req models.CreateLessonRequest) (*models.Lesson, error) {
	course, err := loadCourse(s.courseRepo, courseID)
	if err != nil {
		return nil, err
	}
	if !isOwner(course, requester) {
		return nil, models.Forbidden("Not authorized to add lessons to this course")
	}
	if req.Order < 1 {
		return nil, models.BadRequest("Lesson order must be a positive number")
	}

	taken, err := s.lessonRepo.OrderTaken(course.ID, req.Order, 0)
	if err != nil {
		return nil, errors.Wrap(err, "checking lesson order")
	}
	if taken {
		return nil, models.Conflict("Lesson order must be unique within the course")
	}

	lesson := &models.Lesson{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		CourseID:    course.ID,
		VideoURL:    strings.TrimSpace(req.VideoURL),
		Order:       req.Order,
	}
	if err := s.lessonRepo.Create(lesson); err != nil {
		if repositories.IsDuplicateKey(err) {
			return nil, errOrderTaken
		}
		return nil, errors.Wrap(err, "creating lesson")
	}
	return lesson, nil
}

func (s *lessonService) ListLessons(courseID uint, requester *models.User) ([]models.Lesson, error) {
	course, err := loadCourse(s.courseRepo, courseID)
	if err != nil {
		return nil, err
	}
	if !canView(course, requester) {
		return nil, models.Forbidden("Not authorized to view lessons for this course")
	}
	lessons, err := s.lessonRepo.ListByCourse(course.ID)
	if err != nil {
		return nil, errors.Wrap(err, "listing lessons")
	}
	return lessons, nil
}

func (s *lessonService) GetLesson(courseID, lessonID uint, requester *models.User) (*models.Lesson, error) {
	course, lesson, err := s.load(courseID, lessonID)
	if err != nil {
		return nil, err
	}
	if lesson.CourseID != course.ID {
		return nil, models.BadRequest("Lesson does not belong to this course")
	}
	if !canView(course, requester) {
		return nil, models.Forbidden("Not authorized to view this lesson")
	}
	return lesson, nil
}

// UpdateLesson applies the truthy fields of req.
func (s *lessonService) UpdateLesson(courseID, lessonID uint, requester *models.User, req models.UpdateLessonRequest) (*models.Lesson, error) {
	course, lesson, err := s.load(courseID, lessonID)
	if err != nil {
		return nil, err
	}
	if !isOwner(course, requester) {
		return nil, models.Forbidden("Not authorized to update lessons in this course")
	}
	if lesson.CourseID != course.ID {
		return nil, models.BadRequest("Lesson does not belong to this course")
	}

	if req.Order != 0 && req.Order != lesson.Order {
		taken, err := s.lessonRepo.OrderTaken(course.ID, req.Order, lesson.ID)
		if err != nil {
			return nil, errors.Wrap(err, "checking lesson order")
		}
		if taken {
			return nil, models.Conflict("Lesson order must be unique within the course")
		}
	}

	changes := models.Lesson{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		VideoURL:    strings.TrimSpace(req.VideoURL),
		Order:       req.Order,
		Transcript:  req.Transcript,
	}
	if err := s.lessonRepo.Update(lesson, changes); err != nil {
		if repositories.IsDuplicateKey(err) {
			return nil, errOrderTaken
		}
		return nil, errors.Wrap(err, "updating lesson")
	}

	updated, err := s.lessonRepo.GetByID(lesson.ID)
	if err != nil {
		return nil, errors.Wrap(err, "reloading lesson")
	}
	return updated, nil
}

func (s *lessonService) DeleteLesson(courseID, lessonID uint, requester *models.User) error {
	course, lesson, err := s.load(courseID, lessonID)
	if err != nil {
		return err
	}
	if !isOwner(course, requester) {
		return models.Forbidden("Not authorized to delete lessons from this course")
	}
	if lesson.CourseID != course.ID {
		return models.BadRequest("Lesson does not belong to this course")
	}
	if err := s.lessonRepo.Delete(lesson.ID); err != nil {
		return errors.Wrap(err, "deleting lesson")
	}
	return nil
}

func (s *lessonService) load(courseID, lessonID uint) (*models.Course, *models.Lesson, error) {
	course, err := s.courseRepo.GetByID(courseID)
	if err != nil && !repositories.IsNotFound(err) {
		return nil, nil, errors.Wrap(err, "loading course")
	}
	courseMissing := err != nil

	lesson, err := s.lessonRepo.GetByID(lessonID)
	if err != nil && !repositories.IsNotFound(err) {
		return nil, nil, errors.Wrap(err, "loading lesson")
	}
	if courseMissing || err != nil {
		return nil, nil, models.NotFound("Course or Lesson not found")
	}
	return course, lesson, nil
}
