package services

import (
	"strings"

	"microcourses/events"
	"microcourses/models"
	"microcourses/repositories"

	"github.com/pkg/errors"
)

type CourseService interface {
	CreateCourse(creator *models.User, req models.CreateCourseRequest) (*models.Course, error)
	ListCreatorCourses(creator *models.User) ([]models.Course, error)
	GetCourse(id uint, requester *models.User) (*models.Course, error)
	UpdateCourse(id uint, requester *models.User, req models.UpdateCourseRequest) (*models.Course, error)
	SubmitCourse(id uint, requester *models.User) (*models.Course, error)
	DeleteCourse(id uint, requester *models.User) error
	ListPublished() ([]models.Course, error)
	ListPendingReview() ([]models.Course, error)
	SetCourseStatus(id uint, status models.CourseStatus) (*models.Course, error)
}

type courseService struct {
	courseRepo repositories.CourseRepository
	publisher  events.Publisher
}

func NewCourseService(courseRepo repositories.CourseRepository, publisher events.Publisher) CourseService {
	return &courseService{courseRepo: courseRepo, publisher: publisher}
}

func (s *courseService) CreateCourse(creator *models.User, req models.CreateCourseRequest) (*models.Course, error) {
	if !creator.Standing().CanAuthorCourses() {
		return nil, models.Forbidden("Creator application not approved. Cannot create courses.")
	}
	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	if title == "" || description == "" {
		return nil, models.BadRequest("Please provide a title and description")
	}
	if req.Price < 0 {
		return nil, models.BadRequest("Price cannot be negative")
	}

	course := &models.Course{
		Title:       title,
		Description: description,
		Price:       req.Price,
		Thumbnail:   strings.TrimSpace(req.Thumbnail),
		CreatorID:   creator.ID,
		Status:      models.CourseDraft,
	}
	if err := s.courseRepo.Create(course); err != nil {
		return nil, errors.Wrap(err, "creating course")
	}
	return course, nil
}

func (s *courseService) ListCreatorCourses(creator *models.User) ([]models.Course, error) {
	courses, err := s.courseRepo.ListByCreator(creator.ID)
	if err != nil {
		return nil, errors.Wrap(err, "listing creator courses")
	}
	return courses, nil
}

func (s *courseService) GetCourse(id uint, requester *models.User) (*models.Course, error) {
	course, err := loadCourse(s.courseRepo, id)
	if err != nil {
		return nil, err
	}
	if !canView(course, requester) {
		return nil, models.Forbidden("Not authorized to view this course")
	}
	return course, nil
}

// UpdateCourse applies the truthy fields of req. A zero price or an empty
// string leaves the stored value unchanged.
func (s *courseService) UpdateCourse(id uint, requester *models.User, req models.UpdateCourseRequest) (*models.Course, error) {
	course, err := loadCourse(s.courseRepo, id)
	if err != nil {
		return nil, err
	}
	if !isOwner(course, requester) {
		return nil, models.Forbidden("Not authorized to update this course")
	}
	if req.Status != "" {
		if !req.Status.Valid() {
			return nil, models.BadRequest("Invalid course status")
		}
		if req.Status.AdminOnly() {
			return nil, models.Forbidden("Only admins can publish or reject courses")
		}
	}

	previous := course.Status
	changes := models.Course{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Price:       req.Price,
		Thumbnail:   strings.TrimSpace(req.Thumbnail),
		Status:      req.Status,
	}
	if err := s.courseRepo.Update(course, changes); err != nil {
		return nil, errors.Wrap(err, "updating course")
	}

	updated, err := loadCourse(s.courseRepo, id)
	if err != nil {
		return nil, err
	}
	s.statusChanged(updated, previous)
	return updated, nil
}

func (s *courseService) SubmitCourse(id uint, requester *models.User) (*models.Course, error) {
	course, err := loadCourse(s.courseRepo, id)
	if err != nil {
		return nil, err
	}
	if !isOwner(course, requester) {
		return nil, models.Forbidden("Not authorized to submit this course")
	}
	if course.Status != models.CourseDraft && course.Status != models.CourseRejected {
		return nil, models.Conflict("Only draft or rejected courses can be submitted for review")
	}
	return s.transition(course, models.CoursePendingReview)
}

func (s *courseService) DeleteCourse(id uint, requester *models.User) error {
	course, err := loadCourse(s.courseRepo, id)
	if err != nil {
		return err
	}
	if !isOwner(course, requester) {
		return models.Forbidden("Not authorized to delete this course")
	}
	if err := s.courseRepo.Delete(course.ID); err != nil {
		return errors.Wrap(err, "deleting course")
	}
	return nil
}

func (s *courseService) ListPublished() ([]models.Course, error) {
	courses, err := s.courseRepo.ListByStatus(models.CoursePublished)
	if err != nil {
		return nil, errors.Wrap(err, "listing published courses")
	}
	return courses, nil
}

func (s *courseService) ListPendingReview() ([]models.Course, error) {
	courses, err := s.courseRepo.ListByStatus(models.CoursePendingReview)
	if err != nil {
		return nil, errors.Wrap(err, "listing courses pending review")
	}
	return courses, nil
}

func (s *courseService) SetCourseStatus(id uint, status models.CourseStatus) (*models.Course, error) {
	if !status.AdminOnly() {
		return nil, models.BadRequest("Invalid status for admin update")
	}
	course, err := loadCourse(s.courseRepo, id)
	if err != nil {
		return nil, err
	}
	return s.transition(course, status)
}

func (s *courseService) transition(course *models.Course, status models.CourseStatus) (*models.Course, error) {
	previous := course.Status
	if err := s.courseRepo.UpdateStatus(course, status); err != nil {
		return nil, errors.Wrap(err, "updating course status")
	}
	course.Status = status
	s.statusChanged(course, previous)
	return course, nil
}

func (s *courseService) statusChanged(course *models.Course, previous models.CourseStatus) {
	if course.Status == previous {
		return
	}
	publish(s.publisher, events.TypeCourseStatusChanged, events.CourseStatusChanged{
		CourseID:  course.ID,
		Title:     course.Title,
		CreatorID: course.CreatorID,
		From:      string(previous),
		To:        string(course.Status),
	})
}
