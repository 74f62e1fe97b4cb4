package services

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"microcourses/events"
	"microcourses/models"
	"microcourses/repositories"

	"github.com/pkg/errors"
)

// certificateHashBytes gives 160 bits of randomness per certificate.
const certificateHashBytes = 20

type EnrollmentService interface {
	Enroll(learner *models.User, courseID uint) (*models.Enrollment, error)
	CompleteLesson(learner *models.User, courseID, lessonID uint) (*models.Enrollment, error)
	GetProgress(learner *models.User) ([]models.Enrollment, error)
	IssueCertificate(learner *models.User, courseID uint) (*models.Enrollment, error)
}

type enrollmentService struct {
	enrollmentRepo repositories.EnrollmentRepository
	courseRepo     repositories.CourseRepository
	lessonRepo     repositories.LessonRepository
	publisher      events.Publisher
	now            func() time.Time
}

func NewEnrollmentService(
	enrollmentRepo repositories.EnrollmentRepository,
	courseRepo repositories.CourseRepository,
	lessonRepo repositories.LessonRepository,
	publisher events.Publisher,
) EnrollmentService {
	return &enrollmentService{
		enrollmentRepo: enrollmentRepo,
		courseRepo:     courseRepo,
		lessonRepo:     lessonRepo,
		publisher:      publisher,
		now:            time.Now,
	}
}

// CalculateProgress returns floor(100 * completed / total), capped at 100.
// A course without lessons has no progress.
func CalculateProgress(completed, total int64) int {
	if total <= 0 || completed <= 0 {
		return 0
	}
	if completed >= total {
		return 100
	}
	return int(completed * 100 / total)
}

// NewCertificateHash returns 40 hex characters from crypto/rand.
func NewCertificateHash() (string, error) {
	b := make([]byte, certificateHashBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func (s *enrollmentService) Enroll(learner *models.User, courseID uint) (*models.Enrollment, error) {
	course, err := loadCourse(s.courseRepo, courseID)
	if err != nil {
		return nil, err
	}
	if course.Status != models.CoursePublished {
		return nil, models.Forbidden("Course is not open for enrollment")
	}

	_, err = s.enrollmentRepo.GetByUserAndCourse(learner.ID, course.ID)
	if err == nil {
		return nil, models.Conflict("Already enrolled in this course")
	}
	if !repositories.IsNotFound(err) {
		return nil, errors.Wrap(err, "checking enrollment")
	}

	enrollment := &models.Enrollment{
		UserID:           learner.ID,
		CourseID:         course.ID,
		EnrolledAt:       s.now(),
		CompletedLessons: []uint{},
	}
	if err := s.enrollmentRepo.Create(enrollment); err != nil {
		if repositories.IsDuplicateKey(err) {
			return nil, models.Conflict("Already enrolled in this course")
		}
		return nil, errors.Wrap(err, "creating enrollment")
	}
	return enrollment, nil
}

func (s *enrollmentService) CompleteLesson(learner *models.User, courseID, lessonID uint) (*models.Enrollment, error) {
	enrollment, err := s.findEnrollment(learner.ID, courseID)
	if err != nil {
		return nil, err
	}

	lesson, err := s.lessonRepo.GetByID(lessonID)
	if err != nil && !repositories.IsNotFound(err) {
		return nil, errors.Wrap(err, "loading lesson")
	}
	if err != nil || lesson.CourseID != courseID {
		return nil, models.NotFound("Lesson not found in this course")
	}

	err = s.enrollmentRepo.Transaction(func(repo repositories.EnrollmentRepository) error {
		now := s.now()
		if err := repo.AddCompletion(enrollment.ID, lesson.ID, now); err != nil {
			return err
		}
		completed, err := repo.CountCompleted(enrollment.ID, courseID)
		if err != nil {
			return err
		}
		total, err := repo.CountLessons(courseID)
		if err != nil {
			return err
		}

		enrollment.Progress = CalculateProgress(completed, total)
		if enrollment.Progress == 100 {
			enrollment.CompletedAt = &now
		}
		return repo.SaveProgress(enrollment)
	})
	if err != nil {
		return nil, errors.Wrap(err, "recording lesson completion")
	}

	if err := s.decorate([]*models.Enrollment{enrollment}, false); err != nil {
		return nil, err
	}
	return enrollment, nil
}

func (s *enrollmentService) GetProgress(learner *models.User) ([]models.Enrollment, error) {
	enrollments, err := s.enrollmentRepo.ListByUser(learner.ID)
	if err != nil {
		return nil, errors.Wrap(err, "listing enrollments")
	}
	ptrs := make([]*models.Enrollment, len(enrollments))
	for i := range enrollments {
		ptrs[i] = &enrollments[i]
	}
	if err := s.decorate(ptrs, true); err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (s *enrollmentService) IssueCertificate(learner *models.User, courseID uint) (*models.Enrollment, error) {
	enrollment, err := s.findEnrollment(learner.ID, courseID)
	if err != nil {
		return nil, err
	}
	if enrollment.Progress != 100 {
		return nil, models.BadRequest("Course not 100% complete, certificate not available")
	}
	if enrollment.CertificateIssued {
		return enrollment, nil
	}

	hash, err := NewCertificateHash()
	if err != nil {
		return nil, errors.Wrap(err, "generating certificate hash")
	}
	issued, err := s.enrollmentRepo.IssueCertificate(enrollment, hash, s.now())
	if err != nil {
		return nil, errors.Wrap(err, "issuing certificate")
	}
	// a concurrent request may have issued first; the stored hash wins
	if err := s.enrollmentRepo.Reload(enrollment); err != nil {
		return nil, errors.Wrap(err, "reloading enrollment")
	}
	if !enrollment.CertificateIssued {
		return nil, models.BadRequest("Course not 100% complete, certificate not available")
	}

	if issued {
		s.certificateIssued(learner, enrollment)
	}
	return enrollment, nil
}

func (s *enrollmentService) findEnrollment(userID, courseID uint) (*models.Enrollment, error) {
	enrollment, err := s.enrollmentRepo.GetByUserAndCourse(userID, courseID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, models.NotFound("Enrollment not found for this course")
		}
		return nil, errors.Wrap(err, "loading enrollment")
	}
	return enrollment, nil
}

// decorate fills the completed lesson ids and, when withCourse is set, the
// course summary of each enrollment.
func (s *enrollmentService) decorate(enrollments []*models.Enrollment, withCourse bool) error {
	if len(enrollments) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(enrollments))
	courseIDs := make([]uint, 0, len(enrollments))
	for _, e := range enrollments {
		ids = append(ids, e.ID)
		courseIDs = append(courseIDs, e.CourseID)
	}

	completed, err := s.enrollmentRepo.CompletedLessonIDs(ids)
	if err != nil {
		return errors.Wrap(err, "loading completed lessons")
	}
	var courses map[uint]models.CourseSummary
	if withCourse {
		if courses, err = s.courseRepo.GetSummaries(courseIDs); err != nil {
			return errors.Wrap(err, "loading course summaries")
		}
	}

	for _, e := range enrollments {
		e.CompletedLessons = completed[e.ID]
		if e.CompletedLessons == nil {
			e.CompletedLessons = []uint{}
		}
		if summary, ok := courses[e.CourseID]; ok {
			summary := summary
			e.Course = &summary
		}
	}
	return nil
}

func (s *enrollmentService) certificateIssued(learner *models.User, enrollment *models.Enrollment) {
	payload := events.CertificateIssued{
		EnrollmentID:    enrollment.ID,
		UserID:          learner.ID,
		UserName:        learner.Name,
		UserEmail:       learner.Email,
		CourseID:        enrollment.CourseID,
		CertificateHash: enrollment.CertificateHash,
	}
	if enrollment.CompletedAt != nil {
		payload.CompletedAt = *enrollment.CompletedAt
	}
	if course, err := s.courseRepo.GetByID(enrollment.CourseID); err == nil {
		payload.CourseTitle = course.Title
	}
	publish(s.publisher, events.TypeCertificateIssued, payload)
}
