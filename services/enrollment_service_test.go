package services_test

import (
	"encoding/hex"
	"testing"
	"time"

	"microcourses/events"
	"microcourses/models"
	"microcourses/repositories"
	"microcourses/services"
	"microcourses/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

func TestCalculateProgress(t *testing.T) {
	tests := []struct {
		name      string
		completed int64
		total     int64
		want      int
	}{
		{"no lessons", 0, 0, 0},
		{"none completed", 0, 4, 0},
		{"one of four", 1, 4, 25},
		{"one of three floors", 1, 3, 33},
		{"two of three floors", 2, 3, 66},
		{"all completed", 4, 4, 100},
		{"more completions than lessons", 5, 4, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, services.CalculateProgress(tt.completed, tt.total))
		})
	}
}

func TestNewCertificateHash(t *testing.T) {
	a, err := services.NewCertificateHash()
	require.NoError(t, err)
	b, err := services.NewCertificateHash()
	require.NoError(t, err)

	assert.Len(t, a, 40)
	_, err = hex.DecodeString(a)
	assert.NoError(t, err)
	assert.NotEqual(t, a, b)
}

type EnrollmentServiceTestSuite struct {
	suite.Suite
	db        *gorm.DB
	publisher *recordingPublisher
	svc       services.EnrollmentService
	learner   *models.User
	creator   *models.User
	course    *models.Course
	lessons   []*models.Lesson
}

func (s *EnrollmentServiceTestSuite) SetupTest() {
	s.db = testutil.PrepareDB(s.T())
	s.publisher = &recordingPublisher{}
	s.svc = services.NewEnrollmentService(
		repositories.NewEnrollmentRepository(s.db),
		repositories.NewCourseRepository(s.db),
		repositories.NewLessonRepository(s.db),
		s.publisher,
	)

	s.creator = testutil.CreateUser(s.T(), s.db, "Carol", "carol@x.com", models.RoleCreator, models.ApplicationApproved)
	s.learner = testutil.CreateUser(s.T(), s.db, "Alice", "a@x.com", models.RoleLearner, "")
	s.course = testutil.CreateCourse(s.T(), s.db, s.creator.ID, "Go Basics", models.CoursePublished)
	s.lessons = nil
	for order := 1; order <= 4; order++ {
		s.lessons = append(s.lessons, testutil.CreateLesson(s.T(), s.db, s.course.ID, order))
	}
}

func (s *EnrollmentServiceTestSuite) enroll() *models.Enrollment {
	enrollment, err := s.svc.Enroll(s.learner, s.course.ID)
	s.Require().NoError(err)
	return enrollment
}

func (s *EnrollmentServiceTestSuite) TestEnrollStartsAtZero() {
	enrollment := s.enroll()

	s.Equal(s.learner.ID, enrollment.UserID)
	s.Equal(s.course.ID, enrollment.CourseID)
	s.Equal(0, enrollment.Progress)
	s.Empty(enrollment.CompletedLessons)
	s.False(enrollment.CertificateIssued)
	s.Nil(enrollment.CompletedAt)
}

func (s *EnrollmentServiceTestSuite) TestEnrollTwiceConflicts() {
	s.enroll()

	_, err := s.svc.Enroll(s.learner, s.course.ID)
	s.IsType(models.ErrorConflict{}, err)

	var count int64
	s.db.Model(&models.Enrollment{}).Where("user_id = ? AND course_id = ?", s.learner.ID, s.course.ID).Count(&count)
	s.Equal(int64(1), count)
}

func (s *EnrollmentServiceTestSuite) TestDuplicateEnrollmentRejectedByIndex() {
	s.enroll()

	err := repositories.NewEnrollmentRepository(s.db).Create(&models.Enrollment{
		UserID:   s.learner.ID,
		CourseID: s.course.ID,
	})
	s.True(repositories.IsDuplicateKey(err))
}

func (s *EnrollmentServiceTestSuite) TestEnrollMissingCourse() {
	_, err := s.svc.Enroll(s.learner, 9999)
	s.IsType(models.ErrorNotFound{}, err)
}

// Only Published courses accept enrollments, even though the others exist.
func (s *EnrollmentServiceTestSuite) TestEnrollRequiresPublishedCourse() {
	for _, status := range []models.CourseStatus{models.CourseDraft, models.CoursePendingReview, models.CourseRejected} {
		course := testutil.CreateCourse(s.T(), s.db, s.creator.ID, string(status), status)

		_, err := s.svc.Enroll(s.learner, course.ID)
		s.IsType(models.ErrorForbidden{}, err, status)
	}

	var count int64
	s.db.Model(&models.Enrollment{}).Where("user_id = ?", s.learner.ID).Count(&count)
	s.Zero(count)
}

func (s *EnrollmentServiceTestSuite) TestProgressFormula() {
	s.enroll()

	enrollment, err := s.svc.CompleteLesson(s.learner, s.course.ID, s.lessons[0].ID)
	s.Require().NoError(err)
	s.Equal(25, enrollment.Progress)
	s.Nil(enrollment.CompletedAt)
	s.Equal([]uint{s.lessons[0].ID}, enrollment.CompletedLessons)

	for _, lesson := range s.lessons[1:] {
		enrollment, err = s.svc.CompleteLesson(s.learner, s.course.ID, lesson.ID)
		s.Require().NoError(err)
	}
	s.Equal(100, enrollment.Progress)
	s.NotNil(enrollment.CompletedAt)
	s.Len(enrollment.CompletedLessons, 4)
}

func (s *EnrollmentServiceTestSuite) TestCompleteLessonIsIdempotent() {
	s.enroll()

	first, err := s.svc.CompleteLesson(s.learner, s.course.ID, s.lessons[1].ID)
	s.Require().NoError(err)
	second, err := s.svc.CompleteLesson(s.learner, s.course.ID, s.lessons[1].ID)
	s.Require().NoError(err)

	s.Equal(first.Progress, second.Progress)
	s.Equal(25, second.Progress)
	s.Len(second.CompletedLessons, 1)
}

func (s *EnrollmentServiceTestSuite) TestCompleteLessonWithoutEnrollment() {
	_, err := s.svc.CompleteLesson(s.learner, s.course.ID, s.lessons[0].ID)
	s.IsType(models.ErrorNotFound{}, err)
}

func (s *EnrollmentServiceTestSuite) TestCompleteLessonFromAnotherCourse() {
	s.enroll()
	other := testutil.CreateCourse(s.T(), s.db, s.creator.ID, "Other", models.CoursePublished)
	foreign := testutil.CreateLesson(s.T(), s.db, other.ID, 50)

	_, err := s.svc.CompleteLesson(s.learner, s.course.ID, foreign.ID)
	s.IsType(models.ErrorNotFound{}, err)

	_, err = s.svc.CompleteLesson(s.learner, s.course.ID, 9999)
	s.IsType(models.ErrorNotFound{}, err)
}

func (s *EnrollmentServiceTestSuite) TestDeletedLessonsStopCounting() {
	s.enroll()
	_, err := s.svc.CompleteLesson(s.learner, s.course.ID, s.lessons[0].ID)
	s.Require().NoError(err)

	s.Require().NoError(repositories.NewLessonRepository(s.db).Delete(s.lessons[0].ID))

	enrollment, err := s.svc.CompleteLesson(s.learner, s.course.ID, s.lessons[1].ID)
	s.Require().NoError(err)
	// one of the three remaining lessons
	s.Equal(33, enrollment.Progress)
}

func (s *EnrollmentServiceTestSuite) completeAll() {
	for _, lesson := range s.lessons {
		_, err := s.svc.CompleteLesson(s.learner, s.course.ID, lesson.ID)
		s.Require().NoError(err)
	}
}

func (s *EnrollmentServiceTestSuite) TestCertificateRequiresFullProgress() {
	s.enroll()
	_, err := s.svc.CompleteLesson(s.learner, s.course.ID, s.lessons[0].ID)
	s.Require().NoError(err)

	_, err = s.svc.IssueCertificate(s.learner, s.course.ID)
	s.IsType(models.ErrorBadRequest{}, err)
}

func (s *EnrollmentServiceTestSuite) TestCertificateWithoutEnrollment() {
	_, err := s.svc.IssueCertificate(s.learner, s.course.ID)
	s.IsType(models.ErrorNotFound{}, err)
}

func (s *EnrollmentServiceTestSuite) TestCertificateIsIdempotent() {
	s.enroll()
	s.completeAll()

	first, err := s.svc.IssueCertificate(s.learner, s.course.ID)
	s.Require().NoError(err)
	s.True(first.CertificateIssued)
	s.Len(first.CertificateHash, 40)
	s.Require().NotNil(first.CompletedAt)

	second, err := s.svc.IssueCertificate(s.learner, s.course.ID)
	s.Require().NoError(err)
	s.Equal(first.CertificateHash, second.CertificateHash)
	s.Require().NotNil(second.CompletedAt)
	s.True(first.CompletedAt.Equal(*second.CompletedAt))

	issued := s.publisher.ofType(events.TypeCertificateIssued)
	s.Require().Len(issued, 1)
	payload := issued[0].Payload.(events.CertificateIssued)
	s.Equal(first.CertificateHash, payload.CertificateHash)
	s.Equal("Go Basics", payload.CourseTitle)
	s.Equal("a@x.com", payload.UserEmail)
}

func (s *EnrollmentServiceTestSuite) TestCertificateHashNeverOverwritten() {
	s.enroll()
	s.completeAll()
	first, err := s.svc.IssueCertificate(s.learner, s.course.ID)
	s.Require().NoError(err)

	repo := repositories.NewEnrollmentRepository(s.db)
	issued, err := repo.IssueCertificate(first, "ffffffffffffffffffffffffffffffffffffffff", first.EnrolledAt)
	s.Require().NoError(err)
	s.False(issued)

	again, err := s.svc.IssueCertificate(s.learner, s.course.ID)
	s.Require().NoError(err)
	s.Equal(first.CertificateHash, again.CertificateHash)
}

// lessonDroppingRepo lowers progress right before the certificate update,
// as a concurrent lesson addition would.
type lessonDroppingRepo struct {
	repositories.EnrollmentRepository
	db *gorm.DB
}

func (r lessonDroppingRepo) IssueCertificate(enrollment *models.Enrollment, hash string, at time.Time) (bool, error) {
	if err := r.db.Model(&models.Enrollment{}).Where("id = ?", enrollment.ID).Update("progress", 80).Error; err != nil {
		return false, err
	}
	return r.EnrollmentRepository.IssueCertificate(enrollment, hash, at)
}

func (s *EnrollmentServiceTestSuite) TestCertificateRejectedWhenProgressDropsMidway() {
	s.enroll()
	s.completeAll()

	svc := services.NewEnrollmentService(
		lessonDroppingRepo{EnrollmentRepository: repositories.NewEnrollmentRepository(s.db), db: s.db},
		repositories.NewCourseRepository(s.db),
		repositories.NewLessonRepository(s.db),
		s.publisher,
	)
	enrollment, err := svc.IssueCertificate(s.learner, s.course.ID)
	s.Nil(enrollment)
	s.IsType(models.ErrorBadRequest{}, err)
	s.Empty(s.publisher.ofType(events.TypeCertificateIssued))

	var stored models.Enrollment
	s.Require().NoError(s.db.First(&stored, "user_id = ? AND course_id = ?", s.learner.ID, s.course.ID).Error)
	s.False(stored.CertificateIssued)
	s.Empty(stored.CertificateHash)
}

func (s *EnrollmentServiceTestSuite) TestGetProgressIncludesCourseSummary() {
	s.enroll()
	_, err := s.svc.CompleteLesson(s.learner, s.course.ID, s.lessons[2].ID)
	s.Require().NoError(err)

	enrollments, err := s.svc.GetProgress(s.learner)
	s.Require().NoError(err)
	s.Require().Len(enrollments, 1)
	s.Equal(25, enrollments[0].Progress)
	s.Require().NotNil(enrollments[0].Course)
	s.Equal("Go Basics", enrollments[0].Course.Title)
	s.Equal([]uint{s.lessons[2].ID}, enrollments[0].CompletedLessons)
}

func (s *EnrollmentServiceTestSuite) TestGetProgressEmpty() {
	enrollments, err := s.svc.GetProgress(s.learner)
	s.Require().NoError(err)
	s.Empty(enrollments)
}

func TestEnrollmentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(EnrollmentServiceTestSuite))
}
