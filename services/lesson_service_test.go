package services_test

import (
	"testing"

	"microcourses/models"
	"microcourses/repositories"
	"microcourses/services"
	"microcourses/testutil"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type LessonServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	svc     services.LessonService
	creator *models.User
	learner *models.User
	course  *models.Course
	other   *models.Course
}

func (s *LessonServiceTestSuite) SetupTest() {
	s.db = testutil.PrepareDB(s.T())
	s.svc = services.NewLessonService(repositories.NewCourseRepository(s.db), repositories.NewLessonRepository(s.db))

	s.creator = testutil.CreateUser(s.T(), s.db, "Carol", "carol@x.com", models.RoleCreator, models.ApplicationApproved)
	s.learner = testutil.CreateUser(s.T(), s.db, "Alice", "a@x.com", models.RoleLearner, "")
	s.course = testutil.CreateCourse(s.T(), s.db, s.creator.ID, "Go Basics", models.CourseDraft)
	s.other = testutil.CreateCourse(s.T(), s.db, s.creator.ID, "Go Advanced", models.CourseDraft)
}

func (s *LessonServiceTestSuite) add(courseID uint, order int) *models.Lesson {
	lesson, err := s.svc.AddLesson(courseID, s.creator, models.CreateLessonRequest{
		Title:       "Intro",
		Description: "First steps",
		VideoURL:    "https://videos.example.com/intro.mp4",
		Order:       order,
	})
	s.Require().NoError(err)
	return lesson
}

func (s *LessonServiceTestSuite) TestAddLesson() {
	lesson := s.add(s.course.ID, 1)

	s.Equal(s.course.ID, lesson.CourseID)
	s.Equal(1, lesson.Order)
	s.Empty(lesson.Transcript)
}

func (s *LessonServiceTestSuite) TestAddLessonByNonOwner() {
	_, err := s.svc.AddLesson(s.course.ID, s.learner, models.CreateLessonRequest{
		Title: "x", Description: "y", VideoURL: "https://v.example.com/x", Order: 1,
	})
	s.IsType(models.ErrorForbidden{}, err)

	_, err = s.svc.AddLesson(9999, s.creator, models.CreateLessonRequest{Order: 1})
	s.IsType(models.ErrorNotFound{}, err)
}

func (s *LessonServiceTestSuite) TestOrderUniqueWithinCourse() {
	s.add(s.course.ID, 1)

	_, err := s.svc.AddLesson(s.course.ID, s.creator, models.CreateLessonRequest{
		Title: "Again", Description: "d", VideoURL: "https://v.example.com/x", Order: 1,
	})
	s.IsType(models.ErrorConflict{}, err)
}

// The order index spans every course.
func (s *LessonServiceTestSuite) TestOrderUniqueAcrossCourses() {
	s.add(s.course.ID, 1)

	_, err := s.svc.AddLesson(s.other.ID, s.creator, models.CreateLessonRequest{
		Title: "Other", Description: "d", VideoURL: "https://v.example.com/x", Order: 1,
	})
	s.IsType(models.ErrorConflict{}, err)
	s.Equal("Lesson order must be unique", err.Error())
}

func (s *LessonServiceTestSuite) TestListLessonsOrdered() {
	s.add(s.course.ID, 3)
	s.add(s.course.ID, 1)
	s.add(s.course.ID, 2)

	lessons, err := s.svc.ListLessons(s.course.ID, s.creator)
	s.Require().NoError(err)
	s.Require().Len(lessons, 3)
	s.Equal(1, lessons[0].Order)
	s.Equal(2, lessons[1].Order)
	s.Equal(3, lessons[2].Order)

	_, err = s.svc.ListLessons(s.course.ID, s.learner)
	s.IsType(models.ErrorForbidden{}, err)
}

func (s *LessonServiceTestSuite) TestGetLesson() {
	lesson := s.add(s.course.ID, 1)

	got, err := s.svc.GetLesson(s.course.ID, lesson.ID, s.creator)
	s.Require().NoError(err)
	s.Equal(lesson.ID, got.ID)

	_, err = s.svc.GetLesson(s.other.ID, lesson.ID, s.creator)
	s.IsType(models.ErrorBadRequest{}, err)

	_, err = s.svc.GetLesson(s.course.ID, 9999, s.creator)
	s.IsType(models.ErrorNotFound{}, err)

	_, err = s.svc.GetLesson(s.course.ID, lesson.ID, s.learner)
	s.IsType(models.ErrorForbidden{}, err)
}

func (s *LessonServiceTestSuite) TestUpdateLesson() {
	first := s.add(s.course.ID, 1)
	s.add(s.course.ID, 2)

	updated, err := s.svc.UpdateLesson(s.course.ID, first.ID, s.creator, models.UpdateLessonRequest{Title: "Renamed", Order: 1})
	s.Require().NoError(err)
	s.Equal("Renamed", updated.Title)
	s.Equal(1, updated.Order)
	s.Equal("First steps", updated.Description)

	_, err = s.svc.UpdateLesson(s.course.ID, first.ID, s.creator, models.UpdateLessonRequest{Order: 2})
	s.IsType(models.ErrorConflict{}, err)

	moved, err := s.svc.UpdateLesson(s.course.ID, first.ID, s.creator, models.UpdateLessonRequest{Order: 5})
	s.Require().NoError(err)
	s.Equal(5, moved.Order)
}

func (s *LessonServiceTestSuite) TestUpdateLessonErrors() {
	lesson := s.add(s.course.ID, 1)

	_, err := s.svc.UpdateLesson(s.other.ID, lesson.ID, s.creator, models.UpdateLessonRequest{Title: "x"})
	s.IsType(models.ErrorBadRequest{}, err)

	_, err = s.svc.UpdateLesson(s.course.ID, lesson.ID, s.learner, models.UpdateLessonRequest{Title: "x"})
	s.IsType(models.ErrorForbidden{}, err)

	_, err = s.svc.UpdateLesson(9999, lesson.ID, s.creator, models.UpdateLessonRequest{Title: "x"})
	s.IsType(models.ErrorNotFound{}, err)
}

func (s *LessonServiceTestSuite) TestDeleteLesson() {
	lesson := s.add(s.course.ID, 1)

	s.IsType(models.ErrorBadRequest{}, s.svc.DeleteLesson(s.other.ID, lesson.ID, s.creator))
	s.IsType(models.ErrorForbidden{}, s.svc.DeleteLesson(s.course.ID, lesson.ID, s.learner))
	s.Require().NoError(s.svc.DeleteLesson(s.course.ID, lesson.ID, s.creator))
	s.IsType(models.ErrorNotFound{}, s.svc.DeleteLesson(s.course.ID, lesson.ID, s.creator))

	// the order is free again
	s.add(s.other.ID, 1)
}

func TestLessonServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LessonServiceTestSuite))
}
