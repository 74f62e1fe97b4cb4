package services

import (
	"context"
	"fmt"

	"microcourses/models"
	"microcourses/repositories"

	"github.com/pkg/errors"
)

// Transcriber turns a lesson video into text.
type Transcriber interface {
	Transcribe(ctx context.Context, videoURL string) (string, error)
}

// StubTranscript is the placeholder text produced for videoURL.
func StubTranscript(videoURL string) string {
	return fmt.Sprintf("This is a mock transcript for the video at %s. This feature would typically use an external API for actual speech-to-text conversion.", videoURL)
}

// StubTranscriber serves StubTranscript without any external call.
type StubTranscriber struct{}

func (StubTranscriber) Transcribe(_ context.Context, videoURL string) (string, error) {
	return StubTranscript(videoURL), nil
}

type TranscriptService interface {
	Generate(ctx context.Context, lessonID uint, requester *models.User) (*models.Lesson, error)
}

type transcriptService struct {
	courseRepo  repositories.CourseRepository
	lessonRepo  repositories.LessonRepository
	transcriber Transcriber
}

func NewTranscriptService(courseRepo repositories.CourseRepository, lessonRepo repositories.LessonRepository, transcriber Transcriber) TranscriptService {
	if transcriber == nil {
		transcriber = StubTranscriber{}
	}
	return &transcriptService{courseRepo: courseRepo, lessonRepo: lessonRepo, transcriber: transcriber}
}

func (s *transcriptService) Generate(ctx context.Context, lessonID uint, requester *models.User) (*models.Lesson, error) {
	lesson, err := s.lessonRepo.GetByID(lessonID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, models.NotFound("Lesson not found")
		}
		return nil, errors.Wrap(err, "loading lesson")
	}
	course, err := loadCourse(s.courseRepo, lesson.CourseID)
	if err != nil {
		return nil, err
	}
	if !isOwner(course, requester) {
		return nil, models.Forbidden("Not authorized to generate transcripts for this lesson")
	}

	text, err := s.transcriber.Transcribe(ctx, lesson.VideoURL)
	if err != nil {
		return nil, errors.Wrap(err, "transcribing video")
	}
	if err := s.lessonRepo.UpdateTranscript(lesson, text); err != nil {
		return nil, errors.Wrap(err, "saving transcript")
	}
	lesson.Transcript = text
	return lesson, nil
}
