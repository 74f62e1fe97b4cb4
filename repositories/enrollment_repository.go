package repositories

import (
	"time"

	"microcourses/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EnrollmentRepository interface {
	Create(enrollment *models.Enrollment) error
	GetByUserAndCourse(userID, courseID uint) (*models.Enrollment, error)
	ListByUser(userID uint) ([]models.Enrollment, error)
	AddCompletion(enrollmentID, lessonID uint, at time.Time) error
	CountCompleted(enrollmentID, courseID uint) (int64, error)
	CountLessons(courseID uint) (int64, error)
	CompletedLessonIDs(enrollmentIDs []uint) (map[uint][]uint, error)
	SaveProgress(enrollment *models.Enrollment) error
	IssueCertificate(enrollment *models.Enrollment, hash string, at time.Time) (bool, error)
	Reload(enrollment *models.Enrollment) error
	Transaction(fn func(repo EnrollmentRepository) error) error
}

type enrollmentRepository struct {
	db *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (r *enrollmentRepository) Create(enrollment *models.Enrollment) error {
	return r.db.Create(enrollment).Error
}

func (r *enrollmentRepository) GetByUserAndCourse(userID, courseID uint) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	err := r.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error
	return &enrollment, err
}

func (r *enrollmentRepository) ListByUser(userID uint) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	err := r.db.Where("user_id = ?", userID).Order("enrolled_at desc, id desc").Find(&enrollments).Error
	return enrollments, err
}

// AddCompletion records lessonID as completed; repeated calls are no-ops.
func (r *enrollmentRepository) AddCompletion(enrollmentID, lessonID uint, at time.Time) error {
	completion := models.LessonCompletion{
		EnrollmentID: enrollmentID,
		LessonID:     lessonID,
		CompletedAt:  at,
	}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&completion).Error
}

// CountCompleted counts completions whose lesson still belongs to the course.
func (r *enrollmentRepository) CountCompleted(enrollmentID, courseID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.LessonCompletion{}).
		Joins("JOIN lessons ON lessons.id = lesson_completions.lesson_id").
		Where("lesson_completions.enrollment_id = ? AND lessons.course_id = ?", enrollmentID, courseID).
		Count(&count).Error
	return count, err
}

func (r *enrollmentRepository) CountLessons(courseID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Lesson{}).Where("course_id = ?", courseID).Count(&count).Error
	return count, err
}

func (r *enrollmentRepository) CompletedLessonIDs(enrollmentIDs []uint) (map[uint][]uint, error) {
	out := make(map[uint][]uint, len(enrollmentIDs))
	if len(enrollmentIDs) == 0 {
		return out, nil
	}
	var rows []models.LessonCompletion
	err := r.db.Where("enrollment_id IN ?", enrollmentIDs).Order("completed_at asc, id asc").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.EnrollmentID] = append(out[row.EnrollmentID], row.LessonID)
	}
	return out, nil
}

func (r *enrollmentRepository) SaveProgress(enrollment *models.Enrollment) error {
	return r.db.Model(enrollment).Select("progress", "completed_at").Updates(enrollment).Error
}

// IssueCertificate sets the certificate fields only if none were issued yet.
// It reports whether this call issued the certificate.
func (r *enrollmentRepository) IssueCertificate(enrollment *models.Enrollment, hash string, at time.Time) (bool, error) {
	res := r.db.Model(&models.Enrollment{}).
		Where("id = ? AND certificate_issued = ? AND progress = ?", enrollment.ID, false, 100).
		Updates(map[string]interface{}{
			"certificate_issued": true,
			"certificate_hash":   hash,
			"completed_at":       at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *enrollmentRepository) Reload(enrollment *models.Enrollment) error {
	return r.db.First(enrollment, enrollment.ID).Error
}

func (r *enrollmentRepository) Transaction(fn func(repo EnrollmentRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&enrollmentRepository{db: tx})
	})
}
