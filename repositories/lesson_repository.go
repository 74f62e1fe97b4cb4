package repositories

import (
	"microcourses/models"

	"gorm.io/gorm"
)

type LessonRepository interface {
	Create(lesson *models.Lesson) error
	GetByID(id uint) (*models.Lesson, error)
	ListByCourse(courseID uint) ([]models.Lesson, error)
	OrderTaken(courseID uint, order int, excludeID uint) (bool, error)
	Update(lesson *models.Lesson, changes models.Lesson) error
	UpdateTranscript(lesson *models.Lesson, transcript string) error
	Delete(id uint) error
}

type lessonRepository struct {
	db *gorm.DB
}

func NewLessonRepository(db *gorm.DB) LessonRepository {
	return &lessonRepository{db: db}
}

func (r *lessonRepository) Create(lesson *models.Lesson) error {
	return r.db.Create(lesson).Error
}

func (r *lessonRepository) GetByID(id uint) (*models.Lesson, error) {
	var lesson models.Lesson
	err := r.db.First(&lesson, id).Error
	return &lesson, err
}

func (r *lessonRepository) ListByCourse(courseID uint) ([]models.Lesson, error) {
	var lessons []models.Lesson
	err := r.db.Where("course_id = ?", courseID).Order("lesson_order asc").Find(&lessons).Error
	return lessons, err
}

// OrderTaken reports whether another lesson of the course already uses order.
func (r *lessonRepository) OrderTaken(courseID uint, order int, excludeID uint) (bool, error) {
	var count int64
	query := r.db.Model(&models.Lesson{}).Where("course_id = ? AND lesson_order = ?", courseID, order)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

// Update writes the non-zero fields of changes onto lesson.
func (r *lessonRepository) Update(lesson *models.Lesson, changes models.Lesson) error {
	return r.db.Model(lesson).Updates(changes).Error
}

func (r *lessonRepository) UpdateTranscript(lesson *models.Lesson, transcript string) error {
	return r.db.Model(lesson).Update("transcript", transcript).Error
}

func (r *lessonRepository) Delete(id uint) error {
	return r.db.Delete(&models.Lesson{}, id).Error
}
