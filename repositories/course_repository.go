package repositories

import (
	"microcourses/models"

	"gorm.io/gorm"
)

type CourseRepository interface {
	Create(course *models.Course) error
	GetByID(id uint) (*models.Course, error)
	ListByCreator(creatorID uint) ([]models.Course, error)
	ListByStatus(status models.CourseStatus) ([]models.Course, error)
	Update(course *models.Course, changes models.Course) error
	UpdateStatus(course *models.Course, status models.CourseStatus) error
	Delete(id uint) error
	GetSummaries(ids []uint) (map[uint]models.CourseSummary, error)
}

type courseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(course *models.Course) error {
	if err := r.db.Create(course).Error; err != nil {
		return err
	}
	return r.attachCreators([]*models.Course{course})
}

func (r *courseRepository) GetByID(id uint) (*models.Course, error) {
	var course models.Course
	if err := r.db.First(&course, id).Error; err != nil {
		return &course, err
	}
	return &course, r.attachCreators([]*models.Course{&course})
}

func (r *courseRepository) ListByCreator(creatorID uint) ([]models.Course, error) {
	return r.list(r.db.Where("creator_id = ?", creatorID))
}

func (r *courseRepository) ListByStatus(status models.CourseStatus) ([]models.Course, error) {
	return r.list(r.db.Where("status = ?", status))
}

func (r *courseRepository) list(query *gorm.DB) ([]models.Course, error) {
	var courses []models.Course
	if err := query.Order("created_at desc, id desc").Find(&courses).Error; err != nil {
		return nil, err
	}
	ptrs := make([]*models.Course, len(courses))
	for i := range courses {
		ptrs[i] = &courses[i]
	}
	return courses, r.attachCreators(ptrs)
}

// Update writes the non-zero fields of changes onto course.
func (r *courseRepository) Update(course *models.Course, changes models.Course) error {
	return r.db.Model(course).Updates(changes).Error
}

func (r *courseRepository) UpdateStatus(course *models.Course, status models.CourseStatus) error {
	return r.db.Model(course).Update("status", status).Error
}

// Delete removes the course and its lessons. Enrollments are kept.
func (r *courseRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_id = ?", id).Delete(&models.Lesson{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Course{}, id).Error
	})
}

func (r *courseRepository) GetSummaries(ids []uint) (map[uint]models.CourseSummary, error) {
	out := make(map[uint]models.CourseSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []models.CourseSummary
	err := r.db.Model(&models.Course{}).
		Select("id", "title", "description", "thumbnail").
		Where("id IN ?", ids).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ID] = row
	}
	return out, nil
}

func (r *courseRepository) attachCreators(courses []*models.Course) error {
	if len(courses) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(courses))
	for _, c := range courses {
		ids = append(ids, c.CreatorID)
	}
	creators, err := NewUserRepository(r.db).GetSummaries(ids)
	if err != nil {
		return err
	}
	for _, c := range courses {
		if s, ok := creators[c.CreatorID]; ok {
			s := s
			c.Creator = &s
		}
	}
	return nil
}
