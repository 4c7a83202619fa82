package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.First(&course, id).Error
	return &course, err
}

// FindWithModules loads a course with its modules ordered ascending, each
// carrying the one content record matching its content type.
func (r *CourseRepository) FindWithModules(db *gorm.DB, id uint) (*model.Course, error) {
	var course model.Course
	err := db.
		Preload("Modules", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("`order` ASC")
		}).
		Preload("Modules.VideoContent").
		Preload("Modules.PDFContent").
		Preload("Modules.WebLink").
		First(&course, id).Error
	return &course, err
}

func (r *CourseRepository) ListAll() ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Order("created_at DESC").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) ListByTutor(tutorID uint) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("tutor_id = ?", tutorID).Order("created_at DESC").Find(&courses).Error
	return courses, err
}

// TutorIDOf re-fetches the owning tutor from storage. Ownership checks go
// through here so a client-supplied tutor id is never trusted.
func (r *CourseRepository) TutorIDOf(courseID uint) (uint, error) {
	var course model.Course
	err := r.DB.Select("tutor_id").First(&course, courseID).Error
	if err != nil {
		return 0, err
	}
	return course.TutorID, nil
}

func (r *CourseRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	return r.DB.Model(&model.Course{}).Where("id = ?", id).Updates(fields).Error
}
