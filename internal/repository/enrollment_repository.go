package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

func (r *EnrollmentRepository) FindByID(id uint) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.DB.First(&enrollment, id).Error
	return &enrollment, err
}

// EnrolledLearnerIDs returns which of the given learners already hold an
// enrollment in the course. Used to skip duplicates on bulk insert.
func (r *EnrollmentRepository) EnrolledLearnerIDs(db *gorm.DB, courseID uint, learnerIDs []uint) (map[uint]bool, error) {
	var ids []uint
	err := db.Model(&model.Enrollment{}).
		Where("course_id = ? AND learner_id IN ?", courseID, learnerIDs).
		Pluck("learner_id", &ids).Error
	if err != nil {
		return nil, err
	}

	existing := make(map[uint]bool, len(ids))
	for _, id := range ids {
		existing[id] = true
	}
	return existing, nil
}

func (r *EnrollmentRepository) ListEnrolledLearners(courseID uint) ([]model.User, error) {
	var learners []model.User
	err := r.DB.Model(&model.User{}).
		Joins("JOIN enrollments ON enrollments.learner_id = users.id").
		Where("enrollments.course_id = ?", courseID).
		Find(&learners).Error
	return learners, err
}

// ListAssignableLearners returns the tutor's learners that hold an ACTIVE
// collaboration and are not yet enrolled in the course.
func (r *EnrollmentRepository) ListAssignableLearners(tutorID, courseID uint) ([]model.User, error) {
	var learners []model.User
	err := r.DB.Model(&model.User{}).
		Joins("JOIN collaborations ON collaborations.learner_id = users.id").
		Where("collaborations.tutor_id = ? AND collaborations.status = ?", tutorID, model.CollaborationActive).
		Where("users.id NOT IN (?)",
			r.DB.Model(&model.Enrollment{}).Select("learner_id").Where("course_id = ?", courseID),
		).
		Find(&learners).Error
	return learners, err
}

func (r *EnrollmentRepository) ListByLearner(learnerID uint) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.DB.
		Preload("Course").
		Preload("Course.Tutor").
		Where("learner_id = ?", learnerID).
		Order("enrolled_at DESC").
		Find(&enrollments).Error
	return enrollments, err
}

func (r *EnrollmentRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Enrollment{}, id).Error
}
