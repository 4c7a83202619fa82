package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type CollaborationRepository struct {
	DB *gorm.DB
}

func NewCollaborationRepository(db *gorm.DB) *CollaborationRepository {
	return &CollaborationRepository{DB: db}
}

func (r *CollaborationRepository) Create(collaboration *model.Collaboration) error {
	return r.DB.Create(collaboration).Error
}

func (r *CollaborationRepository) FindByID(id uint) (*model.Collaboration, error) {
	var collaboration model.Collaboration
	err := r.DB.First(&collaboration, id).Error
	return &collaboration, err
}

// FindPair returns the collaboration linking learner and tutor, if any.
func (r *CollaborationRepository) FindPair(learnerID, tutorID uint) (*model.Collaboration, error) {
	var collaboration model.Collaboration
	err := r.DB.
		Where("learner_id = ? AND tutor_id = ?", learnerID, tutorID).
		First(&collaboration).Error
	return &collaboration, err
}

func (r *CollaborationRepository) ActivePairExists(learnerID, tutorID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Collaboration{}).
		Where("learner_id = ? AND tutor_id = ? AND status = ?", learnerID, tutorID, model.CollaborationActive).
		Count(&count).Error
	return count > 0, err
}

func (r *CollaborationRepository) ListByTutor(tutorID uint) ([]model.Collaboration, error) {
	var collaborations []model.Collaboration
	err := r.DB.
		Preload("Learner").
		Where("tutor_id = ?", tutorID).
		Order("created_at DESC").
		Find(&collaborations).Error
	return collaborations, err
}

func (r *CollaborationRepository) ListAll() ([]model.Collaboration, error) {
	var collaborations []model.Collaboration
	err := r.DB.
		Preload("Learner").
		Preload("Tutor").
		Order("created_at DESC").
		Find(&collaborations).Error
	return collaborations, err
}

func (r *CollaborationRepository) UpdateStatus(id uint, status model.CollaborationStatus) error {
	return r.DB.Model(&model.Collaboration{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *CollaborationRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Collaboration{}, id).Error
}
