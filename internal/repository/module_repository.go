package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type ModuleRepository struct {
	DB *gorm.DB
}

func NewModuleRepository(db *gorm.DB) *ModuleRepository {
	return &ModuleRepository{DB: db}
}

func (r *ModuleRepository) FindByID(id uint) (*model.Module, error) {
	var module model.Module
	err := r.DB.First(&module, id).Error
	return &module, err
}

// FindWithContent loads a module together with whichever content row it
// currently owns.
func (r *ModuleRepository) FindWithContent(db *gorm.DB, id uint) (*model.Module, error) {
	var module model.Module
	err := db.
		Preload("VideoContent").
		Preload("PDFContent").
		Preload("WebLink").
		First(&module, id).Error
	return &module, err
}

func (r *ModuleRepository) ListByCourse(db *gorm.DB, courseID uint) ([]model.Module, error) {
	var modules []model.Module
	err := db.
		Where("course_id = ?", courseID).
		Order("`order` ASC").
		Find(&modules).Error
	return modules, err
}
