package repository

import (
	"github.com/waseem-akram-senarios/surveybot-sub001/internal/model"

	"gorm.io/gorm"
)

type TemplateRepository struct {
	DB *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) *TemplateRepository {
	return &TemplateRepository{DB: db}
}

func (r *TemplateRepository) Create(t *model.SurveyTemplate) error {
	return r.DB.Create(t).Error
}

func (r *TemplateRepository) FindByID(id string) (*model.SurveyTemplate, error) {
	var t model.SurveyTemplate
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.ord ASC")
	}).First(&t, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TemplateRepository) FindByName(name string) (*model.SurveyTemplate, error) {
	var t model.SurveyTemplate
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.ord ASC")
	}).First(&t, "name = ?", name).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TemplateRepository) List(page, pageSize int) ([]model.SurveyTemplate, int64, error) {
	var templates []model.SurveyTemplate
	var total int64

	r.DB.Model(&model.SurveyTemplate{}).Count(&total)

	offset := (page - 1) * pageSize
	err := r.DB.Offset(offset).Limit(pageSize).Order("created_at DESC").Find(&templates).Error
	return templates, total, err
}

func (r *TemplateRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Question{}, "template_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.SurveyTemplate{}, "id = ?", id).Error
	})
}
