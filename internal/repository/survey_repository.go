package repository

import (
	"errors"

	"github.com/waseem-akram-senarios/surveybot-sub001/internal/model"
	"github.com/waseem-akram-senarios/surveybot-sub001/internal/util"

	"gorm.io/gorm"
)

type SurveyRepository struct {
	DB *gorm.DB
}

func NewSurveyRepository(db *gorm.DB) *SurveyRepository {
	return &SurveyRepository{DB: db}
}

func (r *SurveyRepository) Create(s *model.Survey) error {
	return r.DB.Create(s).Error
}

func (r *SurveyRepository) FindByID(id string) (*model.Survey, error) {
	var s model.Survey
	err := r.DB.First(&s, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSurveyNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SurveyRepository) ListByStatus(status string, limit int) ([]model.Survey, error) {
	var surveys []model.Survey
	err := r.DB.Where("status = ?", status).Order("created_at ASC").Limit(limit).Find(&surveys).Error
	return surveys, err
}

func (r *SurveyRepository) UpdateStatus(id, status string) error {
	return r.DB.Model(&model.Survey{}).Where("id = ?", id).Update("status", status).Error
}

func (r *SurveyRepository) List(page, pageSize int) ([]model.Survey, int64, error) {
	var surveys []model.Survey
	var total int64

	r.DB.Model(&model.Survey{}).Count(&total)

	offset := (page - 1) * pageSize
	err := r.DB.Offset(offset).Limit(pageSize).Order("created_at DESC").Find(&surveys).Error
	return surveys, total, err
}
