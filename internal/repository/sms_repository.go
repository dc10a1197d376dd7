package repository

import (
	"github.com/waseem-akram-senarios/surveybot-sub001/internal/model"

	"gorm.io/gorm"
)

type SMSRepository struct {
	DB *gorm.DB
}

func NewSMSRepository(db *gorm.DB) *SMSRepository {
	return &SMSRepository{DB: db}
}

func (r *SMSRepository) Create(m *model.SMSMessage) error {
	return r.DB.Create(m).Error
}

func (r *SMSRepository) ListBySurvey(surveyID string) ([]model.SMSMessage, error) {
	var messages []model.SMSMessage
	err := r.DB.Where("survey_id = ?", surveyID).Order("created_at DESC").Find(&messages).Error
	return messages, err
}
