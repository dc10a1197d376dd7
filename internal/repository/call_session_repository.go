package repository

import (
	"github.com/waseem-akram-senarios/surveybot-sub001/internal/model"

	"gorm.io/gorm"
)

type CallSessionRepository struct {
	DB *gorm.DB
}

func NewCallSessionRepository(db *gorm.DB) *CallSessionRepository {
	return &CallSessionRepository{DB: db}
}

func (r *CallSessionRepository) Create(s *model.CallSession) error {
	return r.DB.Create(s).Error
}

func (r *CallSessionRepository) FindByRoomName(roomName string) (*model.CallSession, error) {
	var s model.CallSession
	err := r.DB.First(&s, "room_name = ?", roomName).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *CallSessionRepository) UpdateStatus(roomName, status string) error {
	return r.DB.Model(&model.CallSession{}).Where("room_name = ?", roomName).Update("status", status).Error
}

func (r *CallSessionRepository) SetRecordingURL(roomName, url string) error {
	return r.DB.Model(&model.CallSession{}).Where("room_name = ?", roomName).Update("recording_url", url).Error
}

func (r *CallSessionRepository) ListBySurvey(surveyID string) ([]model.CallSession, error) {
	var sessions []model.CallSession
	err := r.DB.Where("survey_id = ?", surveyID).Order("created_at DESC").Find(&sessions).Error
	return sessions, err
}
