package repository

import (
	"github.com/waseem-akram-senarios/surveybot-sub001/internal/model"

	"gorm.io/gorm"
)

type AnswerRepository struct {
	DB *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) *AnswerRepository {
	return &AnswerRepository{DB: db}
}

// CreateBatch inserts a full set of answers for one survey run at once.
func (r *AnswerRepository) CreateBatch(answers []model.Answer) error {
	if len(answers) == 0 {
		return nil
	}
	return r.DB.Create(&answers).Error
}

// ValuesByQuestion returns the raw recorded values for one question.
func (r *AnswerRepository) ValuesByQuestion(questionID string) ([]string, error) {
	var values []string
	err := r.DB.Model(&model.Answer{}).
		Where("question_id = ?", questionID).
		Pluck("value", &values).Error
	return values, err
}

func (r *AnswerRepository) ListBySurvey(surveyID string) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.DB.Where("survey_id = ?", surveyID).Find(&answers).Error
	return answers, err
}
