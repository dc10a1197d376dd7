package model

// Answer records one respondent value for a question during a survey run.
// Rows are immutable once written; aggregation only ever reads them.
type Answer struct {
	BaseModel
	QuestionID string `gorm:"index;type:varchar(36)" json:"questionId"`
	SurveyID   string `gorm:"index;type:varchar(36)" json:"surveyId"`
	Value      string `gorm:"type:text" json:"value"`
}

func (Answer) TableName() string {
	return "answers"
}
