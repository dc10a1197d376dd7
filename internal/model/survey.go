package model

// SurveyTemplate groups an ordered set of questions under a name and a
// language. Translated templates are independent rows pointing back to the
// source through their questions' OldID fields.
type SurveyTemplate struct {
	UUIDBase
	Name     string `gorm:"type:varchar(191);uniqueIndex" json:"name"`
	Language string `gorm:"type:varchar(16)" json:"language"`

	Questions []Question `gorm:"foreignKey:TemplateID" json:"questions,omitempty"`
}

func (SurveyTemplate) TableName() string {
	return "survey_templates"
}

// Survey statuses as driven by dispatch and the scheduler sweep.
const (
	SurveyStatusPending    = "pending"
	SurveyStatusDispatched = "dispatched"
	SurveyStatusCompleted  = "completed"
	SurveyStatusFailed     = "failed"
)

// Survey is one outbound run of a template against a phone number.
type Survey struct {
	UUIDBase
	TemplateID  string `gorm:"index;type:varchar(36)" json:"templateId"`
	PhoneNumber string `gorm:"type:varchar(32)" json:"phoneNumber"`
	Status      string `gorm:"type:varchar(32);default:pending;index" json:"status"`
	Language    string `gorm:"type:varchar(16)" json:"language"`
}

func (Survey) TableName() string {
	return "surveys"
}
