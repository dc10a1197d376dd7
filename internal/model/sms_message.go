package model

// SMSMessage is the delivery log for outbound SMS invitations/reminders.
type SMSMessage struct {
	BaseModel
	To          string `gorm:"type:varchar(32)" json:"to"`
	From        string `gorm:"type:varchar(32)" json:"from"`
	Body        string `gorm:"type:text" json:"body"`
	SurveyID    string `gorm:"index;type:varchar(36)" json:"surveyId"`
	ProviderSID string `gorm:"type:varchar(64)" json:"providerSid"`
	Status      string `gorm:"type:varchar(32)" json:"status"`
}

func (SMSMessage) TableName() string {
	return "sms_messages"
}
