package model

// Call session statuses. Transitions are observed from the voice provider,
// never driven locally.
const (
	CallStatusDispatched = "dispatched"
	CallStatusActive     = "active"
	CallStatusEnded      = "ended"
)

// CallSession tracks one dispatched outbound call. RoomName is the
// caller-facing call identifier; DispatchID is the provider's own handle.
type CallSession struct {
	BaseModel
	RoomName    string `gorm:"type:varchar(191);uniqueIndex" json:"roomName"`
	PhoneNumber string `gorm:"type:varchar(32)" json:"phoneNumber"`
	SurveyID    string `gorm:"index;type:varchar(36)" json:"surveyId"`
	DispatchID  string `gorm:"type:varchar(191)" json:"dispatchId"`
	Status      string `gorm:"type:varchar(32);default:dispatched" json:"status"`

	// RecordingURL is filled in after the provider's recording has been
	// transcoded and uploaded to object storage.
	RecordingURL string `gorm:"type:varchar(512)" json:"recordingUrl"`
}

func (CallSession) TableName() string {
	return "call_sessions"
}
