package util

import "errors"

var (
	ErrTemplateNotFound   = errors.New("template not found")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrSurveyNotFound     = errors.New("survey not found")
	ErrSessionNotFound    = errors.New("call session not found")
	ErrTrunkNotConfigured = errors.New("outbound trunk not configured (SIP_TRUNK_ID must start with ST_)")
	ErrSMSNotConfigured   = errors.New("sms provider credentials not configured")
	ErrBrainNotConfigured = errors.New("llm provider not configured")
	ErrTemplateNameTaken  = errors.New("template name already in use")
	ErrEmptyPhoneNumber   = errors.New("phone number is required")
)
