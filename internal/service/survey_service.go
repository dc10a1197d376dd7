package service

import (
	"context"

	"github.com/waseem-akram-senarios/surveybot-sub001/internal/model"
	"github.com/waseem-akram-senarios/surveybot-sub001/internal/repository"
	"github.com/waseem-akram-senarios/surveybot-sub001/pkg/logger"

	"go.uber.org/zap"
)

// SurveyService owns survey runs: creating them, dispatching the outbound
// call, recording submitted answers.
type SurveyService struct {
	surveys   *repository.SurveyRepository
	templates *repository.TemplateRepository
	answers   *repository.AnswerRepository
	calls     *repository.CallSessionRepository
	sms       *repository.SMSRepository
	voice     *VoiceService
}

func NewSurveyService(surveys *repository.SurveyRepository, templates *repository.TemplateRepository, answers *repository.AnswerRepository, calls *repository.CallSessionRepository, sms *repository.SMSRepository, voice *VoiceService) *SurveyService {
	return &SurveyService{
		surveys:   surveys,
		templates: templates,
		answers:   answers,
		calls:     calls,
		sms:       sms,
		voice:     voice,
	}
}

// Create registers a pending survey run for a template and phone number.
func (s *SurveyService) Create(templateID, phoneNumber, language string) (*model.Survey, error) {
	if _, err := s.templates.FindByID(templateID); err != nil {
		return nil, err
	}

	survey := &model.Survey{
		TemplateID:  templateID,
		PhoneNumber: phoneNumber,
		Language:    language,
		Status:      model.SurveyStatusPending,
	}
	if err := s.surveys.Create(survey); err != nil {
		return nil, err
	}
	return survey, nil
}

// Dispatch starts the outbound call for a survey. Dispatch failure is a
// real failure: the survey stays pending and the error propagates.
func (s *SurveyService) Dispatch(ctx context.Context, surveyID string) (*DispatchResult, error) {
	survey, err := s.surveys.FindByID(surveyID)
	if err != nil {
		return nil, err
	}

	result, err := s.voice.Dispatch(ctx, survey.PhoneNumber, survey.ID)
	if err != nil {
		return nil, err
	}

	if err := s.surveys.UpdateStatus(survey.ID, model.SurveyStatusDispatched); err != nil {
		return nil, err
	}
	return result, nil
}

// SubmitAnswers records a batch of respondent answers for a survey run and
// marks it completed. Answers are immutable once written.
func (s *SurveyService) SubmitAnswers(surveyID string, values map[string]string) error {
	survey, err := s.surveys.FindByID(surveyID)
	if err != nil {
		return err
	}

	answers := make([]model.Answer, 0, len(values))
	for questionID, value := range values {
		answers = append(answers, model.Answer{
			QuestionID: questionID,
			SurveyID:   survey.ID,
			Value:      value,
		})
	}
	if err := s.answers.CreateBatch(answers); err != nil {
		return err
	}

	return s.surveys.UpdateStatus(survey.ID, model.SurveyStatusCompleted)
}

// SurveyDetail is the full picture of one run: the survey row plus
// everything recorded against it.
type SurveyDetail struct {
	Survey   *model.Survey       `json:"survey"`
	Answers  []model.Answer      `json:"answers"`
	Calls    []model.CallSession `json:"calls"`
	Messages []model.SMSMessage  `json:"messages"`
}

// Detail loads a survey with its answers, call sessions and SMS log.
func (s *SurveyService) Detail(surveyID string) (*SurveyDetail, error) {
	survey, err := s.surveys.FindByID(surveyID)
	if err != nil {
		return nil, err
	}

	answers, err := s.answers.ListBySurvey(surveyID)
	if err != nil {
		return nil, err
	}
	calls, err := s.calls.ListBySurvey(surveyID)
	if err != nil {
		return nil, err
	}
	messages, err := s.sms.ListBySurvey(surveyID)
	if err != nil {
		return nil, err
	}

	return &SurveyDetail{
		Survey:   survey,
		Answers:  answers,
		Calls:    calls,
		Messages: messages,
	}, nil
}

func (s *SurveyService) List(page, pageSize int) ([]model.Survey, int64, error) {
	return s.surveys.List(page, pageSize)
}

// DispatchPending is the scheduler's sweep job: pick up pending surveys
// and start their calls. One failing dispatch does not stop the sweep; the
// survey stays pending for the next pass.
func (s *SurveyService) DispatchPending(ctx context.Context, payload string) error {
	pending, err := s.surveys.ListByStatus(model.SurveyStatusPending, 20)
	if err != nil {
		return err
	}

	var lastErr error
	for _, survey := range pending {
		if _, err := s.Dispatch(ctx, survey.ID); err != nil {
			logger.Log.Warn("pending survey dispatch failed",
				zap.String("survey_id", survey.ID),
				zap.Error(err),
			)
			lastErr = err
		}
	}
	return lastErr
}
