package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/waseem-akram-senarios/surveybot-sub001/internal/config"
	"github.com/waseem-akram-senarios/surveybot-sub001/internal/model"
	"github.com/waseem-akram-senarios/surveybot-sub001/internal/util"
)

const twilioAPIBase = "https://api.twilio.com/2010-04-01"

// SMSStore persists the delivery log.
type SMSStore interface {
	Create(m *model.SMSMessage) error
}

// SMSService sends survey invitations and reminders through the Twilio
// REST API. Sending is commit-like: failures propagate to the caller.
type SMSService struct {
	cfg      config.TwilioConfig
	client   HTTPDoer
	messages SMSStore
	apiBase  string
}

func NewSMSService(cfg config.TwilioConfig, client HTTPDoer, messages SMSStore) *SMSService {
	if client == nil {
		client = &http.Client{}
	}
	return &SMSService{cfg: cfg, client: client, messages: messages, apiBase: twilioAPIBase}
}

// Send delivers one SMS and logs the delivery row. Missing credentials are
// rejected before any network call.
func (s *SMSService) Send(ctx context.Context, to, body, surveyID string) (*model.SMSMessage, error) {
	if s.cfg.AccountSID == "" || s.cfg.AuthToken == "" || s.cfg.FromNumber == "" {
		return nil, util.ErrSMSNotConfigured
	}
	if strings.TrimSpace(to) == "" {
		return nil, util.ErrEmptyPhoneNumber
	}

	form := url.Values{}
	form.Set("To", to)
	form.Set("From", s.cfg.FromNumber)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", s.apiBase, s.cfg.AccountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(s.cfg.AccountSID, s.cfg.AuthToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sms send to %s: %w", to, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("sms provider returned %d: %s", resp.StatusCode, string(respBody))
	}

	var out struct {
		SID    string `json:"sid"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, err
	}

	msg := &model.SMSMessage{
		To:          to,
		From:        s.cfg.FromNumber,
		Body:        body,
		SurveyID:    surveyID,
		ProviderSID: out.SID,
		Status:      out.Status,
	}
	if err := s.messages.Create(msg); err != nil {
		return nil, err
	}
	return msg, nil
}
