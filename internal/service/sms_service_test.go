package service

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/waseem-akram-senarios/surveybot-sub001/internal/config"
	"github.com/waseem-akram-senarios/surveybot-sub001/internal/model"
	"github.com/waseem-akram-senarios/surveybot-sub001/internal/util"
)

type stubSMSStore struct {
	created []*model.SMSMessage
}

func (s *stubSMSStore) Create(m *model.SMSMessage) error {
	s.created = append(s.created, m)
	return nil
}

func testTwilioConfig() config.TwilioConfig {
	return config.TwilioConfig{
		AccountSID: "AC123",
		AuthToken:  "token",
		FromNumber: "+15550001111",
	}
}

func TestSMSSendUnconfigured(t *testing.T) {
	doer := &stubDoer{}
	s := NewSMSService(config.TwilioConfig{}, doer, &stubSMSStore{})

	_, err := s.Send(context.Background(), "+15551234567", "hi", "")
	if !errors.Is(err, util.ErrSMSNotConfigured) {
		t.Fatalf("err = %v, want ErrSMSNotConfigured", err)
	}
	if len(doer.requests) != 0 {
		t.Fatal("no provider call should be made without credentials")
	}
}

func TestSMSSendEmptyPhone(t *testing.T) {
	s := NewSMSService(testTwilioConfig(), &stubDoer{}, &stubSMSStore{})

	_, err := s.Send(context.Background(), " ", "hi", "")
	if !errors.Is(err, util.ErrEmptyPhoneNumber) {
		t.Fatalf("err = %v, want ErrEmptyPhoneNumber", err)
	}
}

func TestSMSSend(t *testing.T) {
	doer := &stubDoer{body: `{"sid":"SM1","status":"queued"}`}
	store := &stubSMSStore{}
	s := NewSMSService(testTwilioConfig(), doer, store)

	msg, err := s.Send(context.Background(), "+15551234567", "Your survey call is coming up.", "sv1")
	if err != nil {
		t.Fatal(err)
	}

	req := doer.requests[0]
	if req.URL.String() != "https://api.twilio.com/2010-04-01/Accounts/AC123/Messages.json" {
		t.Fatalf("url = %q", req.URL)
	}
	user, pass, ok := req.BasicAuth()
	if !ok || user != "AC123" || pass != "token" {
		t.Fatalf("basic auth = %q/%q ok=%v", user, pass, ok)
	}
	form, err := url.ParseQuery(doer.bodies[0])
	if err != nil {
		t.Fatal(err)
	}
	if form.Get("To") != "+15551234567" || form.Get("From") != "+15550001111" {
		t.Fatalf("form = %v", form)
	}
	if form.Get("Body") != "Your survey call is coming up." {
		t.Fatalf("form body = %q", form.Get("Body"))
	}

	if msg.ProviderSID != "SM1" || msg.Status != "queued" {
		t.Fatalf("msg = %+v", msg)
	}
	if len(store.created) != 1 {
		t.Fatalf("log rows = %d", len(store.created))
	}
}

func TestSMSSendProviderFailure(t *testing.T) {
	store := &stubSMSStore{}
	s := NewSMSService(testTwilioConfig(), &stubDoer{status: 401, body: `{"message":"authenticate"}`}, store)

	_, err := s.Send(context.Background(), "+15551234567", "hi", "")
	if err == nil {
		t.Fatal("expected provider error to propagate")
	}
	if len(store.created) != 0 {
		t.Fatal("no log row should be written on failure")
	}
}
