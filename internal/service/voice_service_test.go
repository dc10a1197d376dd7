package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"testing"

	"github.com/waseem-akram-senarios/surveybot-sub001/internal/config"
	"github.com/waseem-akram-senarios/surveybot-sub001/internal/model"
	"github.com/waseem-akram-senarios/surveybot-sub001/internal/util"
)

type stubSessionStore struct {
	created   []*model.CallSession
	byRoom    map[string]*model.CallSession
	statuses  map[string]string
	recording map[string]string
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{
		byRoom:    make(map[string]*model.CallSession),
		statuses:  make(map[string]string),
		recording: make(map[string]string),
	}
}

func (s *stubSessionStore) Create(sess *model.CallSession) error {
	s.created = append(s.created, sess)
	s.byRoom[sess.RoomName] = sess
	return nil
}

func (s *stubSessionStore) FindByRoomName(name string) (*model.CallSession, error) {
	if sess, ok := s.byRoom[name]; ok {
		return sess, nil
	}
	return nil, util.ErrSessionNotFound
}

func (s *stubSessionStore) UpdateStatus(roomName, status string) error {
	s.statuses[roomName] = status
	return nil
}

func (s *stubSessionStore) SetRecordingURL(roomName, url string) error {
	s.recording[roomName] = url
	return nil
}

func testLiveKitConfig() config.LiveKitConfig {
	return config.LiveKitConfig{
		URL:       "http://livekit.local",
		APIKey:    "key",
		APISecret: "secret",
		TrunkID:   "ST_abc123",
		AgentName: "survey-agent",
	}
}

func TestNewRoomName(t *testing.T) {
	withSurvey := regexp.MustCompile(`^survey-tpl42-[0-9a-f]{8}$`)
	if got := NewRoomName("tpl42"); !withSurvey.MatchString(got) {
		t.Fatalf("room name = %q", got)
	}

	bare := regexp.MustCompile(`^outbound-[0-9]{10}$`)
	if got := NewRoomName(""); !bare.MatchString(got) {
		t.Fatalf("room name = %q", got)
	}
}

func TestDispatchRefusesBadTrunk(t *testing.T) {
	cfg := testLiveKitConfig()
	cfg.TrunkID = "trunk-123"
	doer := &stubDoer{}
	s := NewVoiceService(cfg, doer, newStubSessionStore())

	_, err := s.Dispatch(context.Background(), "+15551234567", "sv1")
	if !errors.Is(err, util.ErrTrunkNotConfigured) {
		t.Fatalf("err = %v, want ErrTrunkNotConfigured", err)
	}
	if len(doer.requests) != 0 {
		t.Fatal("no provider call should be made with a bad trunk id")
	}
}

func TestDispatchRefusesEmptyPhone(t *testing.T) {
	doer := &stubDoer{}
	s := NewVoiceService(testLiveKitConfig(), doer, newStubSessionStore())

	_, err := s.Dispatch(context.Background(), "   ", "sv1")
	if !errors.Is(err, util.ErrEmptyPhoneNumber) {
		t.Fatalf("err = %v, want ErrEmptyPhoneNumber", err)
	}
	if len(doer.requests) != 0 {
		t.Fatal("no provider call should be made without a phone number")
	}
}

func TestDispatchCreatesSession(t *testing.T) {
	doer := &stubDoer{body: `{"id":"disp-1"}`}
	store := newStubSessionStore()
	s := NewVoiceService(testLiveKitConfig(), doer, store)

	res, err := s.Dispatch(context.Background(), "+15551234567", "sv1")
	if err != nil {
		t.Fatal(err)
	}
	if res.DispatchID != "disp-1" {
		t.Fatalf("dispatch id = %q", res.DispatchID)
	}
	if !strings.HasPrefix(res.RoomName, "survey-sv1-") {
		t.Fatalf("room name = %q", res.RoomName)
	}

	req := doer.requests[0]
	if req.URL.Path != "/twirp/livekit.AgentDispatchService/CreateDispatch" {
		t.Fatalf("path = %q", req.URL.Path)
	}
	user, pass, ok := req.BasicAuth()
	if !ok || user != "key" || pass != "secret" {
		t.Fatalf("basic auth = %q/%q ok=%v", user, pass, ok)
	}

	var payload struct {
		AgentName string `json:"agent_name"`
		Room      string `json:"room"`
		Metadata  string `json:"metadata"`
		SIPTrunk  string `json:"sip_trunk"`
	}
	if err := json.Unmarshal([]byte(doer.bodies[0]), &payload); err != nil {
		t.Fatal(err)
	}
	if payload.AgentName != "survey-agent" || payload.SIPTrunk != "ST_abc123" {
		t.Fatalf("payload = %+v", payload)
	}
	var meta map[string]string
	if err := json.Unmarshal([]byte(payload.Metadata), &meta); err != nil {
		t.Fatalf("metadata is not JSON: %v", err)
	}
	if meta["phone_number"] != "+15551234567" || meta["survey_id"] != "sv1" {
		t.Fatalf("metadata = %v", meta)
	}

	if len(store.created) != 1 {
		t.Fatalf("sessions created = %d", len(store.created))
	}
	sess := store.created[0]
	if sess.Status != model.CallStatusDispatched || sess.DispatchID != "disp-1" {
		t.Fatalf("session = %+v", sess)
	}
}

func TestDispatchProviderErrorPropagates(t *testing.T) {
	store := newStubSessionStore()
	s := NewVoiceService(testLiveKitConfig(), &stubDoer{status: http.StatusBadGateway, body: "upstream sad"}, store)

	_, err := s.Dispatch(context.Background(), "+15551234567", "sv1")
	if err == nil {
		t.Fatal("expected dispatch error")
	}
	if len(store.created) != 0 {
		t.Fatal("no session should be persisted on dispatch failure")
	}
}

func TestStatusRoomNotFoundMeansEnded(t *testing.T) {
	store := newStubSessionStore()
	s := NewVoiceService(testLiveKitConfig(), &stubDoer{status: http.StatusNotFound}, store)

	st := s.Status(context.Background(), "survey-x-deadbeef")
	if st.Status != model.CallStatusEnded || st.Error != "" {
		t.Fatalf("status = %+v", st)
	}
	if store.statuses["survey-x-deadbeef"] != model.CallStatusEnded {
		t.Fatal("terminal state was not mirrored to the session store")
	}
}

func TestStatusProviderErrorIsReportedNotRaised(t *testing.T) {
	s := NewVoiceService(testLiveKitConfig(), &stubDoer{err: errors.New("dial tcp: refused")}, newStubSessionStore())

	st := s.Status(context.Background(), "room")
	if st.Error == "" {
		t.Fatal("provider error should land in the Error field")
	}
	if st.Status != model.CallStatusEnded {
		t.Fatalf("status = %q", st.Status)
	}
}

func TestStatusActiveRoom(t *testing.T) {
	body := `{"participants":[{"identity":"agent"},{"identity":"caller"}]}`
	s := NewVoiceService(testLiveKitConfig(), &stubDoer{body: body}, newStubSessionStore())

	st := s.Status(context.Background(), "room")
	if !st.Active || st.Participants != 2 || st.Status != model.CallStatusActive {
		t.Fatalf("status = %+v", st)
	}
}

func TestTranscriptFromParticipantMetadata(t *testing.T) {
	meta := `{\"transcript\":[{\"speaker\":\"agent\",\"text\":\"Hello\"},{\"speaker\":\"caller\",\"text\":\"Hi\"}]}`
	body := `{"participants":[{"identity":"agent","metadata":"` + meta + `"}]}`
	s := NewVoiceService(testLiveKitConfig(), &stubDoer{body: body}, newStubSessionStore())

	entries := s.Transcript(context.Background(), "room")
	if len(entries) != 2 {
		t.Fatalf("entries = %+v", entries)
	}
	if entries[0].Speaker != "agent" || entries[1].Text != "Hi" {
		t.Fatalf("entries = %+v", entries)
	}
}

func TestTranscriptFallsBackToPlaceholder(t *testing.T) {
	cases := []struct {
		name string
		doer *stubDoer
	}{
		{"provider down", &stubDoer{err: errors.New("down")}},
		{"no metadata", &stubDoer{body: `{"participants":[{"identity":"agent"}]}`}},
		{"garbage metadata", &stubDoer{body: `{"participants":[{"identity":"agent","metadata":"not json"}]}`}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewVoiceService(testLiveKitConfig(), tc.doer, newStubSessionStore())
			entries := s.Transcript(context.Background(), "room")
			if len(entries) != 1 || entries[0].Text != TranscriptPlaceholder {
				t.Fatalf("entries = %+v", entries)
			}
		})
	}
}
