package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"

	"github.com/waseem-akram-senarios/surveybot-sub001/internal/config"
	"github.com/waseem-akram-senarios/surveybot-sub001/internal/model"
	"github.com/waseem-akram-senarios/surveybot-sub001/internal/util"
	"github.com/waseem-akram-senarios/surveybot-sub001/pkg/monitoring"

	"github.com/google/uuid"
)

// CallSessionStore is the slice of the session repository the voice side
// needs; tests swap in a stub.
type CallSessionStore interface {
	Create(s *model.CallSession) error
	FindByRoomName(name string) (*model.CallSession, error)
	UpdateStatus(roomName, status string) error
	SetRecordingURL(roomName, url string) error
}

// VoiceService wraps the telephony provider's agent-dispatch and room APIs.
// Call state lives provider-side; this service only starts sessions and
// observes what the provider reports.
type VoiceService struct {
	cfg      config.LiveKitConfig
	client   HTTPDoer
	sessions CallSessionStore
}

func NewVoiceService(cfg config.LiveKitConfig, client HTTPDoer, sessions CallSessionStore) *VoiceService {
	if client == nil {
		client = &http.Client{}
	}
	return &VoiceService{cfg: cfg, client: client, sessions: sessions}
}

// DispatchResult is the caller-facing call handle.
type DispatchResult struct {
	RoomName   string `json:"roomName"`
	DispatchID string `json:"dispatchId"`
}

// CallStatus is best-effort telemetry; provider errors land in Error
// instead of failing the request.
type CallStatus struct {
	RoomName     string `json:"roomName"`
	Status       string `json:"status"`
	Active       bool   `json:"active"`
	Participants int    `json:"participants"`
	Error        string `json:"error,omitempty"`
}

// TranscriptEntry is one fragment of a call transcript.
type TranscriptEntry struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// TranscriptPlaceholder is returned when the provider has no transcript
// for a session, which is the common case: the agent records answers
// directly during the call.
const TranscriptPlaceholder = "No transcript was recorded for this call; answers were submitted directly during the call."

// NewRoomName generates a session name unique enough to avoid collisions:
// survey-<survey_id>-<8 hex chars>, or outbound-<10 digits> when the call
// has no survey context.
func NewRoomName(surveyID string) string {
	if surveyID != "" {
		return fmt.Sprintf("survey-%s-%s", surveyID, uuid.New().String()[:8])
	}
	digits := make([]byte, 10)
	for i := range digits {
		digits[i] = byte('0' + rand.Intn(10))
	}
	return "outbound-" + string(digits)
}

// Dispatch creates a uniquely named session and asks the provider to start
// an agent in it. Dispatch failure means no call will happen, so provider
// errors propagate instead of being absorbed.
func (s *VoiceService) Dispatch(ctx context.Context, phoneNumber, surveyID string) (*DispatchResult, error) {
	// Config problems are rejected before any network traffic.
	if !strings.HasPrefix(s.cfg.TrunkID, "ST_") {
		monitoring.CallDispatchCounter.WithLabelValues("refused").Inc()
		return nil, util.ErrTrunkNotConfigured
	}
	if strings.TrimSpace(phoneNumber) == "" {
		monitoring.CallDispatchCounter.WithLabelValues("refused").Inc()
		return nil, util.ErrEmptyPhoneNumber
	}

	roomName := NewRoomName(surveyID)

	metadata := map[string]string{"phone_number": phoneNumber}
	if surveyID != "" {
		metadata["survey_id"] = surveyID
	}
	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"agent_name": s.cfg.AgentName,
		"room":       roomName,
		"metadata":   string(metadataJSON),
		"sip_trunk":  s.cfg.TrunkID,
	}

	var out struct {
		ID string `json:"id"`
	}
	if err := s.post(ctx, "/twirp/livekit.AgentDispatchService/CreateDispatch", payload, &out); err != nil {
		monitoring.CallDispatchCounter.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("dispatch call for room %s: %w", roomName, err)
	}

	session := &model.CallSession{
		RoomName:    roomName,
		PhoneNumber: phoneNumber,
		SurveyID:    surveyID,
		DispatchID:  out.ID,
		Status:      model.CallStatusDispatched,
	}
	if err := s.sessions.Create(session); err != nil {
		return nil, err
	}

	monitoring.CallDispatchCounter.WithLabelValues("ok").Inc()
	return &DispatchResult{RoomName: roomName, DispatchID: out.ID}, nil
}

// Status looks the session up by room name. Not found means ended; any
// provider-side error is reported in the Error field, never raised.
func (s *VoiceService) Status(ctx context.Context, roomName string) *CallStatus {
	participants, err := s.listParticipants(ctx, roomName)
	if err != nil {
		if isNotFound(err) {
			// The room is gone; mirror the terminal state locally.
			s.sessions.UpdateStatus(roomName, model.CallStatusEnded)
			return &CallStatus{RoomName: roomName, Status: model.CallStatusEnded}
		}
		return &CallStatus{
			RoomName: roomName,
			Status:   model.CallStatusEnded,
			Error:    err.Error(),
		}
	}

	status := model.CallStatusEnded
	if len(participants) > 0 {
		status = model.CallStatusActive
	}
	s.sessions.UpdateStatus(roomName, status)
	return &CallStatus{
		RoomName:     roomName,
		Status:       status,
		Active:       len(participants) > 0,
		Participants: len(participants),
	}
}

// Transcript pulls transcript fragments the agent tucks into participant
// metadata. That convention is unreliable, so any failure or absence falls
// back to a single placeholder entry. Never raises.
func (s *VoiceService) Transcript(ctx context.Context, roomName string) []TranscriptEntry {
	placeholder := []TranscriptEntry{{Speaker: "system", Text: TranscriptPlaceholder}}

	participants, err := s.listParticipants(ctx, roomName)
	if err != nil {
		return placeholder
	}

	var entries []TranscriptEntry
	for _, p := range participants {
		if p.Metadata == "" {
			continue
		}
		var meta struct {
			Transcript []TranscriptEntry `json:"transcript"`
		}
		if err := json.Unmarshal([]byte(p.Metadata), &meta); err != nil {
			continue
		}
		entries = append(entries, meta.Transcript...)
	}

	if len(entries) == 0 {
		return placeholder
	}
	return entries
}

type participant struct {
	Identity string `json:"identity"`
	Metadata string `json:"metadata"`
}

func (s *VoiceService) listParticipants(ctx context.Context, roomName string) ([]participant, error) {
	var out struct {
		Participants []participant `json:"participants"`
	}
	err := s.post(ctx, "/twirp/livekit.RoomService/ListParticipants", map[string]string{"room": roomName}, &out)
	if err != nil {
		return nil, err
	}
	return out.Participants, nil
}

func (s *VoiceService) post(ctx context.Context, path string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(s.cfg.URL, "/")+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(s.cfg.APIKey, s.cfg.APISecret)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return util.ErrSessionNotFound
	}
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("provider returned %d: %s", resp.StatusCode, string(b))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func isNotFound(err error) bool {
	return errors.Is(err, util.ErrSessionNotFound)
}
