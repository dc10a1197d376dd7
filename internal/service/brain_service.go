package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/waseem-akram-senarios/surveybot-sub001/internal/config"
	"github.com/waseem-akram-senarios/surveybot-sub001/internal/util"
)

// BrainService is the LLM-provider wrapper behind the /api/brain routes.
// Unlike BrainClient it does not degrade: a provider failure surfaces as an
// error and the route answers 502, leaving fallback policy to the caller.
type BrainService struct {
	config config.BrainConfig
	client HTTPDoer
}

func NewBrainService(cfg config.BrainConfig, client HTTPDoer) *BrainService {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &BrainService{config: cfg, client: client}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Sympathize produces a one-sentence empathetic acknowledgment of a
// respondent's answer, suitable for the agent to speak before moving on.
func (s *BrainService) Sympathize(ctx context.Context, question, response string) (string, error) {
	system := "You are the voice of a phone survey agent. Reply with a single short, warm, natural acknowledgment of the respondent's answer. No questions, no advice, at most 15 words."
	prompt := fmt.Sprintf("Question asked: %s\nRespondent said: %s", question, response)
	return s.chat(ctx, system, prompt)
}

// Translate translates text into the target language, returning only the
// translated text.
func (s *BrainService) Translate(ctx context.Context, text, language string) (string, error) {
	system := "You are a translator for survey scripts. Translate the user's text into the requested language. Return only the translation, keeping placeholders and numbers intact."
	prompt := fmt.Sprintf("Language: %s\nText: %s", language, text)
	return s.chat(ctx, system, prompt)
}

// TranslateCategories translates a batch of category labels in one call,
// preserving order. The model is asked for a JSON array so the result can
// be decoded without guessing at separators.
func (s *BrainService) TranslateCategories(ctx context.Context, categories []string, language string) ([]string, error) {
	src, err := json.Marshal(categories)
	if err != nil {
		return nil, err
	}

	system := "You translate survey answer options. Given a JSON array of labels, return ONLY a JSON array with each label translated into the requested language, same order, same length."
	prompt := fmt.Sprintf("Language: %s\nLabels: %s", language, string(src))

	raw, err := s.chat(ctx, system, prompt)
	if err != nil {
		return nil, err
	}

	var out []string
	if err := json.Unmarshal([]byte(extractJSON(raw)), &out); err != nil {
		return nil, fmt.Errorf("model returned invalid JSON array: %v", err)
	}
	return out, nil
}

// ParseAnswer maps a free-form spoken reply onto the question's canonical
// answer value (a declared category, a scale number, or the cleaned-up
// text for open questions).
func (s *BrainService) ParseAnswer(ctx context.Context, question, criteria string, options []string, reply string) (string, error) {
	var system string
	switch criteria {
	case "categorical":
		system = fmt.Sprintf("Match the respondent's reply to exactly one of these options: %s. Return only the matching option verbatim, or UNKNOWN if none fits.", strings.Join(options, ", "))
	case "scale":
		system = "The respondent answered a rating question. Return only the number they chose, as digits, or UNKNOWN if no number can be inferred."
	default:
		system = "Condense the respondent's reply into a short answer sentence. Return only that sentence."
	}
	prompt := fmt.Sprintf("Question: %s\nReply: %s", question, reply)
	return s.chat(ctx, system, prompt)
}

// FilterResponse decides whether a reply actually addresses the question
// or is noise (hold music, cross-talk, "can you repeat that").
func (s *BrainService) FilterResponse(ctx context.Context, question, reply string) (bool, error) {
	system := "Answer strictly YES or NO: does the reply attempt to answer the question?"
	prompt := fmt.Sprintf("Question: %s\nReply: %s", question, reply)
	verdict, err := s.chat(ctx, system, prompt)
	if err != nil {
		return false, err
	}
	return strings.HasPrefix(strings.ToUpper(strings.TrimSpace(verdict)), "YES"), nil
}

func (s *BrainService) chat(ctx context.Context, system, prompt string) (string, error) {
	if s.config.LLMBaseURL == "" || s.config.LLMAPIKey == "" {
		return "", util.ErrBrainNotConfigured
	}

	reqBody := chatCompletionRequest{
		Model: s.config.LLMModel,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.2,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.LLMBaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.LLMAPIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("LLM API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result chatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}

	if result.Error != nil {
		return "", fmt.Errorf("LLM API error: %s", result.Error.Message)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("LLM returned no choices")
	}

	return strings.TrimSpace(result.Choices[0].Message.Content), nil
}

// extractJSON trims markdown fences some models wrap around JSON output.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSuffix(raw, "```")
	}
	return strings.TrimSpace(raw)
}
