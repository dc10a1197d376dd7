package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/waseem-akram-senarios/surveybot-sub001/internal/config"
	"github.com/waseem-akram-senarios/surveybot-sub001/pkg/logger"
	"github.com/waseem-akram-senarios/surveybot-sub001/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// HTTPDoer lets tests swap the transport out.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// DefaultSympathy is returned whenever the brain service cannot produce an
// acknowledgment phrase. A flat but safe line beats a dead pause mid-call.
const DefaultSympathy = "Thank you for sharing that with me."

// BrainClient talks to the brain service over HTTP. Every operation is
// best-effort: on any failure it returns a safe default together with
// degraded=true so callers and tests can see that the fallback fired. A
// brain outage degrades survey quality but never aborts a survey.
type BrainClient struct {
	baseURL  string
	client   HTTPDoer
	cache    *redis.Client
	cacheTTL time.Duration
}

func NewBrainClient(cfg config.BrainConfig, client HTTPDoer, cache *redis.Client) *BrainClient {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &BrainClient{
		baseURL:  cfg.BaseURL,
		client:   client,
		cache:    cache,
		cacheTTL: ttl,
	}
}

// Sympathize produces an empathetic acknowledgment for a respondent's
// answer. Degrades to DefaultSympathy.
func (c *BrainClient) Sympathize(ctx context.Context, question, response string) (string, bool) {
	var out struct {
		Message string `json:"message"`
	}
	err := c.post(ctx, "/api/brain/sympathize", map[string]string{
		"question": question,
		"response": response,
	}, &out)
	if err != nil || out.Message == "" {
		c.degraded("sympathize", err)
		return DefaultSympathy, true
	}
	return out.Message, false
}

// Translate translates a single string. Degrades to the untranslated input.
func (c *BrainClient) Translate(ctx context.Context, text, language string) (string, bool) {
	if text == "" {
		return "", false
	}

	if cached, ok := c.cachedTranslation(ctx, language, text); ok {
		return cached, false
	}

	var out struct {
		Translated string `json:"translated"`
	}
	err := c.post(ctx, "/api/brain/translate", map[string]string{
		"text":     text,
		"language": language,
	}, &out)
	if err != nil || out.Translated == "" {
		c.degraded("translate", err)
		return text, true
	}

	c.storeTranslation(ctx, language, text, out.Translated)
	return out.Translated, false
}

// TranslateCategories translates a batch of labels in one call. Degrades to
// the untranslated input slice.
func (c *BrainClient) TranslateCategories(ctx context.Context, categories []string, language string) ([]string, bool) {
	if len(categories) == 0 {
		return []string{}, false
	}

	var out struct {
		Translated []string `json:"translated"`
	}
	err := c.post(ctx, "/api/brain/translate-categories", map[string]interface{}{
		"categories": categories,
		"language":   language,
	}, &out)
	if err != nil || len(out.Translated) == 0 {
		c.degraded("translate_categories", err)
		return categories, true
	}
	return out.Translated, false
}

func (c *BrainClient) post(ctx context.Context, path string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("brain service returned %d: %s", resp.StatusCode, string(b))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// degraded records a fallback. One policy for every operation: warn-level
// log plus a counter, sympathize included.
func (c *BrainClient) degraded(operation string, err error) {
	monitoring.BrainFallbackCounter.WithLabelValues(operation).Inc()
	logger.Log.Warn("brain call degraded to fallback",
		zap.String("operation", operation),
		zap.Error(err),
	)
}

func translationCacheKey(language, text string) string {
	sum := sha256.Sum256([]byte(text))
	return "brain:tr:" + language + ":" + hex.EncodeToString(sum[:8])
}

func (c *BrainClient) cachedTranslation(ctx context.Context, language, text string) (string, bool) {
	if c.cache == nil {
		return "", false
	}
	val, err := c.cache.Get(ctx, translationCacheKey(language, text)).Result()
	if err != nil {
		// Cache miss and cache outage look the same here; fall through to
		// the HTTP call either way.
		return "", false
	}
	return val, true
}

func (c *BrainClient) storeTranslation(ctx context.Context, language, text, translated string) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Set(ctx, translationCacheKey(language, text), translated, c.cacheTTL).Err(); err != nil {
		logger.Log.Debug("translation cache write failed", zap.Error(err))
	}
}
