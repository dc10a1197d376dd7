package service

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/waseem-akram-senarios/surveybot-sub001/internal/config"
)

func newTestBrainClient(doer HTTPDoer) *BrainClient {
	return NewBrainClient(config.BrainConfig{BaseURL: "http://brain.local"}, doer, nil)
}

func TestBrainClientSympathize(t *testing.T) {
	doer := &stubDoer{body: `{"message":"That sounds rough, thanks for telling me."}`}
	c := newTestBrainClient(doer)

	msg, degraded := c.Sympathize(context.Background(), "How was your stay?", "Terrible.")
	if degraded {
		t.Fatal("unexpected degraded result")
	}
	if msg != "That sounds rough, thanks for telling me." {
		t.Fatalf("message = %q", msg)
	}
	if len(doer.requests) != 1 {
		t.Fatalf("requests = %d", len(doer.requests))
	}
	if got := doer.requests[0].URL.Path; got != "/api/brain/sympathize" {
		t.Fatalf("path = %q", got)
	}
	if !strings.Contains(doer.bodies[0], `"response":"Terrible."`) {
		t.Fatalf("body = %q", doer.bodies[0])
	}
}

func TestBrainClientSympathizeFallback(t *testing.T) {
	c := newTestBrainClient(&stubDoer{err: errors.New("connection refused")})

	msg, degraded := c.Sympathize(context.Background(), "q", "r")
	if !degraded {
		t.Fatal("expected degraded result")
	}
	if msg != DefaultSympathy {
		t.Fatalf("message = %q, want default sympathy", msg)
	}
}

func TestBrainClientTranslate(t *testing.T) {
	doer := &stubDoer{body: `{"translated":"Hola"}`}
	c := newTestBrainClient(doer)

	out, degraded := c.Translate(context.Background(), "Hello", "spanish")
	if degraded || out != "Hola" {
		t.Fatalf("Translate = %q degraded=%v", out, degraded)
	}
}

func TestBrainClientTranslateFallsBackToInput(t *testing.T) {
	cases := []struct {
		name string
		doer *stubDoer
	}{
		{"transport error", &stubDoer{err: errors.New("timeout")}},
		{"http 500", &stubDoer{status: 500, body: "boom"}},
		{"empty payload", &stubDoer{body: `{"translated":""}`}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestBrainClient(tc.doer)
			out, degraded := c.Translate(context.Background(), "Hello", "spanish")
			if !degraded {
				t.Fatal("expected degraded result")
			}
			if out != "Hello" {
				t.Fatalf("out = %q, want original text", out)
			}
		})
	}
}

func TestBrainClientTranslateEmptyText(t *testing.T) {
	doer := &stubDoer{}
	c := newTestBrainClient(doer)

	out, degraded := c.Translate(context.Background(), "", "spanish")
	if out != "" || degraded {
		t.Fatalf("Translate empty = %q degraded=%v", out, degraded)
	}
	if len(doer.requests) != 0 {
		t.Fatal("no request should be made for empty text")
	}
}

func TestBrainClientTranslateCategories(t *testing.T) {
	doer := &stubDoer{body: `{"translated":["sí","no"]}`}
	c := newTestBrainClient(doer)

	out, degraded := c.TranslateCategories(context.Background(), []string{"yes", "no"}, "spanish")
	if degraded {
		t.Fatal("unexpected degraded result")
	}
	if !reflect.DeepEqual(out, []string{"sí", "no"}) {
		t.Fatalf("out = %v", out)
	}
}

func TestBrainClientTranslateCategoriesFallback(t *testing.T) {
	c := newTestBrainClient(&stubDoer{err: errors.New("down")})

	in := []string{"yes", "no"}
	out, degraded := c.TranslateCategories(context.Background(), in, "spanish")
	if !degraded {
		t.Fatal("expected degraded result")
	}
	if !reflect.DeepEqual(out, in) {
		t.Fatalf("out = %v, want input unchanged", out)
	}
}

func TestBrainClientTranslateCategoriesEmpty(t *testing.T) {
	doer := &stubDoer{}
	c := newTestBrainClient(doer)

	out, degraded := c.TranslateCategories(context.Background(), nil, "spanish")
	if degraded || len(out) != 0 {
		t.Fatalf("out = %v degraded=%v", out, degraded)
	}
	if len(doer.requests) != 0 {
		t.Fatal("no request should be made for an empty batch")
	}
}
