package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/waseem-akram-senarios/surveybot-sub001/internal/model"
)

func TestTranslateQuestionCategorical(t *testing.T) {
	brain := newTestBrainClient(doerFunc(func(req *http.Request) (*http.Response, error) {
		switch req.URL.Path {
		case "/api/brain/translate":
			return jsonResponse(200, `{"translated":"¿Disfrutó su estancia?"}`), nil
		case "/api/brain/translate-categories":
			return jsonResponse(200, `{"translated":["sí","no"]}`), nil
		}
		return nil, errors.New("unexpected path " + req.URL.Path)
	}))
	s := NewTranslationService(nil, nil, brain)

	src := &model.Question{
		UUIDBase:   model.UUIDBase{ID: "src-id"},
		TemplateID: "tpl-en",
		Text:       "Did you enjoy your stay?",
		Criteria:   model.CriteriaCategorical,
		Ord:        3,
		Language:   "english",
	}
	src.SetCategories([]string{"yes", "no"})

	out, err := s.TranslateQuestion(context.Background(), src, "tpl-es", "spanish")
	if err != nil {
		t.Fatal(err)
	}

	if out.ID == "" || out.ID == src.ID {
		t.Fatalf("translated question must get a fresh id, got %q", out.ID)
	}
	if out.OldID != "src-id" {
		t.Fatalf("OldID = %q, want source id", out.OldID)
	}
	if out.TemplateID != "tpl-es" {
		t.Fatalf("TemplateID = %q", out.TemplateID)
	}
	if out.Ord != 3 {
		t.Fatalf("Ord = %d, want 3", out.Ord)
	}
	if out.Language != "spanish" {
		t.Fatalf("Language = %q", out.Language)
	}
	if out.Text != "¿Disfrutó su estancia?" {
		t.Fatalf("Text = %q", out.Text)
	}
	if got := out.CategoryList(); len(got) != 2 || got[0] != "sí" || got[1] != "no" {
		t.Fatalf("categories = %v", got)
	}
}

func TestTranslateQuestionOpenEnded(t *testing.T) {
	brain := newTestBrainClient(&stubDoer{body: `{"translated":"¿Algo más?"}`})
	s := NewTranslationService(nil, nil, brain)

	src := &model.Question{
		UUIDBase: model.UUIDBase{ID: "src-id"},
		Text:     "Anything else?",
		Criteria: model.CriteriaOpen,
	}

	out, err := s.TranslateQuestion(context.Background(), src, "tpl-es", "spanish")
	if err != nil {
		t.Fatal(err)
	}
	if out.Ord != 0 {
		t.Fatalf("Ord = %d, want 0", out.Ord)
	}
	if out.Categories != "[]" {
		t.Fatalf("Categories = %q, want []", out.Categories)
	}
	if out.ParentCategories != "[]" {
		t.Fatalf("ParentCategories = %q, want []", out.ParentCategories)
	}
}

func TestTranslateQuestionBrainOutageKeepsSourceText(t *testing.T) {
	brain := newTestBrainClient(&stubDoer{err: errors.New("brain down")})
	s := NewTranslationService(nil, nil, brain)

	src := &model.Question{
		UUIDBase: model.UUIDBase{ID: "src-id"},
		Text:     "How satisfied are you?",
		Criteria: model.CriteriaScale,
		Scales:   "5",
	}

	out, err := s.TranslateQuestion(context.Background(), src, "tpl-es", "spanish")
	if err != nil {
		t.Fatal(err)
	}
	if out.Text != src.Text {
		t.Fatalf("Text = %q, want untranslated source text", out.Text)
	}
	if out.Scales != "5" {
		t.Fatalf("Scales = %q", out.Scales)
	}
}
