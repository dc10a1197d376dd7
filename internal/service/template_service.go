package service

import (
	"errors"

	"github.com/waseem-akram-senarios/surveybot-sub001/internal/model"
	"github.com/waseem-akram-senarios/surveybot-sub001/internal/repository"
	"github.com/waseem-akram-senarios/surveybot-sub001/internal/util"

	"gorm.io/gorm"
)

// TemplateService handles template authoring: templates and the questions
// inside them.
type TemplateService struct {
	templates *repository.TemplateRepository
	questions *repository.QuestionRepository
}

func NewTemplateService(templates *repository.TemplateRepository, questions *repository.QuestionRepository) *TemplateService {
	return &TemplateService{templates: templates, questions: questions}
}

func (s *TemplateService) Create(name, language string) (*model.SurveyTemplate, error) {
	if _, err := s.templates.FindByName(name); err == nil {
		return nil, util.ErrTemplateNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	t := &model.SurveyTemplate{Name: name, Language: language}
	if err := s.templates.Create(t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TemplateService) Get(id string) (*model.SurveyTemplate, error) {
	t, err := s.templates.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrTemplateNotFound
	}
	return t, err
}

func (s *TemplateService) List(page, pageSize int) ([]model.SurveyTemplate, int64, error) {
	return s.templates.List(page, pageSize)
}

func (s *TemplateService) Delete(id string) error {
	return s.templates.Delete(id)
}

// AddQuestion appends a question to a template. Category fields accept any
// of the legacy encodings and are stored canonically.
func (s *TemplateService) AddQuestion(templateID, text, criteria, categories, parents, scales string, ord int) (*model.Question, error) {
	if _, err := s.Get(templateID); err != nil {
		return nil, err
	}

	q := &model.Question{
		TemplateID: templateID,
		Text:       text,
		Criteria:   criteria,
		Scales:     scales,
		Ord:        ord,
	}
	q.SetCategories(model.NormalizeCategories(categories))
	q.SetParentCategories(model.NormalizeCategories(parents))

	if err := s.questions.Create(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *TemplateService) GetQuestion(id string) (*model.Question, error) {
	q, err := s.questions.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuestionNotFound
	}
	return q, err
}

func (s *TemplateService) DeleteQuestion(id string) error {
	return s.questions.Delete(id)
}
