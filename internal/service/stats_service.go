package service

import (
	"strconv"

	"github.com/waseem-akram-senarios/surveybot-sub001/internal/model"
	"github.com/waseem-akram-senarios/surveybot-sub001/internal/repository"
)

// StatsService tallies recorded answers into per-question histograms.
type StatsService struct {
	questions *repository.QuestionRepository
	answers   *repository.AnswerRepository
}

func NewStatsService(questions *repository.QuestionRepository, answers *repository.AnswerRepository) *StatsService {
	return &StatsService{questions: questions, answers: answers}
}

// QuestionStats converts a question's raw answers into a frequency table.
// The key set is always exactly the declared categories (or "1".."N" for a
// scale question), so options nobody picked still show up at 0. Answers
// outside the declared set are dropped, never an error.
func QuestionStats(q *model.Question, answers []string) map[string]int {
	switch q.Criteria {
	case model.CriteriaCategorical:
		return categoricalStats(q.CategoryList(), answers)
	case model.CriteriaScale:
		return scaleStats(q.Scales, answers)
	default:
		return map[string]int{}
	}
}

func categoricalStats(categories []string, answers []string) map[string]int {
	stats := make(map[string]int, len(categories))
	for _, c := range categories {
		stats[c] = 0
	}
	for _, a := range answers {
		if _, ok := stats[a]; ok {
			stats[a]++
		}
	}
	return stats
}

func scaleStats(bound string, answers []string) map[string]int {
	max, err := strconv.Atoi(bound)
	if err != nil || max < 1 {
		// An unparseable bound means the question was never configured;
		// report "nothing to aggregate" rather than failing.
		return map[string]int{}
	}

	stats := make(map[string]int, max)
	for i := 1; i <= max; i++ {
		stats[strconv.Itoa(i)] = 0
	}
	for _, a := range answers {
		v, err := strconv.Atoi(a)
		if err != nil || v < 1 || v > max {
			continue
		}
		stats[strconv.Itoa(v)]++
	}
	return stats
}

// StatsForQuestion loads a question and its answers and aggregates them.
func (s *StatsService) StatsForQuestion(questionID string) (map[string]int, error) {
	q, err := s.questions.FindByID(questionID)
	if err != nil {
		return nil, err
	}
	values, err := s.answers.ValuesByQuestion(questionID)
	if err != nil {
		return nil, err
	}
	return QuestionStats(q, values), nil
}

// TemplateStats aggregates every question of a template, keyed by question
// id. Histograms are recomputed on demand and never persisted.
func (s *StatsService) TemplateStats(templateID string) (map[string]map[string]int, error) {
	questions, err := s.questions.ListByTemplate(templateID)
	if err != nil {
		return nil, err
	}

	out := make(map[string]map[string]int, len(questions))
	for i := range questions {
		values, err := s.answers.ValuesByQuestion(questions[i].ID)
		if err != nil {
			return nil, err
		}
		out[questions[i].ID] = QuestionStats(&questions[i], values)
	}
	return out, nil
}
