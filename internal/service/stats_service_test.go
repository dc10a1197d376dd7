package service

import (
	"reflect"
	"testing"

	"github.com/waseem-akram-senarios/surveybot-sub001/internal/model"
)

func TestQuestionStatsCategorical(t *testing.T) {
	q := &model.Question{Criteria: model.CriteriaCategorical}
	q.SetCategories([]string{"yes", "no"})

	got := QuestionStats(q, []string{"yes", "yes", "no", "maybe"})
	want := map[string]int{"yes": 2, "no": 1}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("stats = %v, want %v", got, want)
	}
}

func TestQuestionStatsCategoricalNoAnswers(t *testing.T) {
	q := &model.Question{Criteria: model.CriteriaCategorical}
	q.SetCategories([]string{"red", "green", "blue"})

	got := QuestionStats(q, nil)
	want := map[string]int{"red": 0, "green": 0, "blue": 0}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("stats = %v, want %v", got, want)
	}
}

func TestQuestionStatsScale(t *testing.T) {
	q := &model.Question{Criteria: model.CriteriaScale, Scales: "5"}

	got := QuestionStats(q, []string{"1", "3", "3", "9", "zero"})
	want := map[string]int{"1": 1, "2": 0, "3": 2, "4": 0, "5": 0}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("stats = %v, want %v", got, want)
	}
}

func TestQuestionStatsScaleBadBound(t *testing.T) {
	cases := []string{"", "lots", "0", "-3"}
	for _, bound := range cases {
		q := &model.Question{Criteria: model.CriteriaScale, Scales: bound}
		got := QuestionStats(q, []string{"1", "2"})
		if len(got) != 0 {
			t.Fatalf("bound %q: stats = %v, want empty", bound, got)
		}
	}
}

func TestQuestionStatsOpenEnded(t *testing.T) {
	q := &model.Question{Criteria: model.CriteriaOpen}
	got := QuestionStats(q, []string{"anything at all"})
	if len(got) != 0 {
		t.Fatalf("stats = %v, want empty", got)
	}
}
