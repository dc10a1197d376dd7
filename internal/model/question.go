package model

import (
	"encoding/json"
	"strings"
)

// Criteria values recognized by aggregation and the call agent. Anything
// else is treated as an open question.
const (
	CriteriaCategorical = "categorical"
	CriteriaScale       = "scale"
	CriteriaOpen        = "open"
)

// Question is a single survey prompt inside a template. Translated copies
// get a fresh identity and keep the source identity in OldID so answer
// references can be remapped; nothing dereferences OldID at runtime.
type Question struct {
	UUIDBase
	TemplateID string `gorm:"index;type:varchar(36)" json:"templateId"`
	Text       string `gorm:"type:text" json:"text"`
	Criteria   string `gorm:"type:varchar(32);index" json:"criteria"`

	// Categories and ParentCategories are stored as JSON arrays. Legacy
	// rows may still hold semicolon-joined strings; CategoryList handles
	// both so the ambiguity never leaks past the model.
	Categories       string `gorm:"type:text" json:"categories"`
	ParentCategories string `gorm:"type:text" json:"parentCategories"`

	// Scales is the inclusive upper bound of a scale question, kept as a
	// string because template imports carry it unvalidated. The lower
	// bound is always 1.
	Scales string `gorm:"type:varchar(16)" json:"scales"`

	Ord      int    `gorm:"default:0" json:"ord"`
	Language string `gorm:"type:varchar(16)" json:"language"`
	OldID    string `gorm:"type:varchar(36);index" json:"oldId"`
}

func (Question) TableName() string {
	return "questions"
}

// CategoryList returns the declared category labels as a canonical slice.
func (q *Question) CategoryList() []string {
	return NormalizeCategories(q.Categories)
}

// ParentCategoryList returns the parent-category labels, never nil.
func (q *Question) ParentCategoryList() []string {
	return NormalizeCategories(q.ParentCategories)
}

// SetCategories stores a slice in the canonical JSON encoding.
func (q *Question) SetCategories(cats []string) {
	q.Categories = EncodeCategories(cats)
}

func (q *Question) SetParentCategories(cats []string) {
	q.ParentCategories = EncodeCategories(cats)
}

// NormalizeCategories converts the three historical encodings of a category
// field (JSON array, semicolon-joined string, empty) into one []string.
// The result is never nil and contains no blank entries.
func NormalizeCategories(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "[]" || raw == "null" {
		return []string{}
	}

	if strings.HasPrefix(raw, "[") {
		var cats []string
		if err := json.Unmarshal([]byte(raw), &cats); err == nil {
			out := make([]string, 0, len(cats))
			for _, c := range cats {
				if c = strings.TrimSpace(c); c != "" {
					out = append(out, c)
				}
			}
			return out
		}
	}

	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// EncodeCategories is the inverse of NormalizeCategories; nil and empty
// both encode as "[]".
func EncodeCategories(cats []string) string {
	if cats == nil {
		cats = []string{}
	}
	b, err := json.Marshal(cats)
	if err != nil {
		return "[]"
	}
	return string(b)
}
