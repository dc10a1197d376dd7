package model

import (
	"reflect"
	"testing"
)

func TestNormalizeCategories(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", []string{}},
		{"empty json array", "[]", []string{}},
		{"null literal", "null", []string{}},
		{"json array", `["yes","no"]`, []string{"yes", "no"}},
		{"json array with blanks", `["yes"," ","no"]`, []string{"yes", "no"}},
		{"semicolon joined", "yes;no;maybe", []string{"yes", "no", "maybe"}},
		{"semicolon with spaces", " yes ; no ", []string{"yes", "no"}},
		{"trailing semicolon", "yes;no;", []string{"yes", "no"}},
		{"single label", "yes", []string{"yes"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeCategories(tc.raw)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("NormalizeCategories(%q) = %v, want %v", tc.raw, got, tc.want)
			}
		})
	}
}

func TestEncodeCategories(t *testing.T) {
	if got := EncodeCategories(nil); got != "[]" {
		t.Fatalf("EncodeCategories(nil) = %q, want []", got)
	}
	if got := EncodeCategories([]string{"a", "b"}); got != `["a","b"]` {
		t.Fatalf("EncodeCategories = %q", got)
	}
}

func TestCategoryListRoundTrip(t *testing.T) {
	q := &Question{}
	q.SetCategories([]string{"red", "green"})
	if got := q.CategoryList(); !reflect.DeepEqual(got, []string{"red", "green"}) {
		t.Fatalf("CategoryList = %v", got)
	}

	// Legacy rows keep working without migration.
	q.Categories = "red;green"
	if got := q.CategoryList(); !reflect.DeepEqual(got, []string{"red", "green"}) {
		t.Fatalf("CategoryList legacy = %v", got)
	}
}
