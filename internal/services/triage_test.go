package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
)

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain object",
			in:   `{"a": 1}`,
			want: `{"a": 1}`,
		},
		{
			name: "markdown fenced",
			in:   "```json\n{\"a\": 1}\n```",
			want: `{"a": 1}`,
		},
		{
			name: "surrounded by prose",
			in:   "Here is the result: {\"a\": 1} hope that helps",
			want: `{"a": 1}`,
		},
		{
			name: "nested braces keep outer object",
			in:   "x {\"a\": {\"b\": 2}} y",
			want: `{"a": {"b": 2}}`,
		},
		{
			name: "no object passes through",
			in:   "sorry, no data",
			want: "sorry, no data",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractJSON(tc.in); got != tc.want {
				t.Errorf("ExtractJSON(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestTriageFallsBackWithoutAPIKey(t *testing.T) {
	g := NewGeminiClient("", zerolog.Nop())

	a := g.Triage(context.Background(), "I have a headache", "")
	if !a.IsValidHealthQuery || !a.NeedsClarification {
		t.Errorf("fallback flags = valid %v, clarify %v", a.IsValidHealthQuery, a.NeedsClarification)
	}
	if a.Analysis == "" {
		t.Error("fallback analysis text is empty")
	}
	if len(a.FollowUpQuestions) == 0 {
		t.Error("fallback should ask follow-up questions")
	}
	if len(a.SuggestedMedicines) != 0 {
		t.Errorf("fallback suggested medicines = %v, want none", a.SuggestedMedicines)
	}
}

func TestTranslateFailsSoft(t *testing.T) {
	g := NewGeminiClient("", zerolog.Nop())
	a := Analysis{IsValidHealthQuery: true, Analysis: "Likely a common cold"}

	if got := g.Translate(context.Background(), a, "English"); got.Analysis != a.Analysis {
		t.Errorf("English translation changed the analysis: %q", got.Analysis)
	}
	if got := g.Translate(context.Background(), a, ""); got.Analysis != a.Analysis {
		t.Errorf("empty language changed the analysis: %q", got.Analysis)
	}
	// Without an API key the call fails and the original must come back.
	if got := g.Translate(context.Background(), a, "Hindi"); got.Analysis != a.Analysis {
		t.Errorf("failed translation changed the analysis: %q", got.Analysis)
	}
}

func TestNormalizeClearsMedicinesWhenUnclear(t *testing.T) {
	a := Analysis{
		IsValidHealthQuery: true,
		NeedsClarification: true,
		SuggestedMedicines: []string{"Paracetamol"},
		Recommendations:    []string{"Rest"},
	}
	normalize(&a)
	if len(a.SuggestedMedicines) != 0 {
		t.Errorf("SuggestedMedicines = %v, want none until the query is clear", a.SuggestedMedicines)
	}
	if len(a.Recommendations) != 1 {
		t.Errorf("Recommendations = %v, should survive a clarification round", a.Recommendations)
	}
	if a.Analysis == "" {
		t.Error("normalize should fill in a default analysis text")
	}
}

func TestNormalizeInvalidQueryDropsEverything(t *testing.T) {
	a := Analysis{
		IsValidHealthQuery: false,
		SuggestedMedicines: []string{"Paracetamol"},
		Recommendations:    []string{"Rest"},
	}
	normalize(&a)
	if len(a.SuggestedMedicines) != 0 || len(a.Recommendations) != 0 {
		t.Errorf("invalid query kept medicines %v recommendations %v", a.SuggestedMedicines, a.Recommendations)
	}
}

func TestNormalizeInitializesSlices(t *testing.T) {
	a := Analysis{IsValidHealthQuery: true, Analysis: "All good"}
	normalize(&a)
	if a.FollowUpQuestions == nil || a.Recommendations == nil || a.SuggestedMedicines == nil {
		t.Error("normalize left nil slices")
	}
	if a.Analysis != "All good" {
		t.Errorf("Analysis = %q, should not be overwritten", a.Analysis)
	}
}

func TestNormalizeDefaultsForClearAnswers(t *testing.T) {
	a := Analysis{IsValidHealthQuery: true, Analysis: "Likely a common cold"}
	normalize(&a)
	if a.Severity == nil || *a.Severity != "moderate" {
		t.Errorf("Severity = %v, want moderate default", a.Severity)
	}
	if a.DoctorConsultation == nil || *a.DoctorConsultation != "recommended" {
		t.Errorf("DoctorConsultation = %v, want recommended default", a.DoctorConsultation)
	}
	if a.UrgencyLevel == nil || *a.UrgencyLevel != "if symptoms worsen" {
		t.Errorf("UrgencyLevel = %v, want default", a.UrgencyLevel)
	}

	unclear := Analysis{IsValidHealthQuery: true, NeedsClarification: true}
	normalize(&unclear)
	if unclear.Severity != nil {
		t.Errorf("Severity = %v, want nil while clarifying", unclear.Severity)
	}
}
