package gemini

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
)

func TestNewDefaultsModel(t *testing.T) {
	e := New(" key ", "  ")
	if e.Model != DefaultModel {
		t.Fatalf("Model = %q, want %q", e.Model, DefaultModel)
	}
	if e.APIKey != "key" {
		t.Fatalf("APIKey = %q", e.APIKey)
	}
	if e.Name() != "gemini" {
		t.Fatalf("Name = %q", e.Name())
	}
}

func TestReadDisplayWithoutKey(t *testing.T) {
	e := New("", "")
	if _, err := e.ReadDisplay(context.Background(), "p", []byte{1}, "image/png"); err == nil {
		t.Fatal("expected error for empty key")
	}
}

func TestFirstText(t *testing.T) {
	cases := []struct {
		name string
		resp *genai.GenerateContentResponse
		want string
	}{
		{"nil", nil, ""},
		{"no candidates", &genai.GenerateContentResponse{}, ""},
		{"nil content", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}, ""},
		{
			"joined parts",
			&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []genai.Part{genai.Text(`{"1":`), genai.Text(`2}`)}},
			}}},
			`{"1":2}`,
		},
		{
			"skips empty candidate",
			&genai.GenerateContentResponse{Candidates: []*genai.Candidate{
				{Content: &genai.Content{}},
				{Content: &genai.Content{Parts: []genai.Part{genai.Text("ok")}}},
			}},
			"ok",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := firstText(tc.resp); got != tc.want {
				t.Fatalf("firstText = %q, want %q", got, tc.want)
			}
		})
	}
}
