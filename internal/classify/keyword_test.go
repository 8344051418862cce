package classify

import (
	"context"
	"strings"
	"testing"

	"github.com/fundscout/fundscout/internal/model"
)

func testKeyword() *Keyword {
	return NewKeyword(model.ClassifyConfig{
		Keywords:          []string{"bonus", "grant", "rebate", "scholarship", "claim", "settlement", "unclaimed"},
		MinSubstantialLen: 500,
		HighScore:         7,
		LowScore:          3,
	})
}

func TestKeyword_HighConfidence(t *testing.T) {
	k := testKeyword()

	opp, err := k.Classify(context.Background(), "Sign up today for a $300 checking BONUS.", "https://example.com/offer")
	if err != nil {
		t.Fatalf("classify failed: %v", err)
	}
	if opp == nil {
		t.Fatal("expected an opportunity for keyword match")
	}
	if opp.TrustScore != 7 {
		t.Errorf("expected trust score 7, got %d", opp.TrustScore)
	}
	if opp.SourceURL != "https://example.com/offer" {
		t.Errorf("source URL not carried through: %q", opp.SourceURL)
	}
}

func TestKeyword_SubstantialContent(t *testing.T) {
	k := testKeyword()

	text := strings.Repeat("plain financial writing without trigger words ", 14) // > 500 chars
	if len(text) <= 500 {
		t.Fatalf("test fixture too short: %d", len(text))
	}

	opp, err := k.Classify(context.Background(), text, "https://example.com/article")
	if err != nil {
		t.Fatalf("classify failed: %v", err)
	}
	if opp == nil {
		t.Fatal("expected a low-confidence opportunity for substantial text")
	}
	if opp.TrustScore != 3 {
		t.Errorf("expected trust score 3, got %d", opp.TrustScore)
	}
}

func TestKeyword_ShortIrrelevantText(t *testing.T) {
	k := testKeyword()

	opp, err := k.Classify(context.Background(), strings.Repeat("x", 50), "https://example.com/stub")
	if err != nil {
		t.Fatalf("classify failed: %v", err)
	}
	if opp != nil {
		t.Errorf("expected nil for short keyword-free text, got %+v", opp)
	}
}

func TestKeyword_CaseInsensitive(t *testing.T) {
	k := testKeyword()

	for _, text := range []string{"UNCLAIMED funds", "Settlement notice", "ReBaTe form"} {
		opp, err := k.Classify(context.Background(), text, "https://example.com/")
		if err != nil {
			t.Fatalf("classify failed: %v", err)
		}
		if opp == nil || opp.TrustScore != 7 {
			t.Errorf("expected high-confidence match for %q", text)
		}
	}
}

func TestParseVerdict(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantNil bool
		wantErr bool
		score   int
	}{
		{"plain null", "null", true, false, 0},
		{"empty", "", true, false, 0},
		{"valid", `{"title": "Grant Program", "trust_score": 8, "summary": "Open applications"}`, false, false, 8},
		{"fenced", "```json\n{\"title\": \"T\", \"trust_score\": 6, \"summary\": \"S\"}\n```", false, false, 6},
		{"clamped high", `{"title": "T", "trust_score": 15, "summary": "S"}`, false, false, 10},
		{"clamped low", `{"title": "T", "trust_score": -2, "summary": "S"}`, false, false, 0},
		{"garbage", "the page looks great", false, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opp, err := parseVerdict(tt.content, "https://example.com/")
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected parse error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantNil {
				if opp != nil {
					t.Fatalf("expected nil verdict, got %+v", opp)
				}
				return
			}
			if opp == nil {
				t.Fatal("expected an opportunity")
			}
			if opp.TrustScore != tt.score {
				t.Errorf("expected score %d, got %d", tt.score, opp.TrustScore)
			}
		})
	}
}

func TestNew_Selection(t *testing.T) {
	c, err := New(model.ClassifyConfig{Name: "keyword"})
	if err != nil {
		t.Fatalf("keyword: %v", err)
	}
	if c.Name() != "keyword" {
		t.Errorf("unexpected classifier: %s", c.Name())
	}

	if _, err := New(model.ClassifyConfig{Name: "openai"}); err == nil {
		t.Error("expected error for openai without API key")
	}

	if _, err := New(model.ClassifyConfig{Name: "oracle"}); err == nil {
		t.Error("expected error for unknown classifier")
	}
}
