package qdrant

import (
	"math"
	"testing"
)

func TestLexicalScore_FullOverlap(t *testing.T) {
	score := lexicalScore("sunset beach", "a sunset over the beach")
	if score != 1.0 {
		t.Errorf("expected 1.0, got %v", score)
	}
}

func TestLexicalScore_PartialOverlap(t *testing.T) {
	score := lexicalScore("sunset beach waves", "a sunset over the hills")
	if math.Abs(score-1.0/3.0) > 1e-9 {
		t.Errorf("expected 1/3, got %v", score)
	}
}

func TestLexicalScore_NoOverlap(t *testing.T) {
	if score := lexicalScore("sunset", "mountain climbing"); score != 0 {
		t.Errorf("expected 0, got %v", score)
	}
}

func TestLexicalScore_CaseInsensitive(t *testing.T) {
	if score := lexicalScore("SUNSET", "sunset"); score != 1.0 {
		t.Errorf("expected 1.0, got %v", score)
	}
}

func TestLexicalScore_DuplicateQueryTerms(t *testing.T) {
	// Repeated query terms must not inflate or dilute the score.
	if score := lexicalScore("beach beach sunset", "beach"); score != 0.5 {
		t.Errorf("expected 0.5, got %v", score)
	}
}

func TestLexicalScore_EmptyInputs(t *testing.T) {
	if score := lexicalScore("", "some text"); score != 0 {
		t.Errorf("empty query should score 0, got %v", score)
	}
	if score := lexicalScore("sunset", ""); score != 0 {
		t.Errorf("empty text should score 0, got %v", score)
	}
}

func TestTokenize_SplitsOnPunctuation(t *testing.T) {
	terms := tokenize("Sunset, beach! Waves-crashing")
	want := []string{"sunset", "beach", "waves", "crashing"}
	if len(terms) != len(want) {
		t.Fatalf("expected %d terms, got %v", len(want), terms)
	}
	for i, term := range want {
		if terms[i] != term {
			t.Errorf("term[%d] = %q, want %q", i, terms[i], term)
		}
	}
}
