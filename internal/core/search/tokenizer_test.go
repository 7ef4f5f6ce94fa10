package search

import (
	"reflect"
	"strings"
	"testing"
)

const testAllowedChars = "a-zA-Z0-9ąĄćĆęĘłŁńŃóÓśŚżŻźŹ "

func newTestTokenizer() *Tokenizer {
	return NewTokenizer(50, testAllowedChars)
}

func TestTokenizer_WholeStringGuards(t *testing.T) {
	tok := newTestTokenizer()

	cases := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"single char", "a"},
		{"two digit id", "12"},
		{"long numeric id", "999"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tok.Tokenize(tc.input); got != nil {
				t.Fatalf("expected no tokens for %q, got %v", tc.input, got)
			}
		})
	}
}

func TestTokenizer_PerTokenGuards(t *testing.T) {
	tok := newTestTokenizer()

	got := tok.Tokenize("a1 room2 12 x 999 ok")
	want := []string{"a1", "room2", "ok"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestTokenizer_SanitizesAndLowercases(t *testing.T) {
	tok := newTestTokenizer()

	got := tok.Tokenize("Red! <Bike> 2")
	want := []string{"red", "bike"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestTokenizer_KeepsAccentedLetters(t *testing.T) {
	tok := newTestTokenizer()

	got := tok.Tokenize("Żółty rower")
	want := []string{"żółty", "rower"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestTokenizer_TruncatesOversizedInput(t *testing.T) {
	tok := NewTokenizer(10, testAllowedChars)

	// Truncation happens before sanitization, so the tail never contributes
	// tokens no matter how long the attacker-supplied string is.
	got := tok.Tokenize("blue bike " + strings.Repeat("z", 500))
	want := []string{"blue", "bike"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestTokenizer_GuardsApplyToTruncatedInput(t *testing.T) {
	tok := NewTokenizer(3, testAllowedChars)

	// Truncation runs first, so the numeric-id guard sees "999", not the
	// full query.
	if got := tok.Tokenize("999 bikes"); got != nil {
		t.Fatalf("expected no tokens once truncation leaves a numeric id, got %v", got)
	}
}

func TestTokenizer_Idempotent(t *testing.T) {
	tok := newTestTokenizer()

	first := tok.Tokenize("Red Bike 2")
	second := tok.Tokenize(strings.Join(first, " "))
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("tokenizer not idempotent: %v then %v", first, second)
	}
}
