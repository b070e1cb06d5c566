package normalize

import (
	"reflect"
	"testing"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lowercase passthrough", input: "five_hour", want: "five_hour"},
		{name: "mixed case and space", input: "Five Hour", want: "five_hour"},
		{name: "diacritics folded", input: "Límite Diário", want: "limite_diario"},
		{name: "punctuation collapsed", input: "seven--day..window", want: "seven_day_window"},
		{name: "camel case is not split", input: "resetsAt", want: "resetsat"},
		{name: "leading and trailing junk", input: "  %usage% ", want: "usage"},
		{name: "digits preserved", input: "5h", want: "5h"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeKey(tt.input); got != tt.want {
				t.Fatalf("NormalizeKey(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTokens(t *testing.T) {
	got := Tokens("Seven-Day Opus")
	want := []string{"seven", "day", "opus"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokens() = %v, want %v", got, want)
	}

	if got := Tokens("  "); got != nil {
		t.Fatalf("Tokens(blank) = %v, want nil", got)
	}
}

func TestMatchesPhrase(t *testing.T) {
	tests := []struct {
		name   string
		phrase string
		want   bool
	}{
		{name: "seven_day_opus", phrase: "seven_day", want: true},
		{name: "seven_day", phrase: "seven_day", want: true},
		{name: "x_seven_day", phrase: "seven_day", want: true},
		{name: "seven_dayish", phrase: "seven_day", want: false},
		{name: "sseven_day", phrase: "seven_day", want: false},
		{name: "extra", phrase: "extra_usage", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.phrase, func(t *testing.T) {
			if got := matchesPhrase(tt.name, tt.phrase); got != tt.want {
				t.Fatalf("matchesPhrase(%q, %q) = %v, want %v", tt.name, tt.phrase, got, tt.want)
			}
		})
	}
}
