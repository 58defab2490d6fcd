package strings

import "testing"

func TestNormalizeWhitespace(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "whitespace only", input: " \n\t ", want: ""},
		{name: "single word", input: "milk", want: "milk"},
		{name: "collapses spaces", input: "buy   more    milk", want: "buy more milk"},
		{name: "collapses newlines", input: "pay\n\n the\trent", want: "pay the rent"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeWhitespace(tc.input)
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestNormalizeLower(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "base32 suffix", input: "QSV2VN", want: "qsv2vn"},
		{name: "keeps spaces", input: " Mixed Case ", want: " mixed case "},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeLower(tc.input)
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestNormalizeLowerTrimSpace(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "trims and lowercases", input: "  ACTIVE  ", want: "active"},
		{name: "mixed case", input: "SQLite", want: "sqlite"},
		{name: "whitespace only", input: "  \t\n ", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeLowerTrimSpace(tc.input)
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestTrimSpace(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "whitespace only", input: " \t\n ", want: ""},
		{name: "trimmed", input: "  milk  ", want: "milk"},
		{name: "inner whitespace preserved", input: "  pay  rent  ", want: "pay  rent"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := TrimSpace(tc.input)
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestIsBlank(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "empty", input: "", want: true},
		{name: "whitespace", input: " \t\n ", want: true},
		{name: "non-empty", input: "milk", want: false},
		{name: "padded", input: "  milk  ", want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := IsBlank(tc.input)
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestTrimTrailingWhitespace(t *testing.T) {
	if got := TrimTrailingWhitespace("  row  \t\n"); got != "  row" {
		t.Fatalf("expected %q, got %q", "  row", got)
	}
}

func TestNormalizeNewlines(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "crlf", input: "one\r\ntwo", want: "one\ntwo"},
		{name: "cr", input: "one\rtwo", want: "one\ntwo"},
		{name: "lf untouched", input: "one\ntwo", want: "one\ntwo"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeNewlines(tc.input); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestTrimTrailingNewlines(t *testing.T) {
	if got := TrimTrailingNewlines("milk\r\n\n"); got != "milk" {
		t.Fatalf("expected %q, got %q", "milk", got)
	}
	if got := TrimTrailingNewlines("milk \n"); got != "milk " {
		t.Fatalf("expected trailing space kept, got %q", got)
	}
}
