package sanitizer

import "testing"

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "already normalized", input: "a@x.com", want: "a@x.com"},
		{name: "upper case", input: "Jane.Doe@Example.COM", want: "jane.doe@example.com"},
		{name: "surrounding whitespace", input: "  a@x.com \t", want: "a@x.com"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeEmail(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if again := NormalizeEmail(got); again != got {
				t.Errorf("NormalizeEmail is not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "valid E.164 format",
			input: "+12125551234",
			want:  "+12125551234",
		},
		{
			name:  "with parentheses",
			input: "+1 (212) 555-1234",
			want:  "+12125551234",
		},
		{
			name:  "national US number",
			input: "212-555-1234",
			want:  "+12125551234",
		},
		{
			name:  "international number keeps its country code",
			input: "+972 54 123 4567",
			want:  "+972541234567",
		},
		{
			name:  "leading and trailing spaces",
			input: "  +12125551234  ",
			want:  "+12125551234",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   ",
			want:  "",
		},
		{
			name:  "not a number",
			input: "call me",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizePhone(tt.input)
			if got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "basic trim",
			input: "  Haircut  ",
			want:  "Haircut",
		},
		{
			name:  "multiple spaces",
			input: "Beard    Trim",
			want:  "Beard Trim",
		},
		{
			name:  "tabs and newlines",
			input: "Hot\t\nShave",
			want:  "Hot Shave",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:  "preserve special characters",
			input: " Café & Spa™ ",
			want:  "Café & Spa™",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrimAndNormalize(tt.input)
			if got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
