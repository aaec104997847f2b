package logger

import "testing"

func TestRedactPhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"e164", "+15551234567", "+*********67"},
		{"dashed", "555-123-4567", "***-***-**67"},
		{"short", "911", "***"},
		{"empty", "", "***"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RedactPhone(tt.input); got != tt.want {
				t.Errorf("RedactPhone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
