package common

import (
	"strings"
	"testing"
)

func TestMaskAuthorization(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "bearer token",
			input: "Bearer eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9",
			want:  "***MASKED***",
		},
		{
			name:  "basic credentials",
			input: "Basic YWRtaW46cGFzc3dvcmQ=",
			want:  "***MASKED***",
		},
		{
			name:  "lowercase scheme",
			input: "bearer abc123",
			want:  "***MASKED***",
		},
		{
			name:  "unknown shape masked wholesale",
			input: "ApiKey sk_test_1234567890",
			want:  "***MASKED***",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaskAuthorization(tt.input); got != tt.want {
				t.Errorf("MaskAuthorization(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMaskAuthorization_EmbeddedCredential(t *testing.T) {
	got := MaskAuthorization("Authorization: Bearer token123 was sent")
	if strings.Contains(got, "token123") {
		t.Fatalf("credential must not survive masking: %q", got)
	}
	if !strings.Contains(got, "was sent") {
		t.Fatalf("surrounding text should survive when a scheme matched: %q", got)
	}
}
