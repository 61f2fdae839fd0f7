package utils

import (
	"testing"
	"time"
)

func TestParseDueDate(t *testing.T) {
	// Use a fixed date for consistent testing
	baseDate := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{
			name:     "@today",
			input:    "@today",
			expected: "2026-08-30",
			wantErr:  false,
		},
		{
			name:     "@today-1d",
			input:    "@today-1d",
			expected: "2026-08-29",
			wantErr:  false,
		},
		{
			name:     "@today+7d",
			input:    "@today+7d",
			expected: "2026-09-06",
			wantErr:  false,
		},
		{
			name:     "@today-1w",
			input:    "@today-1w",
			expected: "2026-08-23",
			wantErr:  false,
		},
		{
			name:     "@today+2w",
			input:    "@today+2w",
			expected: "2026-09-13",
			wantErr:  false,
		},
		{
			name:     "ISO date passes through",
			input:    "2026-12-01",
			expected: "2026-12-01",
			wantErr:  false,
		},
		{
			name:    "invalid month",
			input:   "2026-13-01",
			wantErr: true,
		},
		{
			name:    "missing unit",
			input:   "@today+3",
			wantErr: true,
		},
		{
			name:    "unsupported unit",
			input:   "@today+1m",
			wantErr: true,
		},
		{
			name:    "free text",
			input:   "next tuesday",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDueDateWithBase(tt.input, baseDate)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseDueDateWithBase(%q) expected error, got %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Errorf("ParseDueDateWithBase(%q) unexpected error: %v", tt.input, err)
				return
			}
			if got != tt.expected {
				t.Errorf("ParseDueDateWithBase(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
