package main

import "testing"

func TestDifficultyLabel(t *testing.T) {
	if got := difficultyLabel(3, ""); got != "3" {
		t.Errorf("expected bare tier, got %q", got)
	}
	if got := difficultyLabel(5, "LOGIC?"); got != "5 (LOGIC?)" {
		t.Errorf("expected tier with name, got %q", got)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		ms   uint32
		want string
	}{
		{0, "0s"},
		{1500, "1.5s"},
		{90000, "1m30s"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.ms); got != tt.want {
			t.Errorf("formatDuration(%d) = %q, want %q", tt.ms, got, tt.want)
		}
	}
}

func TestSizeLabel(t *testing.T) {
	if got := sizeLabel(0); got != "none" {
		t.Errorf("expected none for empty, got %q", got)
	}
	if got := sizeLabel(42); got != "42 bytes" {
		t.Errorf("expected byte count, got %q", got)
	}
}
