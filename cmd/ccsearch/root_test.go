package main

import (
	"testing"
	"time"
)

func TestParseSinceRelativePhrases(t *testing.T) {
	now := time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"days ago", "1 day ago", now.Add(-24 * time.Hour)},
		{"hours ago", "2 hours ago", now.Add(-2 * time.Hour)},
		{"weeks ago", "3 weeks ago", now.Add(-3 * 7 * 24 * time.Hour)},
		{"yesterday", "yesterday", now.Add(-24 * time.Hour)},
		{"minutes ago", "45 minutes ago", now.Add(-45 * time.Minute)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSince(tt.input, now)
			if err != nil {
				t.Fatalf("parseSince(%q) error: %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("parseSince(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseSinceUnixTimestamp(t *testing.T) {
	now := time.Now()
	got, err := parseSince("1700000000", now)
	if err != nil {
		t.Fatalf("parseSince error: %v", err)
	}
	want := time.Unix(1700000000, 0)
	if !got.Equal(want) {
		t.Errorf("parseSince unix = %v, want %v", got, want)
	}
}

func TestParseSinceRejectsGarbage(t *testing.T) {
	if _, err := parseSince("whenever", time.Now()); err == nil {
		t.Error("expected an error for an unparseable phrase")
	}
	if _, err := parseSince("many days ago", time.Now()); err == nil {
		t.Error("expected an error for a non-numeric amount")
	}
}

func TestParseSinceToday(t *testing.T) {
	now := time.Date(2026, 7, 31, 15, 30, 0, 0, time.UTC)
	got, err := parseSince("today", now)
	if err != nil {
		t.Fatalf("parseSince error: %v", err)
	}
	want := time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("parseSince(today) = %v, want %v", got, want)
	}
}
