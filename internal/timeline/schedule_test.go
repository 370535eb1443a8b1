package timeline

import (
	"errors"
	"testing"
	"time"
)

func TestNextOpenDate_Empty(t *testing.T) {
	fallback := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	if got := NextOpenDate(nil, fallback); got != "2026-02-10" {
		t.Errorf("NextOpenDate(empty) = %q, want 2026-02-10", got)
	}
}

func TestNextOpenDate_AfterLatest(t *testing.T) {
	tests := []struct {
		name     string
		occupied []string
		want     string
	}{
		{"single", []string{"2026-02-10"}, "2026-02-11"},
		{"unordered", []string{"2026-02-08", "2026-02-10", "2026-02-09"}, "2026-02-11"},
		{"with gap", []string{"2026-02-01", "2026-02-10"}, "2026-02-11"},
		{"month boundary", []string{"2026-02-28"}, "2026-03-01"},
		{"year boundary", []string{"2026-12-31"}, "2027-01-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextOpenDate(tt.occupied, time.Now().UTC())
			if got != tt.want {
				t.Errorf("NextOpenDate(%v) = %q, want %q", tt.occupied, got, tt.want)
			}
			for _, d := range tt.occupied {
				if got <= d {
					t.Errorf("result %q is not after occupied date %q", got, d)
				}
			}
		})
	}
}

func TestValidateMove(t *testing.T) {
	occupied := func(d string) bool {
		return d == "2026-02-11" || d == "2026-02-12"
	}

	tests := []struct {
		name         string
		from, to     string
		wantConflict bool
		wantNotFound bool
	}{
		{"open target", "2026-02-11", "2026-02-20", false, false},
		{"occupied target", "2026-02-11", "2026-02-12", true, false},
		{"same date no-op", "2026-02-11", "2026-02-11", false, false},
		{"missing source", "2026-02-01", "2026-02-20", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMove(tt.from, tt.to, occupied)

			var conflict *ErrDateConflict
			var notFound *ErrNotFound
			switch {
			case tt.wantConflict:
				if !errors.As(err, &conflict) {
					t.Fatalf("expected ErrDateConflict, got %v", err)
				}
			case tt.wantNotFound:
				if !errors.As(err, &notFound) {
					t.Fatalf("expected ErrNotFound, got %v", err)
				}
			default:
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			}
		})
	}
}
