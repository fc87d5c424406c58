package services

import (
	"testing"
	"time"
)

func TestIntervalsOverlap(t *testing.T) {
	base := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	at := func(min int) time.Time { return base.Add(time.Duration(min) * time.Minute) }

	cases := []struct {
		name           string
		s1, e1, s2, e2 time.Time
		want           bool
	}{
		{"partial overlap", at(0), at(60), at(30), at(90), true},
		{"containment", at(0), at(120), at(30), at(60), true},
		{"identical", at(0), at(60), at(0), at(60), true},
		{"disjoint", at(0), at(60), at(120), at(180), false},
		{"back to back", at(0), at(60), at(60), at(120), false},
		{"back to back reversed", at(60), at(120), at(0), at(60), false},
	}

	for _, tc := range cases {
		if got := IntervalsOverlap(tc.s1, tc.e1, tc.s2, tc.e2); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}
