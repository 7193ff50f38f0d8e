package model

import (
	"errors"
	"testing"
)

func TestParsePriority(t *testing.T) {
	cases := []struct {
		in   string
		want Priority
		ok   bool
	}{
		{"Low", PriorityLow, true},
		{"Medium", PriorityMedium, true},
		{"High", PriorityHigh, true},
		{"  High ", PriorityHigh, true},
		{"2", PriorityHigh, true},
		{"0", PriorityLow, true},
		{"high", 0, false},
		{"Bogus", 0, false},
		{"", 0, false},
		{"3", 0, false},
		{"-1", 0, false},
	}
	for _, tc := range cases {
		got, err := ParsePriority(tc.in)
		if tc.ok {
			if err != nil {
				t.Fatalf("ParsePriority(%q): unexpected error %v", tc.in, err)
			}
			if got != tc.want {
				t.Fatalf("ParsePriority(%q) = %v, want %v", tc.in, got, tc.want)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidPriority) {
			t.Fatalf("ParsePriority(%q): expected ErrInvalidPriority, got %v", tc.in, err)
		}
	}
}

func TestPriorityStringRoundTrip(t *testing.T) {
	for _, p := range Priorities() {
		got, err := ParsePriority(p.String())
		if err != nil || got != p {
			t.Fatalf("round trip of %v gave %v, %v", p, got, err)
		}
	}
	if s := Priority(7).String(); s != "7" {
		t.Fatalf("unexpected string for undeclared level: %q", s)
	}
}
