package domain

import "testing"

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want Status
	}{
		{"created", StatusCreated},
		{"running", StatusRunning},
		{"restarting", StatusRestarting},
		{"exited", StatusExited},
		{"paused", StatusPaused},
		{"dead", StatusDead},
		{"removing", StatusRemoving},
		{"RUNNING", StatusRunning},
		{"Exited", StatusExited},
		{" running ", StatusRunning},
		{"bogus", StatusUnknown},
		{"", StatusUnknown},
		{"up 3 hours", StatusUnknown},
	}
	for _, tt := range tests {
		if got := NormalizeStatus(tt.raw); got != tt.want {
			t.Errorf("NormalizeStatus(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestShortId(t *testing.T) {
	long := ContainerSnapshot{Id: "0123456789abcdef0123456789abcdef"}
	if got := long.ShortId(); got != "0123456789ab" {
		t.Errorf("ShortId() = %q, want %q", got, "0123456789ab")
	}
	short := ContainerSnapshot{Id: "abc"}
	if got := short.ShortId(); got != "abc" {
		t.Errorf("ShortId() = %q, want %q", got, "abc")
	}
}
