package services

import (
	"errors"
	"strings"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	inner := errors.New("exit status 1")
	err := Wrap(ErrExternalTool, "trim", "slice segment", "segment 2", inner)
	if !errors.Is(err, ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool marker, got %v", err)
	}
	if !errors.Is(err, inner) {
		t.Fatalf("expected inner error preserved, got %v", err)
	}
	if !strings.Contains(err.Error(), "trim: slice segment: segment 2") {
		t.Fatalf("unexpected detail: %v", err)
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := Wrap(nil, "", "", "", nil)
	if !errors.Is(err, ErrExternalTool) {
		t.Fatalf("expected default marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected fallback detail, got %v", err)
	}
}

func TestFatalClassification(t *testing.T) {
	cases := []struct {
		name  string
		err   error
		fatal bool
	}{
		{"input", Wrap(ErrInput, "pipeline", "validate", "", nil), true},
		{"diarization", Wrap(ErrDiarization, "diarize", "run", "", nil), true},
		{"state", Wrap(ErrState, "pipeline", "report", "", nil), true},
		{"tool", Wrap(ErrExternalTool, "trim", "slice", "", nil), false},
		{"format", Wrap(ErrUnsupportedFormat, "probe", "decode", "", nil), false},
	}
	for _, tc := range cases {
		if got := Fatal(tc.err); got != tc.fatal {
			t.Fatalf("%s: Fatal=%v want %v", tc.name, got, tc.fatal)
		}
	}
}
