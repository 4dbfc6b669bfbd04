package diarize

import (
	"strings"
	"testing"
	"time"

	"speakerid/internal/speaker"
)

const sampleSeg = `;; cluster:S0 [ score:FS = -33.7 ]
talk 1 0 500 M S U S0
talk 1 1000 200 M S U S0
;; cluster:S1 [ score:FS = -34.1 ]
talk 1 500 500 F S U S1
`

func TestParseSegOrderAndOffsets(t *testing.T) {
	clusters, err := ParseSeg(strings.NewReader(sampleSeg))
	if err != nil {
		t.Fatalf("ParseSeg: %v", err)
	}
	if len(clusters) != 2 {
		t.Fatalf("expected 2 clusters, got %d", len(clusters))
	}
	if clusters[0].Label != "S0" || clusters[1].Label != "S1" {
		t.Fatalf("unexpected order: %q, %q", clusters[0].Label, clusters[1].Label)
	}

	s0 := clusters[0]
	if s0.Gender != speaker.GenderMale {
		t.Fatalf("unexpected gender: %q", s0.Gender)
	}
	if len(s0.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(s0.Segments))
	}
	if s0.Segments[0].Start != 0 || s0.Segments[0].End != 5*time.Second {
		t.Fatalf("unexpected first segment: %v", s0.Segments[0])
	}
	if s0.Segments[1].Start != 10*time.Second || s0.Segments[1].End != 12*time.Second {
		t.Fatalf("unexpected second segment: %v", s0.Segments[1])
	}

	s1 := clusters[1]
	if s1.Gender != speaker.GenderFemale {
		t.Fatalf("unexpected gender for S1: %q", s1.Gender)
	}
	if s1.Segments[0].Start != 5*time.Second || s1.Segments[0].End != 10*time.Second {
		t.Fatalf("unexpected S1 segment: %v", s1.Segments[0])
	}
}

func TestParseSegWithoutHeaders(t *testing.T) {
	body := "talk 1 0 100 U S U S3\ntalk 1 200 100 U S U S2\n"
	clusters, err := ParseSeg(strings.NewReader(body))
	if err != nil {
		t.Fatalf("ParseSeg: %v", err)
	}
	if len(clusters) != 2 {
		t.Fatalf("expected 2 clusters, got %d", len(clusters))
	}
	if clusters[0].Label != "S3" {
		t.Fatalf("first-appearance order not preserved: %q", clusters[0].Label)
	}
}

func TestParseSegRejectsShortLines(t *testing.T) {
	if _, err := ParseSeg(strings.NewReader("talk 1 0 100\n")); err == nil {
		t.Fatal("expected error for short line")
	}
}

func TestParseSegRejectsBadOffsets(t *testing.T) {
	if _, err := ParseSeg(strings.NewReader("talk 1 zero 100 M S U S0\n")); err == nil {
		t.Fatal("expected error for non-numeric start")
	}
}

func TestParseSegEmptyInput(t *testing.T) {
	clusters, err := ParseSeg(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ParseSeg: %v", err)
	}
	if len(clusters) != 0 {
		t.Fatalf("expected no clusters, got %d", len(clusters))
	}
}
