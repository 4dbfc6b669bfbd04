// Package cluster holds the mutable record of one diarized speaker turn
// group as it moves through the pipeline phases.
package cluster

import (
	"fmt"
	"time"

	"speakerid/internal/speaker"
)

// Segment is one contiguous speech span attributed to the cluster,
// expressed as offsets into the source track.
type Segment struct {
	Start time.Duration
	End   time.Duration
}

// Duration returns the span length.
func (s Segment) Duration() time.Duration {
	return s.End - s.Start
}

func (s Segment) String() string {
	return fmt.Sprintf("%.2f-%.2f", s.Start.Seconds(), s.End.Seconds())
}

// Cluster is a diarization-identified group of speech segments attributed
// to one speaker. It is created by the diarization phase, gains segment
// files during trimming and a sample path once the segment audio is merged,
// and receives its identity during matching. Clusters live for a single run
// and are never persisted.
type Cluster struct {
	// Label is the stable id assigned by the diarizer, e.g. "S0".
	Label string
	// Gender is the diarizer's estimate for the cluster's voice.
	Gender speaker.Gender
	// Sample is the path to the cluster's merged audio, the input the
	// voiceprint lookup scores against. Opaque to the core.
	Sample string
	// Segments are the cluster's speech spans in ascending offset order.
	Segments []Segment
	// SegmentFiles are the per-segment audio files produced by trimming,
	// in segment order. Partial on trim failure.
	SegmentFiles []string

	identifier speaker.Identifier
}

// New builds a cluster with the given diarizer label and gender.
func New(label string, gender speaker.Gender) *Cluster {
	return &Cluster{Label: label, Gender: gender}
}

// AddSegment appends a speech span.
func (c *Cluster) AddSegment(start, end time.Duration) {
	c.Segments = append(c.Segments, Segment{Start: start, End: end})
}

// SetIdentifier records the matched identity. Assigning the zero identifier
// is ignored so a cluster can only move from unset to a concrete value.
func (c *Cluster) SetIdentifier(id speaker.Identifier) {
	if id.IsZero() {
		return
	}
	c.identifier = id
}

// Identified reports whether the identification phase assigned an identity.
func (c *Cluster) Identified() bool {
	return !c.identifier.IsZero()
}

// Identity returns the assigned identifier, resolving an unset one to the
// unknown sentinel.
func (c *Cluster) Identity() speaker.Identifier {
	if c.identifier.IsZero() {
		return speaker.Unknown()
	}
	return c.identifier
}

// Speech returns the total speech time across all segments.
func (c *Cluster) Speech() time.Duration {
	var total time.Duration
	for _, seg := range c.Segments {
		total += seg.Duration()
	}
	return total
}

func (c *Cluster) String() string {
	return c.Label + ":" + c.Identity().Name()
}
