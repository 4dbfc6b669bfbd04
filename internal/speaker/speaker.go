// Package speaker defines the identity and gender value types shared by the
// cluster model, the scoring chain, and the voiceprint database.
package speaker

import (
	"encoding/json"
	"strings"
)

// UnknownName is the sentinel identity assigned when no voiceprint matches.
const UnknownName = "unknown"

// Identifier is an immutable value wrapping a speaker name. The zero value
// is "unset": distinct from Unknown, it marks a cluster the identification
// phase has not assigned yet.
type Identifier struct {
	name string
}

// NewIdentifier builds an Identifier from a speaker name. Empty or blank
// names map to Unknown.
func NewIdentifier(name string) Identifier {
	name = strings.TrimSpace(name)
	if name == "" {
		return Unknown()
	}
	return Identifier{name: name}
}

// Unknown returns the sentinel identifier for unmatched voices.
func Unknown() Identifier {
	return Identifier{name: UnknownName}
}

// IsZero reports whether the identifier is unset.
func (id Identifier) IsZero() bool {
	return id.name == ""
}

// IsUnknown reports whether the identifier is the unmatched sentinel.
func (id Identifier) IsUnknown() bool {
	return id.name == UnknownName
}

// Name returns the wrapped speaker name, or the unknown sentinel for the
// zero value.
func (id Identifier) Name() string {
	if id.name == "" {
		return UnknownName
	}
	return id.name
}

func (id Identifier) String() string {
	return id.Name()
}

// MarshalJSON encodes the identifier as its resolved name.
func (id Identifier) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.Name())
}

// Gender is the diarizer's estimate for a cluster's voice.
type Gender string

const (
	GenderMale    Gender = "M"
	GenderFemale  Gender = "F"
	GenderUnknown Gender = "U"
)

// ParseGender maps a diarizer gender column to a Gender, defaulting to
// unknown for anything unrecognized.
func ParseGender(value string) Gender {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "M":
		return GenderMale
	case "F":
		return GenderFemale
	default:
		return GenderUnknown
	}
}

func (g Gender) String() string {
	return string(g)
}
