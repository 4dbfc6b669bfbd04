// Package report renders the outcome of an identification run: the
// ordered label-to-identity assignments plus optional subtitle output.
package report

import (
	"encoding/json"
	"strings"

	"speakerid/internal/speaker"
)

// Assignment pairs one diarizer cluster label with its resolved identity.
// The order of a run's assignments follows diarization order.
type Assignment struct {
	Label      string             `json:"label"`
	Identifier speaker.Identifier `json:"identifier"`
	Speech     float64            `json:"speech_seconds"`
}

// Lines renders the legacy one-per-cluster output, "<label>:<identifier>".
func Lines(assignments []Assignment) string {
	var b strings.Builder
	for _, a := range assignments {
		b.WriteString(a.Label)
		b.WriteByte(':')
		b.WriteString(a.Identifier.Name())
		b.WriteByte('\n')
	}
	return b.String()
}

// JSON renders the assignments as an indented JSON array.
func JSON(assignments []Assignment) (string, error) {
	data, err := json.MarshalIndent(assignments, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
