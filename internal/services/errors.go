package services

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors classify pipeline failures. Input, diarization, and state
// errors are fatal to the run; unsupported-format errors trigger the
// transcode fallback; external-tool errors during trimming are fatal for a
// single cluster only.
var (
	ErrInput             = errors.New("input error")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrDiarization       = errors.New("diarization error")
	ErrExternalTool      = errors.New("external tool error")
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("not found")
	ErrState             = errors.New("pipeline state error")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Fatal reports whether an error should abort the whole run rather than a
// single cluster.
func Fatal(err error) bool {
	switch {
	case errors.Is(err, ErrInput), errors.Is(err, ErrDiarization), errors.Is(err, ErrState), errors.Is(err, ErrValidation):
		return true
	default:
		return false
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
