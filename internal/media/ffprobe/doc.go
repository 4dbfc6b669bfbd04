// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// This package has no speakerid-specific dependencies and could be extracted
// as a standalone library.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: individual stream properties (codec, sample rate, channels)
//   - Format: container-level metadata
//
// Primary entry point:
//   - Inspect: executes ffprobe and returns a parsed Result. An Inspect
//     failure means the container could not be decoded.
package ffprobe
