// Package deps reports the availability of the external tools and artifacts
// a run depends on: the ffmpeg/ffprobe binaries, the JVM, the diarizer jar,
// and the universal background model.
package deps

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"speakerid/internal/config"
)

// Kind distinguishes executables resolved on PATH from plain files.
type Kind int

const (
	KindBinary Kind = iota
	KindFile
)

// Requirement defines one external dependency.
type Requirement struct {
	Name        string
	Path        string
	Description string
	Kind        Kind
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Path        string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements builds the dependency list for the given configuration.
func Requirements(cfg *config.Config) []Requirement {
	return []Requirement{
		{Name: "FFmpeg", Path: cfg.FFmpegBinary(), Description: "Required for transcoding and segment slicing", Kind: KindBinary},
		{Name: "FFprobe", Path: cfg.FFprobeBinary(), Description: "Required for the format probe", Kind: KindBinary},
		{Name: "Java", Path: cfg.JavaBinary(), Description: "Required to run the diarizer and scorer", Kind: KindBinary},
		{Name: "Diarizer jar", Path: cfg.Tools.DiarizerJar, Description: "LIUM speaker diarization toolkit", Kind: KindFile},
		{Name: "Background model", Path: cfg.Tools.UBMPath, Description: "Universal background model for scoring", Kind: KindFile},
	}
}

// Check evaluates the requirements and reports per-dependency availability.
func Check(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		path := strings.TrimSpace(req.Path)
		status := Status{
			Name:        req.Name,
			Path:        path,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		switch {
		case path == "":
			status.Detail = "not configured"
		case req.Kind == KindBinary:
			if resolved, err := exec.LookPath(path); err != nil {
				status.Detail = fmt.Sprintf("binary %q not found", path)
			} else {
				status.Path = resolved
				status.Available = true
			}
		default:
			if info, err := os.Stat(path); err != nil {
				status.Detail = fmt.Sprintf("file %q not found", path)
			} else if info.IsDir() {
				status.Detail = fmt.Sprintf("%q is a directory", path)
			} else {
				status.Available = true
			}
		}
		results = append(results, status)
	}
	return results
}

// AllAvailable reports whether every non-optional dependency passed.
func AllAvailable(statuses []Status) bool {
	for _, s := range statuses {
		if !s.Optional && !s.Available {
			return false
		}
	}
	return true
}
