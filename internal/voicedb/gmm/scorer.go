package gmm

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

// Scorer compares one sample against one stored model. Implemented by the
// external GMM scoring process; injectable for tests.
type Scorer interface {
	Score(ctx context.Context, samplePath, modelPath string) (float64, error)
}

// MScore invokes the LIUM scoring program for one (sample, model) pair and
// parses the log-likelihood it reports.
type MScore struct {
	java   string
	jar    string
	ubm    string
	runner func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewMScore builds an external scorer around the diarizer jar and UBM model.
func NewMScore(java, jar, ubm string) *MScore {
	java = strings.TrimSpace(java)
	if java == "" {
		java = "java"
	}
	return &MScore{java: java, jar: jar, ubm: ubm}
}

// WithRunner sets a custom command runner (for testing).
func (m *MScore) WithRunner(runner func(ctx context.Context, name string, args ...string) ([]byte, error)) *MScore {
	if runner != nil {
		m.runner = runner
	}
	return m
}

// Score implements Scorer.
func (m *MScore) Score(ctx context.Context, samplePath, modelPath string) (float64, error) {
	args := []string{
		"-Xmx256M",
		"-cp", m.jar,
		"fr.lium.spkDiarization.programs.MScore",
		"--fInputMask=" + samplePath,
		"--tInputMask=" + modelPath,
		"--sTop=8," + m.ubm,
		"--sSetLabel=add",
		"--sByCluster",
	}
	output, err := m.run(ctx, m.java, args...)
	if err != nil {
		return 0, fmt.Errorf("mscore: %w", err)
	}
	score, err := parseScore(string(output))
	if err != nil {
		return 0, fmt.Errorf("mscore %s vs %s: %w", samplePath, modelPath, err)
	}
	return score, nil
}

func (m *MScore) run(ctx context.Context, name string, args ...string) ([]byte, error) {
	if m.runner != nil {
		return m.runner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return output, nil
}

// The scoring program reports per-cluster results as
// "... [ score:<model> = <value> ] ...". When a sample is scored against
// several internal variants the best (highest) value wins.
var scorePattern = regexp.MustCompile(`score:\S+\s*=\s*(-?\d+(?:\.\d+)?)`)

func parseScore(output string) (float64, error) {
	matches := scorePattern.FindAllStringSubmatch(output, -1)
	if len(matches) == 0 {
		return 0, fmt.Errorf("no score in output")
	}
	best := 0.0
	found := false
	for _, match := range matches {
		value, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			return 0, fmt.Errorf("parse score %q: %w", match[1], err)
		}
		if !found || value > best {
			best = value
			found = true
		}
	}
	return best, nil
}
