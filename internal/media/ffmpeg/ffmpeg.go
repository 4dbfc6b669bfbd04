// Package ffmpeg wraps the external ffmpeg process behind the three
// operations the pipeline needs: the canonical-wav conversion recipe,
// segment slicing, and segment merging.
package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Runner executes an external command and returns its combined output.
// Injectable for tests.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func defaultRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	return cmd.CombinedOutput()
}

// Client invokes ffmpeg with fixed argument recipes.
type Client struct {
	binary string
	runner Runner
}

// NewClient creates an ffmpeg client for the given binary; an empty binary
// falls back to "ffmpeg" on PATH.
func NewClient(binary string) *Client {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	return &Client{binary: binary, runner: defaultRunner}
}

// WithRunner sets a custom command runner (for testing).
func (c *Client) WithRunner(runner Runner) *Client {
	if runner != nil {
		c.runner = runner
	}
	return c
}

// Result carries the observable outcome of a transcode invocation. Exit
// detail is always populated so callers can decide whether to surface or
// merely log a failure.
type Result struct {
	ExitCode int
	Output   string
	Err      error
}

// Failed reports whether the process exited unsuccessfully.
func (r Result) Failed() bool {
	return r.Err != nil
}

// ToCanonicalWav runs the fixed conversion recipe: decode whatever the
// container holds, resample to 16 kHz mono 16-bit PCM, encode wav. The call
// blocks until the process exits.
func (c *Client) ToCanonicalWav(ctx context.Context, source, dest string) Result {
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
		"-vn",
		"-sn",
		"-dn",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		dest,
	}
	output, err := c.runner(ctx, c.binary, args...)
	result := Result{
		ExitCode: exitCode(err),
		Output:   strings.TrimSpace(string(output)),
		Err:      err,
	}
	if err != nil {
		result.Err = fmt.Errorf("ffmpeg transcode: %w: %s", err, result.Output)
	}
	return result
}

// Slice extracts one time span of audio from source into dest, preserving
// the canonical wav format.
func (c *Client) Slice(ctx context.Context, source string, start, end time.Duration, dest string) error {
	if end <= start {
		return fmt.Errorf("ffmpeg slice: invalid span %v-%v", start, end)
	}
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
		"-ss", formatSeconds(start),
		"-to", formatSeconds(end),
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		dest,
	}
	if output, err := c.runner(ctx, c.binary, args...); err != nil {
		return fmt.Errorf("ffmpeg slice: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

// Merge concatenates the input wavs into dest in order.
func (c *Client) Merge(ctx context.Context, inputs []string, dest string) error {
	if len(inputs) == 0 {
		return errors.New("ffmpeg merge: no inputs")
	}
	args := []string{"-y", "-hide_banner", "-loglevel", "error"}
	for _, input := range inputs {
		args = append(args, "-i", input)
	}
	args = append(args,
		"-filter_complex", fmt.Sprintf("concat=n=%d:v=0:a=1", len(inputs)),
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		dest,
	)
	if output, err := c.runner(ctx, c.binary, args...); err != nil {
		return fmt.Errorf("ffmpeg merge: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

func formatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.3f", d.Seconds())
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
