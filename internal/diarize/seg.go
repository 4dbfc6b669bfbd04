package diarize

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"speakerid/internal/cluster"
	"speakerid/internal/speaker"
)

// Segmentation files use one line per speech turn:
//
//	<show> <channel> <start> <duration> <gender> <band> <env> <label>
//
// with start and duration in centiseconds, plus ";; cluster:<label>" header
// comments announcing each cluster. Cluster order follows first appearance.
const centisecond = 10 * time.Millisecond

// ParseSeg reads a segmentation stream and builds the cluster list in
// diarization order.
func ParseSeg(r io.Reader) ([]*cluster.Cluster, error) {
	var ordered []*cluster.Cluster
	byLabel := make(map[string]*cluster.Cluster)

	lookup := func(label string) *cluster.Cluster {
		if c, ok := byLabel[label]; ok {
			return c
		}
		c := cluster.New(label, speaker.GenderUnknown)
		byLabel[label] = c
		ordered = append(ordered, c)
		return c
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ";;") {
			if label, ok := headerLabel(line); ok {
				lookup(label)
			}
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 8 {
			return nil, fmt.Errorf("seg line %d: expected 8 fields, got %d", lineNo, len(fields))
		}
		start, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("seg line %d: start: %w", lineNo, err)
		}
		duration, err := strconv.ParseInt(fields[3], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("seg line %d: duration: %w", lineNo, err)
		}

		c := lookup(fields[7])
		c.Gender = speaker.ParseGender(fields[4])
		startOffset := time.Duration(start) * centisecond
		c.AddSegment(startOffset, startOffset+time.Duration(duration)*centisecond)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read seg: %w", err)
	}
	return ordered, nil
}

func headerLabel(line string) (string, bool) {
	for _, token := range strings.Fields(line) {
		if rest, ok := strings.CutPrefix(token, "cluster:"); ok && rest != "" {
			return rest, true
		}
	}
	return "", false
}
