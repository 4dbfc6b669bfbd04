package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"speakerid/internal/cluster"
)

type srtEntry struct {
	start time.Duration
	end   time.Duration
	text  string
}

// SRT renders one subtitle entry per speech segment across all clusters,
// ordered by start time, with the cluster's resolved identity as the text.
func SRT(clusters []*cluster.Cluster) string {
	var entries []srtEntry
	for _, c := range clusters {
		name := c.Identity().Name()
		for _, seg := range c.Segments {
			entries = append(entries, srtEntry{start: seg.Start, end: seg.End, text: name})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].start != entries[j].start {
			return entries[i].start < entries[j].start
		}
		return entries[i].end < entries[j].end
	})

	var b strings.Builder
	for i, e := range entries {
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n", i+1, srtTimestamp(e.start), srtTimestamp(e.end), e.text)
	}
	return b.String()
}

// srtTimestamp formats a duration as the SubRip "HH:MM:SS,mmm" stamp.
func srtTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	d -= s * time.Second
	ms := d / time.Millisecond
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}
