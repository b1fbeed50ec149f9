package model

import (
	"regexp"
	"strings"
)

var newlineRun = regexp.MustCompile(`\n+`)

// SplitLines splits newline-joined text on runs of newlines and drops empty
// results. It is the only way list content turns into lines.
func SplitLines(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := newlineRun.Split(s, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinLines is the inverse of SplitLines for lines that contain no empty
// entries.
func JoinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

// normalizeLines re-reads lines through the newline-joined form so that an
// edit which introduced an empty line or an embedded newline is reflected
// exactly as the serialized content would render it.
func normalizeLines(lines []string) []string {
	return SplitLines(JoinLines(lines))
}
