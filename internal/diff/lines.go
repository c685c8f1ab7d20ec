package diff

import "strings"

// SplitLines turns raw file content into an ordered line sequence.
// A trailing newline does not produce a final empty line, and CRLF line
// endings are normalized. Empty content yields an empty sequence, which is
// also how a missing file is represented.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
