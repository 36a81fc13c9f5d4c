package journal

import "strings"

// Normalize splits raw model output into trimmed, non-empty, unique lines,
// keeping the first occurrence of each line in order. It never fails.
func Normalize(raw string) []string {
	lines := strings.Split(raw, "\n")
	out := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		// TrimSpace also drops the '\r' left behind by "\r\n" terminators.
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if _, dup := seen[line]; dup {
			continue
		}
		seen[line] = struct{}{}
		out = append(out, line)
	}
	return out
}
