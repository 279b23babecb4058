package gpt

import (
	"regexp"
	"strings"
)

// codeBlockPattern matches the first fenced code block, with or without a
// language tag.
var codeBlockPattern = regexp.MustCompile("(?s)```(?:go)?\\n?(.*?)```")

// Markers that start explanatory lines rather than code.
var explanationMarkers = []string{"Note:", "Error:", "Warning:", "INFO:"}

// ExtractCode extracts script code from a model response. A fenced code
// block wins; otherwise the whole response is treated as code, minus lines
// that start with a recognized explanation marker.
func ExtractCode(response string) string {
	if m := codeBlockPattern.FindStringSubmatch(response); m != nil {
		return strings.TrimSpace(m[1])
	}

	lines := strings.Split(strings.TrimSpace(response), "\n")
	codeLines := make([]string, 0, len(lines))

	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			continue
		}
		if hasExplanationMarker(stripped) {
			continue
		}
		codeLines = append(codeLines, line)
	}

	return strings.Join(codeLines, "\n")
}

func hasExplanationMarker(line string) bool {
	for _, marker := range explanationMarkers {
		if strings.HasPrefix(line, marker) {
			return true
		}
	}
	return false
}
