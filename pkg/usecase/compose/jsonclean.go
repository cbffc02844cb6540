package compose

import "strings"

// CleanJSON isolates a JSON object from free model output. Two stages:
// strip markdown code fencing, then cut to the first '{' and last '}'
// to discard any conversational preamble or postscript. Idempotent on
// already-clean JSON.
func CleanJSON(text string) string {
	if text == "" {
		return "{}"
	}

	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")

	first := strings.Index(cleaned, "{")
	last := strings.LastIndex(cleaned, "}")
	if first >= 0 && last > first {
		cleaned = cleaned[first : last+1]
	}

	return strings.TrimSpace(cleaned)
}
