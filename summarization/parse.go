package summarization

import (
	"encoding/json"
	"strings"
)

// ParseModelOutput turns raw model text into a Result. It extracts the
// first {...} block and unmarshals it; when no block is found or the JSON
// is malformed, the raw text becomes the summary and every structured
// field stays empty, so a chatty model degrades the output instead of
// failing the stage.
func ParseModelOutput(text string) *Result {
	if block, ok := extractJSONBlock(text); ok {
		var res Result
		if err := json.Unmarshal([]byte(block), &res); err == nil {
			return &res
		}
	}
	return &Result{Summary: strings.TrimSpace(text)}
}

// extractJSONBlock returns the substring from the first '{' to the last
// '}' of text.
func extractJSONBlock(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}
