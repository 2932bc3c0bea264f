package pipeline

import (
	"encoding/json"
	"fmt"
	"strings"
)

// stripFences removes a surrounding markdown code fence, with or without a
// language tag, from a model response.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		// Drop the language tag line ("xml", "json", or empty)
		s = s[idx+1:]
	}
	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

// extractJSONObject returns the outermost JSON object embedded in a model
// response, tolerating prose before and after it.
func extractJSONObject(s string) (string, bool) {
	s = stripFences(s)
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

// verdictWire mirrors the validation JSON contract; IsValid is a pointer so a
// response missing the field is distinguishable from an explicit false.
type verdictWire struct {
	IsValid *bool    `json:"isValid"`
	Issues  []string `json:"issues"`
	Summary string   `json:"summary"`
}

// decodeVerdict parses the validation stage's JSON response
func decodeVerdict(response string) (*Verdict, error) {
	raw, ok := extractJSONObject(response)
	if !ok {
		return nil, fmt.Errorf("no JSON object found in validation response")
	}

	var wire verdictWire
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return nil, fmt.Errorf("malformed validation JSON: %w", err)
	}
	if wire.IsValid == nil {
		return nil, fmt.Errorf("validation response is missing the isValid field")
	}

	issues := wire.Issues
	if issues == nil {
		issues = []string{}
	}
	return &Verdict{
		IsValid: *wire.IsValid,
		Issues:  issues,
		Summary: wire.Summary,
	}, nil
}

// extractXML pulls a BPMN XML document out of a model response, tolerating
// code fences and surrounding prose. Returns "" when no document is present.
func extractXML(response string) string {
	s := stripFences(response)

	start := strings.Index(s, "<?xml")
	if start < 0 {
		start = strings.Index(s, "<bpmn:definitions")
	}
	if start < 0 {
		start = strings.Index(s, "<definitions")
	}
	if start < 0 {
		return ""
	}

	// Anchor on the closing definitions tag so trailing prose containing '>'
	// is not glued onto the document
	end := -1
	for _, closer := range []string{"</bpmn:definitions>", "</definitions>"} {
		if idx := strings.LastIndex(s, closer); idx >= start {
			end = idx + len(closer) - 1
			break
		}
	}
	if end < 0 {
		end = strings.LastIndex(s, ">")
	}
	if end < start {
		return ""
	}
	return s[start : end+1]
}
