package prompts

import (
	"fmt"
	"strings"
)

// Fill interpolates named fields into a template. Placeholders use the
// triple-brace form {{{name}}} and are replaced verbatim, with no escaping.
// Unknown placeholders are left in place so a malformed template is visible
// in the model's input rather than silently dropped.
func Fill(template string, fields map[string]string) string {
	result := template
	for name, value := range fields {
		result = strings.ReplaceAll(result, "{{{"+name+"}}}", value)
	}
	return result
}

// RenderIssues formats validation issues as an enumerated list for inclusion
// in the correction template.
func RenderIssues(issues []string) string {
	if len(issues) == 0 {
		return "(no issues listed)"
	}
	var b strings.Builder
	for i, issue := range issues {
		fmt.Fprintf(&b, "%d. %s\n", i+1, issue)
	}
	return strings.TrimRight(b.String(), "\n")
}
