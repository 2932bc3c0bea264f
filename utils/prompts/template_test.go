package prompts

import (
	"testing"
)

func TestFill(t *testing.T) {
	tests := []struct {
		name     string
		template string
		fields   map[string]string
		expected string
	}{
		{
			name:     "single placeholder",
			template: "Input: {{{rawUserInput}}}",
			fields:   map[string]string{"rawUserInput": "order process"},
			expected: "Input: order process",
		},
		{
			name:     "repeated placeholder",
			template: "{{{x}}} and {{{x}}}",
			fields:   map[string]string{"x": "twice"},
			expected: "twice and twice",
		},
		{
			name:     "multiple placeholders",
			template: "{{{originalBpmnXml}}}\n{{{validationIssues}}}",
			fields:   map[string]string{"originalBpmnXml": "<x/>", "validationIssues": "1. issue"},
			expected: "<x/>\n1. issue",
		},
		{
			name:     "unknown placeholder left in place",
			template: "keep {{{unknown}}}",
			fields:   map[string]string{"rawUserInput": "unused"},
			expected: "keep {{{unknown}}}",
		},
		{
			name:     "double braces are not placeholders",
			template: "{{notAPlaceholder}}",
			fields:   map[string]string{"notAPlaceholder": "value"},
			expected: "{{notAPlaceholder}}",
		},
		{
			name:     "no fields",
			template: "static text",
			fields:   nil,
			expected: "static text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fill(tt.template, tt.fields)
			if got != tt.expected {
				t.Errorf("Fill() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestRenderIssues(t *testing.T) {
	tests := []struct {
		name     string
		issues   []string
		expected string
	}{
		{"empty", nil, "(no issues listed)"},
		{"single", []string{"missing end event"}, "1. missing end event"},
		{"multiple", []string{"a", "b", "c"}, "1. a\n2. b\n3. c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderIssues(tt.issues)
			if got != tt.expected {
				t.Errorf("RenderIssues(%v) = %q, want %q", tt.issues, got, tt.expected)
			}
		})
	}
}
