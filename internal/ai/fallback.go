package ai

import (
	"regexp"
	"strings"
)

var placeholderRe = regexp.MustCompile(`\{\$(\w+)\}`)

// extractSection returns the trimmed text strictly between <tag> and </tag>.
// The closing tag must appear after the opening one.
func extractSection(s, tag string) (string, bool) {
	openTag := "<" + tag + ">"
	closeTag := "</" + tag + ">"

	start := strings.Index(s, openTag)
	if start < 0 {
		return "", false
	}
	rest := s[start+len(openTag):]

	end := strings.Index(rest, closeTag)
	if end < 0 {
		return "", false
	}
	return strings.TrimSpace(rest[:end]), true
}

// parseCompiled recovers the task text and input variable names from a
// compiled generation prompt. It never fails: missing or reversed markers
// yield safe defaults, since this runs on the failure-recovery path.
func parseCompiled(prompt string) (task string, inputs []string) {
	task, ok := extractSection(prompt, "Task")
	if !ok {
		task = "the specified task"
	}

	inputsText, _ := extractSection(prompt, "Inputs")
	if inputsText == "" || strings.Contains(inputsText, "No specific input") {
		return task, nil
	}

	// Duplicates are kept on purpose: callers may reference the same
	// variable twice and the template reflects every occurrence.
	for _, m := range placeholderRe.FindAllStringSubmatch(inputsText, -1) {
		inputs = append(inputs, m[1])
	}
	return task, inputs
}

// Fallback deterministically derives an instruction template from a compiled
// generation prompt. Used whenever no API key resolves or the provider call
// fails, so it must always succeed.
func Fallback(prompt string) string {
	task, inputs := parseCompiled(prompt)

	var b strings.Builder

	b.WriteString("You will be acting as an AI assistant to help with the following task.\n\n")
	b.WriteString("<Task>\n")
	b.WriteString(task)
	b.WriteString("\n</Task>\n\n")

	if len(inputs) > 0 {
		b.WriteString("Here are the input variables you will work with:\n<Inputs>\n")
		for _, name := range inputs {
			b.WriteString("{$" + name + "}\n")
		}
		b.WriteString("</Inputs>\n\n")
	}

	b.WriteString(`Important rules for the interaction:
- Stay focused on the task at hand
- Be clear and precise in your responses
- If you're unsure about something, ask for clarification
- Follow any specific formatting requirements mentioned in the task

`)

	if len(inputs) > 0 {
		b.WriteString("When processing the inputs:\n")
		for _, name := range inputs {
			b.WriteString("- Use the {$" + name + "} value as provided\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(`Think through your response carefully before providing it. If the task requires reasoning, show your work in <thinking></thinking> tags before giving your final answer.

Provide your response in a clear, structured format appropriate for the task.

BEGIN TASK

`)

	for _, name := range inputs {
		b.WriteString("{$" + name + "}\n\n")
	}

	return b.String()
}
