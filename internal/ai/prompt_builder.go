package ai

import "strings"

// Compile builds the generation prompt sent to the LLM from the caller's
// task, input variable names and optional structure hint.
//
// The fallback generator parses this exact layout, so the <Task> and
// <Inputs> sections must stay byte-stable.
func Compile(task string, inputs []string, structure string) string {

	var b strings.Builder

	b.WriteString("Create detailed AI assistant instructions for the following task:\n\n")

	b.WriteString("<Task>\n")
	b.WriteString(task)
	b.WriteString("\n</Task>\n\n")

	b.WriteString("<Inputs>\n")
	if len(inputs) > 0 {
		for i, name := range inputs {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString("{$" + name + "}")
		}
	} else {
		b.WriteString("No specific input variables defined - determine appropriate ones based on the task.")
	}
	b.WriteString("\n</Inputs>\n\n")

	if structure != "" {
		b.WriteString("<Preferred Structure>\n")
		b.WriteString(structure)
		b.WriteString("\n</Preferred Structure>\n\n")
	}

	b.WriteString(`Now write comprehensive instructions for an AI assistant to complete this task. Include:
1. Clear role definition and context
2. Important rules and constraints  
3. Input variable placements
4. Examples if helpful
5. Output format specification

Write the complete prompt template:`)

	return b.String()
}
