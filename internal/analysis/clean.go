package analysis

import "strings"

// CleanMarkdown removes a code fence the model sometimes wraps its whole
// answer in.
func CleanMarkdown(input string) string {
	clean := strings.TrimSpace(input)
	if !strings.HasPrefix(clean, "```") {
		return clean
	}

	for _, fence := range []string{"```markdown", "```md", "```"} {
		if strings.HasPrefix(clean, fence) {
			clean = strings.TrimPrefix(clean, fence)
			break
		}
	}
	clean = strings.TrimLeft(clean, "\r\n")
	clean = strings.TrimSuffix(strings.TrimRight(clean, " \t\r\n"), "```")

	return strings.TrimSpace(clean)
}
