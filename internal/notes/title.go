package notes

import "strings"

const (
	maxTitleRunes = 30

	untitled     = "Untitled"
	copilotTitle = "CoPilot Note"
)

// DeriveTitle returns the display title for content: the first non-empty
// line, trimmed and cut to 30 characters. Content without text yields
// "Untitled", or "CoPilot Note" for the CoPilot category.
func DeriveTitle(content string, category Category) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if r := []rune(line); len(r) > maxTitleRunes {
			line = string(r[:maxTitleRunes])
		}
		return line
	}
	if category == CoPilot {
		return copilotTitle
	}
	return untitled
}
