package output

import (
	"fmt"
	"strings"
)

// FormatHeader formats a Markdown header.
func FormatHeader(level int, title string) string {
	return strings.Repeat("#", max(1, level)) + " " + title
}

// FormatKeyValue formats a Markdown bullet with a bold key.
func FormatKeyValue(key, value string) string {
	return fmt.Sprintf("- **%s**: %s", key, value)
}

// FormatCodeBlock formats a fenced Markdown code block.
func FormatCodeBlock(lang, code string) string {
	return "```" + lang + "\n" + strings.TrimRight(code, "\n") + "\n```"
}
