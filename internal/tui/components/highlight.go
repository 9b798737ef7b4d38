package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// jsonStyles colors the tokens of pretty-printed JSON.
type jsonStyles struct {
	key    lipgloss.Style
	str    lipgloss.Style
	number lipgloss.Style
	bool   lipgloss.Style
	null   lipgloss.Style
	punct  lipgloss.Style
}

func defaultJSONStyles() jsonStyles {
	return jsonStyles{
		key:    lipgloss.NewStyle().Foreground(lipgloss.Color("141")),
		str:    lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		number: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		bool:   lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		null:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		punct:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	}
}

// HighlightJSON colors one line of indented JSON. Lines are independent, so
// callers may highlight only the visible part of a document.
func HighlightJSON(line string) string {
	return defaultJSONStyles().line(line)
}

func (s jsonStyles) line(line string) string {
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return line
	}

	var b strings.Builder
	b.WriteString(line[:len(line)-len(trimmed)])

	chars := []rune(trimmed)
	for i := 0; i < len(chars); {
		ch := chars[i]
		switch {
		case ch == '"':
			end := stringEnd(chars, i)
			tok := string(chars[i:end])
			if isKey(chars, end) {
				b.WriteString(s.key.Render(tok))
			} else {
				b.WriteString(s.str.Render(tok))
			}
			i = end
		case strings.ContainsRune("{}[]:", ch):
			b.WriteString(s.punct.Render(string(ch)))
			i++
		case ch == '-' || (ch >= '0' && ch <= '9'):
			end := i + 1
			for end < len(chars) && strings.ContainsRune("0123456789.eE+-", chars[end]) {
				end++
			}
			b.WriteString(s.number.Render(string(chars[i:end])))
			i = end
		case hasWord(chars, i, "true"), hasWord(chars, i, "false"):
			w := 4
			if ch == 'f' {
				w = 5
			}
			b.WriteString(s.bool.Render(string(chars[i : i+w])))
			i += w
		case hasWord(chars, i, "null"):
			b.WriteString(s.null.Render("null"))
			i += 4
		default:
			b.WriteRune(ch)
			i++
		}
	}
	return b.String()
}

// stringEnd returns the index just past the string literal starting at start.
func stringEnd(chars []rune, start int) int {
	for i := start + 1; i < len(chars); i++ {
		switch chars[i] {
		case '\\':
			i++
		case '"':
			return i + 1
		}
	}
	return len(chars)
}

func isKey(chars []rune, from int) bool {
	for i := from; i < len(chars); i++ {
		if chars[i] != ' ' && chars[i] != '\t' {
			return chars[i] == ':'
		}
	}
	return false
}

func hasWord(chars []rune, at int, word string) bool {
	w := []rune(word)
	if at+len(w) > len(chars) {
		return false
	}
	return string(chars[at:at+len(w)]) == word
}
