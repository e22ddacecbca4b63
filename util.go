package daedalus

import (
	"fmt"
	"strings"
)

func escape(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '\t':
			sb.WriteString("\\t")
		case '\n':
			sb.WriteString("\\n")
		case '\r':
			sb.WriteString("\\r")
		case '"':
			sb.WriteString("\\\"")
		case '\\':
			sb.WriteString("\\\\")
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func quote(s string) string {
	if strings.Contains(s, "`") {
		return fmt.Sprintf(`"%s"`, escape(s))
	}
	return fmt.Sprintf("`%s`", escape(s))
}

// Shorten long source excerpts in error messages.
func excerpt(s string) string {
	const limit = 16
	if line, _, found := strings.Cut(s, "\n"); found {
		s = line
	}
	runes := []rune(s)
	if len(runes) > limit {
		return string(runes[:limit]) + "..."
	}
	return s
}

func indentation(indent int) string {
	if indent <= 0 {
		return ""
	}
	return strings.Repeat("\t", indent)
}
