package export

import (
	"strings"
	"unicode"
)

// forbidden are the characters stripped from download filenames.
const forbidden = `<>:"/\|?*`

const maxStem = 100

// Sanitize turns a note title into a filesystem-safe filename stem:
// forbidden characters and whitespace runs become single hyphens, the
// result is trimmed, lower-cased and capped, and an empty result falls
// back to "untitled".
func Sanitize(title string) string {
	mapped := strings.Map(func(r rune) rune {
		if strings.ContainsRune(forbidden, r) || unicode.IsSpace(r) {
			return '-'
		}
		return r
	}, title)

	var b strings.Builder
	hyphen := false
	for _, r := range mapped {
		if r == '-' {
			if hyphen {
				continue
			}
			hyphen = true
		} else {
			hyphen = false
		}
		b.WriteRune(r)
	}

	stem := strings.ToLower(strings.Trim(b.String(), "-"))
	if runes := []rune(stem); len(runes) > maxStem {
		stem = strings.Trim(string(runes[:maxStem]), "-")
	}
	if stem == "" {
		return "untitled"
	}
	return stem
}
