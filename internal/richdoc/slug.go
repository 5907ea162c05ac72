package richdoc

import (
	"regexp"
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonSlugRun = regexp.MustCompile(`[^a-z0-9]+`)

// combiningMarks khối U+0300–U+036F
var combiningMarks = runes.Predicate(func(r rune) bool {
	return r >= 0x0300 && r <= 0x036f
})

// Slugify tách dấu (NFKD), bỏ dấu kết hợp, chữ thường, gộp các ký tự ngoài [a-z0-9] thành "-".
// "đ" không tách được nên thành dấu gạch.
func Slugify(text string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(combiningMarks))
	s, _, err := transform.String(t, text)
	if err != nil {
		s = text
	}
	s = strings.TrimSpace(strings.ToLower(s))
	s = nonSlugRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
