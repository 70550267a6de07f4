package sanitize

import (
	"regexp"
	"strings"
)

var (
	illegalChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	spaces       = regexp.MustCompile(`\s+`)
)

// Filename removes characters that are not allowed in file names and
// collapses runs of whitespace
func Filename(title string) string {
	title = illegalChars.ReplaceAllString(title, "")
	title = spaces.ReplaceAllString(title, " ")

	// trim spaces & dots
	return strings.Trim(title, " .")
}
