// Package format escapes dynamic text before it is embedded in formatted messages.
package format

import "regexp"

// Legacy Markdown treats only these as markup.
var markdownSpecials = regexp.MustCompile("([_*`\\[])")

// Markdown escapes text for legacy Markdown messages so that topic names and
// catalog lines render literally.
func Markdown(text string) string {
	return markdownSpecials.ReplaceAllString(text, `\$1`)
}
