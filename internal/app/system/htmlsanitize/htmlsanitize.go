// Package htmlsanitize strips markup from user-supplied text before it
// is persisted. Task titles, descriptions, and roster names are plain
// text; anything that looks like HTML in them is treated as hostile.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var strict = bluemonday.StrictPolicy()

// Strip removes all HTML elements and attributes from s, leaving only
// text content. Safe characters such as & < > survive as entities when
// the input contained markup-significant characters.
func Strip(s string) string {
	return strict.Sanitize(s)
}
