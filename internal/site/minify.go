package site

import (
	"regexp"
	"strings"
)

var (
	reSpaceRun     = regexp.MustCompile(`\s+`)
	reBetweenTags  = regexp.MustCompile(`>\s+<`)
	reBeforeClose  = regexp.MustCompile(`\s+>`)
	reAfterOpen    = regexp.MustCompile(`<\s+`)
	reGoogleImport = regexp.MustCompile(`(?i)@import\s+url\(['"].*googleapis.*['"].*\);?`)
	reCSSComment   = regexp.MustCompile(`(?s)/\*.*?\*/`)
	reCSSPunct     = regexp.MustCompile(`\s*([{};,>])\s*`)
)

// MinifyHTML collapses whitespace runs to one space, drops whitespace
// between tags and inside tag delimiters, and trims the result.
// Whitespace inside <pre> is not preserved.
func MinifyHTML(html string) string {
	html = reSpaceRun.ReplaceAllString(html, " ")
	html = reBetweenTags.ReplaceAllString(html, "><")
	html = reBeforeClose.ReplaceAllString(html, ">")
	html = reAfterOpen.ReplaceAllString(html, "<")
	return strings.TrimSpace(html)
}

// ProcessCSS removes Google Fonts imports; other imports (icon fonts) stay.
func ProcessCSS(css string) string {
	return reGoogleImport.ReplaceAllString(css, "")
}

// MinifyCSS strips comments and insignificant whitespace.
func MinifyCSS(css string) string {
	css = reCSSComment.ReplaceAllString(css, "")
	css = reSpaceRun.ReplaceAllString(css, " ")
	css = reCSSPunct.ReplaceAllString(css, "$1")
	css = strings.ReplaceAll(css, ";}", "}")
	return strings.TrimSpace(css)
}
