package site

import "strings"

// RewriteRule is a literal substitution applied to every occurrence of From.
type RewriteRule struct {
	Name string
	From string
	To   string
}

// Rules is an ordered rule set.
type Rules []RewriteRule

// Apply runs the rules in order over html.
func (rs Rules) Apply(html string) string {
	for _, r := range rs {
		html = strings.ReplaceAll(html, r.From, r.To)
	}
	return html
}

// SubpathRules rewrite the document served from inside the build directory.
// Root-relative asset paths already resolve there, so the set is empty.
func SubpathRules() Rules {
	return nil
}

// RootRules point root-relative asset references of the root-hosted
// document into the build directory. prefix is e.g. "./build/".
// Only attribute openings are matched, so text mentioning /css/ survives.
func RootRules(prefix string) Rules {
	return Rules{
		{Name: "stylesheets", From: `href="/css/`, To: `href="` + prefix + `css/`},
		{Name: "scripts", From: `src="/js/`, To: `src="` + prefix + `js/`},
		{Name: "image-src", From: `src="/images/`, To: `src="` + prefix + `images/`},
		{Name: "image-href", From: `href="/images/`, To: `href="` + prefix + `images/`},
		{Name: "image-fallback", From: `this.src='/images/`, To: `this.src='` + prefix + `images/`},
	}
}
