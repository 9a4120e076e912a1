package site

import (
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// localRefs returns the root-relative asset references of an HTML document:
// stylesheet links, script sources and image sources. Absolute URLs,
// protocol-relative URLs, fragments and data: URIs are skipped.
func localRefs(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var refs []string
	collect := func(sel, attr string) {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			v, ok := s.Attr(attr)
			if !ok {
				return
			}
			ref, ok := localPath(v)
			if ok && !seen[ref] {
				seen[ref] = true
				refs = append(refs, ref)
			}
		})
	}
	collect("link[href]", "href")
	collect("script[src]", "src")
	collect("img[src]", "src")

	sort.Strings(refs)
	return refs, nil
}

func localPath(ref string) (string, bool) {
	if !strings.HasPrefix(ref, "/") || strings.HasPrefix(ref, "//") {
		return "", false
	}
	u, err := url.Parse(ref)
	if err != nil || u.Path == "" {
		return "", false
	}
	return u.Path, true
}

// missingRefs lists the references of html that do not resolve to a file
// under root.
func missingRefs(html, root string) ([]string, error) {
	refs, err := localRefs(html)
	if err != nil {
		return nil, err
	}
	var missing []string
	for _, ref := range refs {
		p := filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(ref, "/")))
		if info, err := os.Stat(p); err != nil || info.IsDir() {
			missing = append(missing, ref)
		}
	}
	return missing, nil
}
