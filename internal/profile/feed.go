package profile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mmcdole/gofeed"

	"github.com/seenimoa/folio/pkg/models"
)

// DefaultPostLimit is used when writing.limit is not set.
const DefaultPostLimit = 5

// LoadPosts parses the RSS/Atom/JSON feed referenced by p.Writing and
// returns its first entries in feed order. A feed path is resolved relative
// to the directory of the profile file. No feed configured ⇒ nil, nil.
func LoadPosts(profilePath string, p *models.Profile) ([]models.Post, error) {
	if p.Writing == nil || p.Writing.Feed == "" {
		return nil, nil
	}

	path := p.Writing.Feed
	if !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(profilePath), path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening feed: %w", err)
	}
	defer f.Close()

	feed, err := gofeed.NewParser().Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing feed %s: %w", path, err)
	}

	limit := p.Writing.Limit
	if limit <= 0 {
		limit = DefaultPostLimit
	}

	posts := make([]models.Post, 0, limit)
	for _, item := range feed.Items {
		if len(posts) == limit {
			break
		}
		post := models.Post{Title: item.Title, Link: item.Link}
		switch {
		case item.PublishedParsed != nil:
			post.Published = item.PublishedParsed.UTC().Format("Jan 2, 2006")
		case item.UpdatedParsed != nil:
			post.Published = item.UpdatedParsed.UTC().Format("Jan 2, 2006")
		}
		posts = append(posts, post)
	}
	return posts, nil
}
