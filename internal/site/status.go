package site

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/seenimoa/folio/internal/config"
)

// Status summarises the inputs and the last build on disk.
type Status struct {
	ProfileFound   bool      `json:"profile_found"`
	StaticTemplate bool      `json:"static_template"` // views/static.html exists; otherwise it is derived per build
	BuildExists    bool      `json:"build_exists"`
	BuildFiles     []string  `json:"build_files,omitempty"`
	BuiltAt        time.Time `json:"built_at,omitempty"` // modification time of the build's index.html
	RootHTMLExists bool      `json:"root_html_exists"`
}

// Inspect reports the state of the configured site without modifying it.
func Inspect(cfg *config.Config) (*Status, error) {
	s := &Status{
		ProfileFound:   exists(cfg.Site.Profile),
		StaticTemplate: exists(filepath.Join(cfg.Site.Views, StaticTemplate)),
		RootHTMLExists: exists(cfg.Build.RootHTML),
	}

	info, err := os.Stat(filepath.Join(cfg.Build.Dir, IndexFile))
	switch {
	case err == nil:
		s.BuildExists = true
		s.BuiltAt = info.ModTime()
	case !errors.Is(err, fs.ErrNotExist):
		return nil, err
	}
	if s.BuildExists {
		files, err := listFiles(cfg.Build.Dir)
		if err != nil {
			return nil, err
		}
		s.BuildFiles = files
	}
	return s, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
