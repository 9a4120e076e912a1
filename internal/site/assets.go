package site

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/seenimoa/folio/web"
)

const imagesPlaceholder = "# Images directory"

// assetCopier populates css/, js/ and images/ of the staging directory.
// Per-file failures are collected, never returned.
type assetCopier struct {
	publicDir string
	stageDir  string
	minifyCSS bool
	exclude   []string

	warnings []error
}

func (a *assetCopier) warn(path string, err error) {
	a.warnings = append(a.warnings, stageErr(StageCopyAssets, ErrAssetCopy, path, err))
}

func (a *assetCopier) run() []error {
	a.stylesheet()
	a.script()
	a.images()
	return a.warnings
}

func (a *assetCopier) stylesheet() {
	src := filepath.Join(a.publicDir, "css", "style.css")
	data, err := os.ReadFile(src)
	if err != nil {
		a.warn(src, err)
		return
	}
	css := ProcessCSS(string(data))
	if a.minifyCSS {
		css = MinifyCSS(css)
	}
	dst := filepath.Join(a.stageDir, "css", "style.css")
	if err := writeFile(dst, []byte(css)); err != nil {
		a.warn(dst, err)
	}
}

func (a *assetCopier) script() {
	dst := filepath.Join(a.stageDir, "js", "static-app.js")
	if err := writeFile(dst, web.StaticAppJS()); err != nil {
		a.warn(dst, err)
	}
}

func (a *assetCopier) images() {
	srcDir := filepath.Join(a.publicDir, "images")
	dstDir := filepath.Join(a.stageDir, "images")

	info, err := os.Stat(srcDir)
	if err != nil || !info.IsDir() {
		if err := writeFile(filepath.Join(dstDir, ".gitkeep"), []byte(imagesPlaceholder)); err != nil {
			a.warn(dstDir, err)
		}
		return
	}
	if err := os.MkdirAll(dstDir, 0755); err != nil {
		a.warn(dstDir, err)
		return
	}

	err = filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			a.warn(path, walkErr)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			a.warn(path, err)
			return nil
		}
		if a.excluded(filepath.ToSlash(rel)) {
			return nil
		}
		if !d.Type().IsRegular() {
			a.warn(path, errors.New("not a regular file"))
			return nil
		}
		if err := copyFile(path, filepath.Join(dstDir, rel)); err != nil {
			a.warn(path, err)
		}
		return nil
	})
	if err != nil {
		a.warn(srcDir, fmt.Errorf("walking images: %w", err))
	}
}

func (a *assetCopier) excluded(rel string) bool {
	for _, pattern := range a.exclude {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}
