// Package web embeds the client-side files shipped inside the folio binary:
// the chart-free script used by static builds and the starter site written
// by "folio init".
//
// Usage:
//
//	import "github.com/seenimoa/folio/web"
//	js := web.StaticAppJS()
//	fsys := web.ScaffoldFS() // io/fs.FS rooted at scaffold/
package web

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
)

//go:embed assets/static-app.js
var staticAppJS []byte

//go:embed all:scaffold
var scaffold embed.FS

// StaticAppJS returns the script written to js/static-app.js by every build.
func StaticAppJS() []byte {
	return staticAppJS
}

// ScaffoldFS returns a filesystem rooted at the embedded scaffold/ directory.
func ScaffoldFS() fs.FS {
	sub, err := fs.Sub(scaffold, "scaffold")
	if err != nil {
		log.Fatalf("web.ScaffoldFS: %v", err)
	}
	return sub
}

// WriteScaffold copies the starter site into dir. Existing files are left
// alone; the returned slices list the relative paths written and skipped.
func WriteScaffold(dir string) (written, skipped []string, err error) {
	fsys := ScaffoldFS()
	err = fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		target := filepath.Join(dir, filepath.FromSlash(path))
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}

		if _, statErr := os.Stat(target); statErr == nil {
			skipped = append(skipped, path)
			return nil
		} else if !errors.Is(statErr, fs.ErrNotExist) {
			return statErr
		}

		data, readErr := fs.ReadFile(fsys, path)
		if readErr != nil {
			return readErr
		}
		if writeErr := os.WriteFile(target, data, 0644); writeErr != nil {
			return writeErr
		}
		written = append(written, path)
		return nil
	})
	if err != nil {
		return written, skipped, fmt.Errorf("writing scaffold: %w", err)
	}
	return written, skipped, nil
}
