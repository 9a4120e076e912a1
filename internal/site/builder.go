// Package site implements the static build: it renders the profile page
// with pre-rendered SVG charts into a self-contained build directory plus a
// root-hosted copy whose asset paths point into it.
package site

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/seenimoa/folio/internal/chart"
	"github.com/seenimoa/folio/internal/config"
	"github.com/seenimoa/folio/internal/logging"
	"github.com/seenimoa/folio/internal/profile"
	"github.com/seenimoa/folio/pkg/models"
	"github.com/seenimoa/folio/pkg/utils"
)

// Artifact names inside the build directory.
const (
	IndexFile    = "index.html"
	DonutFile    = "time-chart.svg"
	BarChartFile = "time-bar-chart.svg"
)

// Result describes a completed build.
type Result struct {
	Mode        Mode
	BuildDir    string
	RootHTML    string
	Files       []string // relative to BuildDir, slash separated, sorted
	Warnings    []error  // non-fatal *StageError values of kind ErrAssetCopy
	MissingRefs []string // root-relative references without a file in BuildDir
	Elapsed     time.Duration
}

// Builder runs the build pipeline for one configuration.
type Builder struct {
	cfg  *config.Config
	mode Mode
	log  *zap.Logger
}

// New returns a Builder. A nil logger discards output.
func New(cfg *config.Config, mode Mode, log *zap.Logger) *Builder {
	if mode == "" {
		mode = ModeDefault
	}
	return &Builder{cfg: cfg, mode: mode, log: logging.OrNop(log)}
}

// minifyCSS reports whether the stylesheet is minified in this build.
func (b *Builder) minifyCSS() bool {
	if b.cfg.Build.MinifyCSS != nil {
		return *b.cfg.Build.MinifyCSS
	}
	return b.mode == ModeProd
}

// rootPrefix is the path from the root document's directory into the
// build directory, e.g. "./build/".
func (b *Builder) rootPrefix() string {
	rel := filepath.Base(b.cfg.Build.Dir)
	rootDir, err1 := filepath.Abs(filepath.Dir(b.cfg.Build.RootHTML))
	buildDir, err2 := filepath.Abs(b.cfg.Build.Dir)
	if err1 == nil && err2 == nil {
		if r, err := filepath.Rel(rootDir, buildDir); err == nil {
			rel = r
		}
	}
	return "./" + filepath.ToSlash(rel) + "/"
}

// build carries state between stages.
type build struct {
	stageDir string
	rootTmp  string
	profile  *models.Profile
	posts    []models.Post
	rendered string
	subpath  string
	root     string
	warnings []error
	missing  []string
	promoted bool
}

// Build runs every stage in order. The first failing stage aborts the
// build; until PROMOTE the previous build directory and root document are
// left untouched.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	start := time.Now()
	b.log.Info("build started",
		zap.String("mode", string(b.mode)),
		zap.String("build_dir", b.cfg.Build.Dir),
	)

	var st build
	defer func() {
		if !st.promoted {
			if st.stageDir != "" {
				os.RemoveAll(st.stageDir)
			}
			if st.rootTmp != "" {
				os.Remove(st.rootTmp)
			}
		}
	}()

	steps := []struct {
		stage Stage
		fn    func(*build) error
	}{
		{StageInit, b.createStaging},
		{StageLoadProfile, b.loadProfile},
		{StageGenerateCharts, b.generateCharts},
		{StageRenderTemplate, b.renderTemplate},
		{StageRewriteSubpath, b.rewriteSubpath},
		{StageWriteSubpath, b.writeSubpath},
		{StageRewriteRoot, b.rewriteRoot},
		{StageWriteRoot, b.writeRoot},
		{StageCopyAssets, b.copyAssets},
		{StageVerify, b.verify},
		{StagePromote, b.promote},
	}
	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%s: %w", s.stage, err)
		}
		t0 := time.Now()
		b.log.Debug("stage started", zap.String("stage", string(s.stage)))
		if err := s.fn(&st); err != nil {
			b.log.Error("stage failed", zap.String("stage", string(s.stage)), zap.Error(err))
			return nil, err
		}
		b.log.Debug("stage finished",
			zap.String("stage", string(s.stage)),
			zap.Duration("took", time.Since(t0)),
		)
	}

	files, err := listFiles(b.cfg.Build.Dir)
	if err != nil {
		return nil, stageErr(StageDone, ErrWrite, b.cfg.Build.Dir, err)
	}
	res := &Result{
		Mode:        b.mode,
		BuildDir:    b.cfg.Build.Dir,
		RootHTML:    b.cfg.Build.RootHTML,
		Files:       files,
		Warnings:    st.warnings,
		MissingRefs: st.missing,
		Elapsed:     time.Since(start),
	}
	b.log.Info("build completed",
		zap.String("stage", string(StageDone)),
		zap.Int("files", len(files)),
		zap.Int("warnings", len(st.warnings)),
		zap.String("elapsed", utils.FormatDuration(res.Elapsed)),
	)
	return res, nil
}

// ════════════════════════════════════════════════════════════════════
// Stages
// ════════════════════════════════════════════════════════════════════

func (b *Builder) createStaging(st *build) error {
	parent := filepath.Dir(b.cfg.Build.Dir)
	if err := os.MkdirAll(parent, 0755); err != nil {
		return stageErr(StageInit, ErrWrite, parent, err)
	}
	dir, err := os.MkdirTemp(parent, ".folio-stage-*")
	if err != nil {
		return stageErr(StageInit, ErrWrite, parent, err)
	}
	st.stageDir = dir
	if err := os.Chmod(dir, 0755); err != nil {
		return stageErr(StageInit, ErrWrite, dir, err)
	}
	return nil
}

func (b *Builder) loadProfile(st *build) error {
	path := b.cfg.Site.Profile
	p, err := profile.Load(path)
	if err != nil {
		return stageErr(StageLoadProfile, ErrDataLoad, path, err)
	}
	posts, err := profile.LoadPosts(path, p)
	if err != nil {
		return stageErr(StageLoadProfile, ErrDataLoad, p.Writing.Feed, err)
	}
	st.profile, st.posts = p, posts
	b.log.Debug("profile loaded",
		zap.String("name", p.PersonalInfo.Name),
		zap.Int("activities", len(p.TimeActivities)),
		zap.Int("posts", len(posts)),
	)
	return nil
}

func (b *Builder) generateCharts(st *build) error {
	donutCfg := chart.DefaultDonutConfig()
	if len(b.cfg.Charts.DonutCaption) > 0 {
		donutCfg.Caption = b.cfg.Charts.DonutCaption
	}

	donut, err := chart.DonutChart(st.profile.TimeActivities, donutCfg)
	if err != nil {
		return stageErr(StageGenerateCharts, ErrChartGeneration, DonutFile, err)
	}
	bar, err := chart.BarChart(st.profile.TimeActivities, chart.DefaultBarConfig())
	if err != nil {
		return stageErr(StageGenerateCharts, ErrChartGeneration, BarChartFile, err)
	}

	for name, svg := range map[string]string{DonutFile: donut, BarChartFile: bar} {
		path := filepath.Join(st.stageDir, name)
		if err := writeFile(path, []byte(svg)); err != nil {
			return stageErr(StageGenerateCharts, ErrWrite, path, err)
		}
	}
	return nil
}

func (b *Builder) renderTemplate(st *build) error {
	readSVG := func(name string) (template.HTML, error) {
		data, err := os.ReadFile(filepath.Join(st.stageDir, name))
		if err != nil {
			return "", stageErr(StageRenderTemplate, ErrTemplate, name, err)
		}
		return template.HTML(data), nil
	}
	donut, err := readSVG(DonutFile)
	if err != nil {
		return err
	}
	bar, err := readSVG(BarChartFile)
	if err != nil {
		return err
	}

	views := b.cfg.Site.Views
	text, derived, err := LoadStaticTemplate(views)
	if err != nil {
		return stageErr(StageRenderTemplate, ErrTemplate, views, err)
	}
	if derived {
		b.log.Debug("static template derived in memory", zap.String("from", filepath.Join(views, DynamicTemplate)))
	}

	data := NewTemplateData(st.profile, st.posts)
	data.ChartSVG, data.BarChartSVG = donut, bar
	html, err := RenderTemplate(StaticTemplate, text, data)
	if err != nil {
		return stageErr(StageRenderTemplate, ErrTemplate, views, err)
	}
	st.rendered = html
	return nil
}

func (b *Builder) rewriteSubpath(st *build) error {
	st.subpath = MinifyHTML(SubpathRules().Apply(st.rendered))
	return nil
}

func (b *Builder) writeSubpath(st *build) error {
	path := filepath.Join(st.stageDir, IndexFile)
	if err := writeFile(path, []byte(st.subpath)); err != nil {
		return stageErr(StageWriteSubpath, ErrWrite, path, err)
	}
	return nil
}

func (b *Builder) rewriteRoot(st *build) error {
	st.root = MinifyHTML(RootRules(b.rootPrefix()).Apply(st.rendered))
	return nil
}

func (b *Builder) writeRoot(st *build) error {
	dir := filepath.Dir(b.cfg.Build.RootHTML)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return stageErr(StageWriteRoot, ErrWrite, dir, err)
	}
	f, err := os.CreateTemp(dir, ".folio-root-*")
	if err != nil {
		return stageErr(StageWriteRoot, ErrWrite, dir, err)
	}
	st.rootTmp = f.Name()
	_, err = f.WriteString(st.root)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Chmod(f.Name(), 0644)
	}
	if err != nil {
		return stageErr(StageWriteRoot, ErrWrite, f.Name(), err)
	}
	return nil
}

func (b *Builder) copyAssets(st *build) error {
	ac := &assetCopier{
		publicDir: b.cfg.Site.Public,
		stageDir:  st.stageDir,
		minifyCSS: b.minifyCSS(),
		exclude:   b.cfg.Build.Exclude,
	}
	st.warnings = ac.run()
	for _, w := range st.warnings {
		b.log.Warn("asset skipped", zap.Error(w))
	}
	return nil
}

func (b *Builder) verify(st *build) error {
	missing, err := missingRefs(st.subpath, st.stageDir)
	if err != nil {
		return stageErr(StageVerify, ErrTemplate, IndexFile, err)
	}
	for _, ref := range missing {
		b.log.Warn("unresolved reference", zap.String("ref", ref))
	}
	st.missing = missing
	return nil
}

func (b *Builder) promote(st *build) error {
	buildDir := b.cfg.Build.Dir

	var old string
	if _, err := os.Stat(buildDir); err == nil {
		tmp, err := os.MkdirTemp(filepath.Dir(buildDir), ".folio-old-*")
		if err != nil {
			return stageErr(StagePromote, ErrWrite, buildDir, err)
		}
		old = tmp
		if err := os.Remove(old); err != nil {
			return stageErr(StagePromote, ErrWrite, old, err)
		}
		if err := os.Rename(buildDir, old); err != nil {
			return stageErr(StagePromote, ErrWrite, buildDir, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return stageErr(StagePromote, ErrWrite, buildDir, err)
	}

	if err := os.Rename(st.stageDir, buildDir); err != nil {
		if old != "" {
			os.Rename(old, buildDir)
		}
		return stageErr(StagePromote, ErrWrite, buildDir, err)
	}
	st.promoted = true

	if old != "" {
		if err := os.RemoveAll(old); err != nil {
			b.log.Warn("could not remove previous build", zap.String("path", old), zap.Error(err))
		}
	}

	if err := os.Rename(st.rootTmp, b.cfg.Build.RootHTML); err != nil {
		os.Remove(st.rootTmp)
		return stageErr(StagePromote, ErrWrite, b.cfg.Build.RootHTML, err)
	}

	if b.cfg.Build.SyncPublic {
		dst := filepath.Join(b.cfg.Site.Public, IndexFile)
		if err := writeFileAtomic(dst, []byte(st.subpath)); err != nil {
			return stageErr(StagePromote, ErrWrite, dst, err)
		}
	}
	return nil
}

func listFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	sort.Strings(files)
	return files, err
}
