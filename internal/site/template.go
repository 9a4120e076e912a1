package site

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/seenimoa/folio/pkg/models"
	"github.com/seenimoa/folio/pkg/utils"
)

const (
	// DynamicTemplate is the page rendered by the server, with a client-side chart.
	DynamicTemplate = "index.html"
	// StaticTemplate is the chart-free variant used by builds.
	StaticTemplate = "static.html"
)

// DerivationRules turn the dynamic page into the static one: the chart
// library goes away, the canvas becomes the pre-rendered SVG and the page
// loads the static script.
func DerivationRules() Rules {
	return Rules{
		{Name: "drop-chart-library", From: `<script src="https://cdn.jsdelivr.net/npm/chart.js"></script>`, To: ""},
		{Name: "inline-chart", From: `<canvas id="timeChart"></canvas>`, To: `{{.ChartSVG}}`},
		{Name: "static-script-tag", From: `<script src="/js/app.js"></script>`, To: `<script src="/js/static-app.js"></script>`},
		{Name: "static-script-src", From: `src="/js/app.js"`, To: `src="/js/static-app.js"`},
	}
}

// DeriveStaticTemplate applies DerivationRules to the dynamic template source.
func DeriveStaticTemplate(dynamic string) string {
	return DerivationRules().Apply(dynamic)
}

// TemplateData is what both page templates are executed with.
type TemplateData struct {
	Title       string
	Profile     *models.Profile
	ChartSVG    template.HTML
	BarChartSVG template.HTML
	Posts       []models.Post
	LiveReload  bool
}

// NewTemplateData fills the fields shared by every render.
func NewTemplateData(p *models.Profile, posts []models.Post) TemplateData {
	return TemplateData{
		Title:   p.PageTitle(),
		Profile: p,
		Posts:   posts,
	}
}

var funcs = template.FuncMap{
	"hours":    utils.FormatHours,
	"percent":  utils.FormatPercent,
	"cssColor": CSSColor,
}

// FallbackColor replaces activity colors that are not a plain CSS color.
const FallbackColor = "transparent"

var (
	reHexColor   = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	reNamedColor = regexp.MustCompile(`^[a-zA-Z]+$`)
	reFuncColor  = regexp.MustCompile(`^(?i:rgba?|hsla?)\(\s*[-+0-9.%a-z]+(?:\s*[,/ ]\s*[-+0-9.%a-z]+){2,3}\s*\)$`)
	reVarColor   = regexp.MustCompile(`^var\(\s*--[a-zA-Z0-9_-]+\s*\)$`)
)

// CSSColor marks c safe for a style attribute when it is a hex, named,
// rgb[a](), hsl[a]() or var() color. Anything else becomes FallbackColor.
func CSSColor(c string) template.CSS {
	c = strings.TrimSpace(c)
	for _, re := range []*regexp.Regexp{reHexColor, reNamedColor, reFuncColor, reVarColor} {
		if re.MatchString(c) {
			return template.CSS(c)
		}
	}
	return FallbackColor
}

// RenderTemplate parses text as an html/template and executes it with data.
func RenderTemplate(name, text string, data TemplateData) (string, error) {
	tmpl, err := template.New(name).Funcs(funcs).Parse(text)
	if err != nil {
		return "", fmt.Errorf("parsing %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing %s: %w", name, err)
	}
	return buf.String(), nil
}

// LoadStaticTemplate returns the static template source from viewsDir.
// A missing static.html is derived in memory from index.html; nothing is
// written.
func LoadStaticTemplate(viewsDir string) (text string, derived bool, err error) {
	data, err := os.ReadFile(filepath.Join(viewsDir, StaticTemplate))
	if err == nil {
		return string(data), false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", false, err
	}

	dynamic, err := os.ReadFile(filepath.Join(viewsDir, DynamicTemplate))
	if err != nil {
		return "", false, err
	}
	return DeriveStaticTemplate(string(dynamic)), true, nil
}

// PrepareTemplate writes the derived static template to viewsDir.
// An existing static.html is kept unless force is set.
func PrepareTemplate(viewsDir string, force bool) (path string, written bool, err error) {
	path = filepath.Join(viewsDir, StaticTemplate)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return path, false, nil
		}
	}

	dynamic, err := os.ReadFile(filepath.Join(viewsDir, DynamicTemplate))
	if err != nil {
		return path, false, fmt.Errorf("%w: %v", ErrTemplate, err)
	}
	if err := writeFileAtomic(path, []byte(DeriveStaticTemplate(string(dynamic)))); err != nil {
		return path, false, fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return path, true, nil
}
