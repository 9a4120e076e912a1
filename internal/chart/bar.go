package chart

import (
	"fmt"
	"strings"

	"github.com/seenimoa/folio/pkg/models"
	"github.com/seenimoa/folio/pkg/utils"
)

// ════════════════════════════════════════════════════════════════════
// Bar Chart (Vertical)
// ════════════════════════════════════════════════════════════════════

// BarConfig holds rendering parameters for the bar chart.
type BarConfig struct {
	Width     float64 // default: 600
	Height    float64 // default: 300
	Margin    float64 // plot inset on every side (default: 50)
	Gap       float64 // space between neighbouring bars (default: 10)
	GridLines int     // horizontal gridlines incl. top and baseline (default: 6)
}

// DefaultBarConfig returns the stock bar chart layout.
func DefaultBarConfig() BarConfig {
	return BarConfig{
		Width:     600,
		Height:    300,
		Margin:    50,
		Gap:       10,
		GridLines: 6,
	}
}

// plotArea returns the drawing area inside the margins.
func (c BarConfig) plotArea() (x, y, w, h float64) {
	return c.Margin, c.Margin, c.Width - 2*c.Margin, c.Height - 2*c.Margin
}

// Bar is the computed rectangle for one activity.
type Bar struct {
	X, Y, Width, Height float64
	Activity            models.Activity
}

// Bars lays activities out left to right, heights proportional to
// hours / max(hours). An empty input yields no bars and no error.
func Bars(acts []models.Activity, cfg BarConfig) ([]Bar, error) {
	if cfg.Width == 0 {
		cfg = DefaultBarConfig()
	}
	_, maxHours, err := validate(acts)
	if err != nil {
		return nil, err
	}
	if len(acts) == 0 {
		return nil, nil
	}

	px, py, pw, ph := cfg.plotArea()
	slot := pw / float64(len(acts))
	gap := cfg.Gap
	if gap >= slot {
		gap = slot / 2
	}

	bars := make([]Bar, len(acts))
	for i, a := range acts {
		var h float64
		if maxHours > 0 {
			h = a.Hours / maxHours * ph
		}
		bars[i] = Bar{
			X:        px + float64(i)*slot + gap/2,
			Y:        py + ph - h,
			Width:    slot - gap,
			Height:   h,
			Activity: a,
		}
	}
	return bars, nil
}

// BarChart renders activities as vertical bars over a labelled hour grid.
// A zero-value cfg selects DefaultBarConfig.
func BarChart(acts []models.Activity, cfg BarConfig) (string, error) {
	if cfg.Width == 0 {
		cfg = DefaultBarConfig()
	}
	bars, err := Bars(acts, cfg)
	if err != nil {
		return "", err
	}
	_, maxHours, _ := validate(acts)

	px, py, pw, ph := cfg.plotArea()
	baseline := py + ph

	var sb strings.Builder
	sb.WriteString(svgHeader(cfg.Width, cfg.Height))

	// Grid lines, labelled from max down to 0
	if len(bars) > 0 && cfg.GridLines > 1 {
		steps := float64(cfg.GridLines - 1)
		for i := 0; i < cfg.GridLines; i++ {
			y := py + float64(i)*ph/steps
			value := utils.RoundHalfUp(maxHours - float64(i)*maxHours/steps)
			sb.WriteString(fmt.Sprintf(`<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="var(--border-color)" stroke-width="1" opacity="0.3"/>`,
				utils.FormatCoord(px), utils.FormatCoord(y), utils.FormatCoord(px+pw), utils.FormatCoord(y)))
			sb.WriteString(fmt.Sprintf(`<text x="%s" y="%s" text-anchor="end" font-size="10" fill="var(--text-secondary)">%s</text>`,
				utils.FormatCoord(px-10), utils.FormatCoord(y+4), utils.FormatHours(value)))
		}
	}

	labelY := utils.FormatCoord(baseline + 20)
	for _, b := range bars {
		a := b.Activity
		cx := utils.FormatCoord(b.X + b.Width/2)
		sb.WriteString(fmt.Sprintf(`<rect x="%s" y="%s" width="%s" height="%s" fill="%s" opacity="0.8" rx="4">`,
			utils.FormatCoord(b.X), utils.FormatCoord(b.Y), utils.FormatCoord(b.Width), utils.FormatCoord(b.Height),
			escapeXML(a.Color)))
		sb.WriteString(fmt.Sprintf(`<title>%s: %s</title></rect>`, escapeXML(a.Label), utils.FormatHours(a.Hours)))

		// Axis label, rotated under the bar
		sb.WriteString(fmt.Sprintf(`<text x="%s" y="%s" text-anchor="middle" font-size="10" fill="var(--text-secondary)" transform="rotate(-45, %s, %s)">%s</text>`,
			cx, labelY, cx, labelY, escapeXML(utils.FirstWords(a.Label, 2))))

		// Value label above the bar
		sb.WriteString(fmt.Sprintf(`<text x="%s" y="%s" text-anchor="middle" font-size="12" font-weight="bold" fill="var(--text-primary)">%s</text>`,
			cx, utils.FormatCoord(b.Y-5), utils.FormatHours(a.Hours)))
	}

	// Axes
	sb.WriteString(fmt.Sprintf(`<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="var(--text-secondary)" stroke-width="2"/>`,
		utils.FormatCoord(px), utils.FormatCoord(py), utils.FormatCoord(px), utils.FormatCoord(baseline)))
	sb.WriteString(fmt.Sprintf(`<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="var(--text-secondary)" stroke-width="2"/>`,
		utils.FormatCoord(px), utils.FormatCoord(baseline), utils.FormatCoord(px+pw), utils.FormatCoord(baseline)))

	if len(bars) > 0 {
		sb.WriteString(`<style>rect:hover{opacity:1;transform:scaleY(1.05);transform-origin:bottom;transition:all 0.3s ease}</style>`)
	}
	sb.WriteString("</svg>")
	return sb.String(), nil
}
