package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/seenimoa/folio/pkg/models"
	"github.com/seenimoa/folio/pkg/utils"
)

// ════════════════════════════════════════════════════════════════════
// Donut Chart
// ════════════════════════════════════════════════════════════════════

const (
	// StartAngle is where the first segment begins: 12 o'clock.
	StartAngle = -90.0
	fullCircle = 360.0
)

// DonutConfig holds rendering parameters for the donut chart.
type DonutConfig struct {
	Size        float64  // square canvas edge (default: 400)
	OuterRadius float64  // default: 150
	InnerRadius float64  // default: 80
	Caption     []string // centred text lines (default: "Daily", "Activities")
}

// DefaultDonutConfig returns the stock donut geometry.
func DefaultDonutConfig() DonutConfig {
	return DonutConfig{
		Size:        400,
		OuterRadius: 150,
		InnerRadius: 80,
		Caption:     []string{"Daily", "Activities"},
	}
}

func (c DonutConfig) center() float64 { return c.Size / 2 }

// Segment is the angular slice of the ring occupied by one activity.
type Segment struct {
	StartAngle float64 // degrees
	SweepAngle float64 // degrees
	Percentage float64 // 100 * hours / total
	Activity   models.Activity
}

// EndAngle returns StartAngle + SweepAngle.
func (s Segment) EndAngle() float64 { return s.StartAngle + s.SweepAngle }

// Segments assigns each activity a contiguous sweep proportional to its
// share of the total, starting at 12 o'clock and running clockwise in input
// order. The sweeps tile the full circle.
func Segments(acts []models.Activity) ([]Segment, error) {
	if len(acts) == 0 {
		return nil, &InvalidInputError{Index: -1, Reason: "no activities"}
	}
	total, _, err := validate(acts)
	if err != nil {
		return nil, err
	}
	if total <= 0 {
		return nil, &InvalidInputError{Index: -1, Reason: "total hours is zero"}
	}
	if math.IsInf(total, 0) {
		return nil, &InvalidInputError{Index: -1, Reason: "total hours overflows"}
	}

	segs := make([]Segment, len(acts))
	angle := StartAngle
	for i, a := range acts {
		share := a.Hours / total
		segs[i] = Segment{
			StartAngle: angle,
			SweepAngle: share * fullCircle,
			Percentage: share * 100,
			Activity:   a,
		}
		angle += segs[i].SweepAngle
	}
	return segs, nil
}

// DonutChart renders activities as a ring chart with a hollow centre.
// A zero-value cfg selects DefaultDonutConfig.
func DonutChart(acts []models.Activity, cfg DonutConfig) (string, error) {
	segs, err := Segments(acts)
	if err != nil {
		return "", err
	}
	if cfg.Size == 0 {
		cfg = DefaultDonutConfig()
	}
	c := cfg.center()
	cs := utils.FormatCoord(c)

	var sb strings.Builder
	sb.WriteString(svgHeader(cfg.Size, cfg.Size))
	sb.WriteString(`<defs><filter id="shadow" x="-20%" y="-20%" width="140%" height="140%">`)
	sb.WriteString(`<feDropShadow dx="2" dy="2" stdDeviation="3" flood-color="#00000020"/></filter></defs>`)

	// Background ring
	sb.WriteString(fmt.Sprintf(`<circle cx="%s" cy="%s" r="%s" fill="none" stroke="#f0f0f0" stroke-width="1"/>`,
		cs, cs, utils.FormatCoord(cfg.OuterRadius+5)))

	for _, s := range segs {
		a := s.Activity
		sb.WriteString(fmt.Sprintf(`<path d="%s" fill="%s" stroke="white" stroke-width="2" opacity="0.9">`,
			ringSectorPath(cfg, s.StartAngle, s.SweepAngle), escapeXML(a.Color)))
		sb.WriteString(fmt.Sprintf(`<title>%s: %s (%s%%)</title></path>`,
			escapeXML(a.Label), utils.FormatHours(a.Hours), utils.FormatPercent(s.Percentage)))
	}

	// Centre disk punches the hole
	sb.WriteString(fmt.Sprintf(`<circle cx="%s" cy="%s" r="%s" fill="var(--bg-primary)" stroke="var(--border-color)" stroke-width="2"/>`,
		cs, cs, utils.FormatCoord(cfg.InnerRadius)))

	n := len(cfg.Caption)
	for i, line := range cfg.Caption {
		y := c - 10*float64(n-1) + 20*float64(i)
		sb.WriteString(fmt.Sprintf(`<text x="%s" y="%s" text-anchor="middle" font-family="'Segoe UI', sans-serif" font-size="16" font-weight="bold" fill="var(--text-primary)">%s</text>`,
			cs, utils.FormatCoord(y), escapeXML(line)))
	}

	sb.WriteString(fmt.Sprintf(`<style>path:hover{opacity:1;filter:url(#shadow);transform-origin:%spx %spx;transform:scale(1.02);transition:all 0.3s ease}text{pointer-events:none}</style>`,
		cs, cs))
	sb.WriteString("</svg>")
	return sb.String(), nil
}

// ringSectorPath builds the closed outline of one ring segment: outer arc
// start→end, line inwards, inner arc end→start.
func ringSectorPath(cfg DonutConfig, start, sweep float64) string {
	c := cfg.center()
	R, r := utils.FormatCoord(cfg.OuterRadius), utils.FormatCoord(cfg.InnerRadius)

	end := start + sweep
	x1, y1 := point(c, c, cfg.OuterRadius, start)
	x2, y2 := point(c, c, cfg.OuterRadius, end)

	// Once rounded, a near-full sweep can start and end on the same point,
	// and an arc whose endpoints coincide draws nothing; go round in two halves.
	if sweep > fullCircle/2 && xy(x1, y1) == xy(x2, y2) {
		mid := start + fullCircle/2
		omx, omy := point(c, c, cfg.OuterRadius, mid)
		i1x, i1y := point(c, c, cfg.InnerRadius, start)
		imx, imy := point(c, c, cfg.InnerRadius, mid)
		return strings.Join([]string{
			"M " + xy(x1, y1),
			fmt.Sprintf("A %s %s 0 0 1 %s", R, R, xy(omx, omy)),
			fmt.Sprintf("A %s %s 0 0 1 %s", R, R, xy(x1, y1)),
			"L " + xy(i1x, i1y),
			fmt.Sprintf("A %s %s 0 0 0 %s", r, r, xy(imx, imy)),
			fmt.Sprintf("A %s %s 0 0 0 %s", r, r, xy(i1x, i1y)),
			"Z",
		}, " ")
	}

	largeArc := 0
	if sweep > 180 {
		largeArc = 1
	}
	x3, y3 := point(c, c, cfg.InnerRadius, end)
	x4, y4 := point(c, c, cfg.InnerRadius, start)

	return strings.Join([]string{
		"M " + xy(x1, y1),
		fmt.Sprintf("A %s %s 0 %d 1 %s", R, R, largeArc, xy(x2, y2)),
		"L " + xy(x3, y3),
		fmt.Sprintf("A %s %s 0 %d 0 %s", r, r, largeArc, xy(x4, y4)),
		"Z",
	}, " ")
}
