// Package chart turns a day's time allocation into SVG markup: a donut chart
// of proportions and a bar chart of absolute hours. Everything here is pure:
// no I/O, no state between calls, identical input gives identical bytes.
package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/seenimoa/folio/pkg/models"
	"github.com/seenimoa/folio/pkg/utils"
)

// ════════════════════════════════════════════════════════════════════
// Errors
// ════════════════════════════════════════════════════════════════════

// InvalidInputError reports activities the engine cannot turn into
// geometry. Index is -1 when the problem concerns the list as a whole.
type InvalidInputError struct {
	Index  int
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("invalid chart input: activity %d: %s", e.Index, e.Reason)
	}
	return "invalid chart input: " + e.Reason
}

// validate checks every entry and returns the total and max hours.
func validate(acts []models.Activity) (total, maxHours float64, err error) {
	for i, a := range acts {
		switch {
		case strings.TrimSpace(a.Label) == "":
			return 0, 0, &InvalidInputError{Index: i, Reason: "empty label"}
		case math.IsNaN(a.Hours) || math.IsInf(a.Hours, 0):
			return 0, 0, &InvalidInputError{Index: i, Reason: fmt.Sprintf("hours is not a finite number (%v)", a.Hours)}
		case a.Hours < 0:
			return 0, 0, &InvalidInputError{Index: i, Reason: fmt.Sprintf("negative hours (%v)", a.Hours)}
		}
		total += a.Hours
		if a.Hours > maxHours {
			maxHours = a.Hours
		}
	}
	return total, maxHours, nil
}

// ════════════════════════════════════════════════════════════════════
// SVG Helpers
// ════════════════════════════════════════════════════════════════════

func svgHeader(width, height float64) string {
	w, h := utils.FormatCoord(width), utils.FormatCoord(height)
	return fmt.Sprintf(`<svg width="%s" height="%s" viewBox="0 0 %s %s" xmlns="http://www.w3.org/2000/svg">`,
		w, h, w, h)
}

// point returns the cartesian point at angle deg (degrees, clockwise from
// 3 o'clock in SVG's y-down space) on a circle of radius r around (cx, cy).
func point(cx, cy, r, deg float64) (x, y float64) {
	rad := deg * math.Pi / 180
	return cx + r*math.Cos(rad), cy + r*math.Sin(rad)
}

func xy(x, y float64) string {
	return utils.FormatCoord(x) + " " + utils.FormatCoord(y)
}

func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	return s
}
