package output

import (
	"fmt"
	"strings"

	"github.com/vsinha/fibercalc/pkg/application/dto"
)

// maxChartSpan caps how many counts get their own tick; wider ranges draw
// only the compatible row.
const maxChartSpan = 400

// StitchChart draws a solve result as a number line: one row of ticks per
// constraint and a highlighted row of compatible counts
type StitchChart struct {
	Width        int
	Height       int
	MarginLeft   int
	MarginTop    int
	MarginRight  int
	MarginBottom int
	RowHeight    int
	Start        int
	End          int
}

// ChartTick is one marked count on a row
type ChartTick struct {
	Count int
	X     int
	Color string
}

// NewStitchChart sizes a chart for the report's range
func NewStitchChart(report *dto.SolveReport) *StitchChart {
	rows := 1
	if report.MaxWidth-report.MinWidth <= maxChartSpan {
		rows += len(report.Rules)
	}

	rowHeight := 30
	return &StitchChart{
		Width:        1000,
		Height:       rows*rowHeight + 140,
		MarginLeft:   220,
		MarginTop:    60,
		MarginRight:  40,
		MarginBottom: 60,
		RowHeight:    rowHeight,
		Start:        max(1, report.MinWidth),
		End:          max(report.MinWidth, report.MaxWidth),
	}
}

// GenerateSVG creates an SVG representation of the chart
func (sc *StitchChart) GenerateSVG(report *dto.SolveReport) string {
	var svg strings.Builder

	// SVG header
	svg.WriteString(fmt.Sprintf(`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">`, sc.Width, sc.Height))
	svg.WriteString(`<defs>`)
	svg.WriteString(`<style>`)
	svg.WriteString(`.row-label { font-family: Arial, sans-serif; font-size: 12px; fill: #333; }`)
	svg.WriteString(`.axis-label { font-family: Arial, sans-serif; font-size: 10px; fill: #666; }`)
	svg.WriteString(`.title { font-family: Arial, sans-serif; font-size: 16px; font-weight: bold; fill: #333; }`)
	svg.WriteString(`.grid-line { stroke: #e0e0e0; stroke-width: 1; }`)
	svg.WriteString(`.count-text { font-family: Arial, sans-serif; font-size: 9px; fill: #1b5e20; }`)
	svg.WriteString(`</style>`)
	svg.WriteString(`</defs>`)

	// Background
	svg.WriteString(fmt.Sprintf(`<rect width="%d" height="%d" fill="white"/>`, sc.Width, sc.Height))

	// Title
	svg.WriteString(fmt.Sprintf(`<text x="%d" y="30" class="title" text-anchor="middle">Compatible stitch counts %d - %d</text>`,
		sc.Width/2, report.MinWidth, report.MaxWidth))

	row := 0
	if report.MaxWidth-report.MinWidth <= maxChartSpan {
		for i, rule := range report.Rules {
			ticks := sc.constraintTicks(report, i)
			sc.drawRow(&svg, row, rule.String(), ticks)
			row++
		}
	}

	compatible := make([]ChartTick, 0, len(report.Counts))
	for _, count := range report.Counts {
		compatible = append(compatible, ChartTick{Count: count, X: sc.xFor(count), Color: "#2e7d32"})
	}
	sc.drawRow(&svg, row, "compatible", compatible)
	sc.drawCountLabels(&svg, row, compatible)

	sc.drawAxis(&svg)

	if len(report.Counts) == 0 {
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="row-label" text-anchor="middle">%s</text>`,
			sc.Width/2, sc.Height-15, MsgNoCompatibleCount))
	}

	svg.WriteString(`</svg>`)
	return svg.String()
}

// constraintTicks marks every count in range whose pattern stitches
// satisfy rule i
func (sc *StitchChart) constraintTicks(report *dto.SolveReport, i int) []ChartTick {
	rule := report.Rules[i]

	var ticks []ChartTick
	for count := sc.Start; count <= sc.End; count++ {
		pattern := count - report.EdgeStitches
		if pattern >= 1 && rule.Satisfies(pattern) {
			ticks = append(ticks, ChartTick{Count: count, X: sc.xFor(count), Color: "#90a4ae"})
		}
	}
	return ticks
}

func (sc *StitchChart) xFor(count int) int {
	chartWidth := sc.Width - sc.MarginLeft - sc.MarginRight
	span := sc.End - sc.Start
	if span <= 0 {
		return sc.MarginLeft + chartWidth/2
	}
	return sc.MarginLeft + int(float64(count-sc.Start)/float64(span)*float64(chartWidth))
}

func (sc *StitchChart) rowY(row int) int {
	return sc.MarginTop + row*sc.RowHeight
}

func (sc *StitchChart) drawRow(svg *strings.Builder, row int, label string, ticks []ChartTick) {
	y := sc.rowY(row)

	svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="row-label" text-anchor="end">%s</text>`,
		sc.MarginLeft-10, y+sc.RowHeight/2+4, escapeXML(label)))
	svg.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" class="grid-line"/>`,
		sc.MarginLeft, y+sc.RowHeight/2, sc.Width-sc.MarginRight, y+sc.RowHeight/2))

	for _, tick := range ticks {
		svg.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="2"><title>%d</title></line>`,
			tick.X, y+5, tick.X, y+sc.RowHeight-5, tick.Color, tick.Count))
	}
}

func (sc *StitchChart) drawCountLabels(svg *strings.Builder, row int, ticks []ChartTick) {
	// Labels overlap beyond this many counts; the ticks still carry titles.
	if len(ticks) > 30 {
		return
	}
	y := sc.rowY(row) + sc.RowHeight + 10
	for _, tick := range ticks {
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="count-text" text-anchor="middle">%d</text>`,
			tick.X, y, tick.Count))
	}
}

// drawAxis draws the count axis with about ten labels
func (sc *StitchChart) drawAxis(svg *strings.Builder) {
	y := sc.Height - sc.MarginBottom
	svg.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" class="grid-line"/>`,
		sc.MarginLeft, y, sc.Width-sc.MarginRight, y))

	interval := max(1, (sc.End-sc.Start)/10)
	for count := sc.Start; count <= sc.End; count += interval {
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="axis-label" text-anchor="middle">%d</text>`,
			sc.xFor(count), y+15, count))
	}
}

func escapeXML(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;").Replace(s)
}
