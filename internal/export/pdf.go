// Package export writes blast designs to PDF reports, QR hole tags, XLSX
// hole schedules and DXF plan drawings.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/blastplan/internal/engine"
	"github.com/piwi3910/blastplan/internal/model"
	"github.com/piwi3910/blastplan/internal/recommend"
)

// rgb is a fill or stroke color.
type rgb struct {
	R, G, B int
}

// explosiveColors is the column fill used for each explosive type.
var explosiveColors = map[model.ExplosiveType]rgb{
	model.ANFO:      {R: 244, G: 67, B: 54},
	model.HeavyANFO: {R: 255, G: 152, B: 0},
	model.Slurry:    {R: 33, G: 150, B: 243},
	model.Emulsion:  {R: 156, G: 39, B: 176},
}

var (
	benchFill    = rgb{R: 205, G: 190, B: 165}
	stemmingFill = rgb{R: 121, G: 85, B: 72}
	subdrillFill = rgb{R: 158, G: 158, B: 158}
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ReportOptions control the PDF report.
type ReportOptions struct {
	Title      string
	ShowLabels bool // hole numbers on the plan view
}

// DefaultReportOptions returns the options used when none are configured.
func DefaultReportOptions() ReportOptions {
	return ReportOptions{Title: "Blast Design Report", ShowLabels: true}
}

// ExportPDF writes a design report: a plan view of the hole layout, a
// section through a single hole, and a summary of every design parameter.
func ExportPDF(path string, r engine.Result, opts ReportOptions) error {
	if r.Layout.Empty() {
		return fmt.Errorf("no holes to export")
	}
	if opts.Title == "" {
		opts.Title = DefaultReportOptions().Title
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.SetTitle(opts.Title, true)

	pdf.AddPage()
	renderPlanPage(pdf, r, opts)

	pdf.AddPage()
	renderSectionPage(pdf, r)

	pdf.AddPage()
	renderSummaryPage(pdf, r, opts)

	return pdf.OutputFileAndClose(path)
}

// renderPlanPage draws the bench outline and every hole collar.
func renderPlanPage(pdf *fpdf.Fpdf, r engine.Result, opts ReportOptions) {
	g := r.Geometry

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("%s: %s pattern (%.1f x %.1f m)", designName(r), r.Pattern.DisplayName(), g.Length, g.Width)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Holes: %d | Rows: %d | Burden: %.2f m | Spacing: %.2f m | Diameter: %.0f mm",
		r.HoleCount, r.Layout.Rows, r.Hole.Burden, r.Hole.Spacing, r.Hole.DiameterMM)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight

	scale := math.Min(drawWidth/g.Length, drawHeight/g.Width)
	canvasW := g.Length * scale
	canvasH := g.Width * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	pdf.SetFillColor(benchFill.R, benchFill.G, benchFill.B)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	// Free face along y = 0.
	pdf.SetDrawColor(200, 0, 0)
	pdf.SetLineWidth(0.8)
	pdf.Line(offsetX, offsetY, offsetX+canvasW, offsetY)

	// Draw the collar at least 1 mm wide so small holes stay visible.
	radius := math.Max(r.Hole.Radius*scale, 1.0)
	col := explosiveColors[r.Explosive]
	pdf.SetLineWidth(0.2)
	pdf.SetDrawColor(30, 30, 30)
	pdf.SetFillColor(col.R, col.G, col.B)
	for i, h := range r.Layout.Holes {
		cx := offsetX + h.X*scale
		cy := offsetY + h.Y*scale
		pdf.Circle(cx, cy, radius, "FD")

		if opts.ShowLabels {
			pdf.SetFont("Helvetica", "", holeLabelFontSize(scale*r.Hole.Spacing))
			pdf.SetTextColor(0, 0, 0)
			label := fmt.Sprintf("%d", i+1)
			w := pdf.GetStringWidth(label)
			pdf.SetXY(cx-w/2, cy+radius+0.5)
			pdf.CellFormat(w, 3, label, "", 0, "C", false, 0, "")
		}
	}

	drawDimensionAnnotations(pdf, g, offsetX, offsetY, canvasW, canvasH)

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 0, 0)
	pdf.SetXY(marginLeft, offsetY+canvasH+6)
	pdf.CellFormat(drawWidth, 4, "Red edge: free face", "", 0, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// drawDimensionAnnotations labels the bench length below and width beside
// the plan.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, g model.BenchGeometry, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	lengthLabel := fmt.Sprintf("%.1f m", g.Length)
	lw := pdf.GetStringWidth(lengthLabel)
	pdf.SetXY(offsetX+(canvasW-lw)/2, offsetY+canvasH+1)
	pdf.CellFormat(lw, 4, lengthLabel, "", 0, "C", false, 0, "")

	widthLabel := fmt.Sprintf("%.1f m", g.Width)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	ww := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX-3-ww/2, offsetY+canvasH/2-2)
	pdf.CellFormat(ww, 4, widthLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// renderSectionPage draws a vertical section through one hole: stemming on
// top, the explosive column below it and the subdrill under the bench floor.
func renderSectionPage(pdf *fpdf.Fpdf, r engine.Result) {
	h := r.Hole
	g := r.Geometry

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, "Hole Section", "", 0, "L", false, 0, "")

	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight
	scale := drawHeight / h.Depth
	holeW := math.Max(h.DiameterM()*scale*10, 6) // widened for legibility
	top := drawAreaTop
	cx := marginLeft + 70

	// Rock mass down to the bench floor, then the subdrill zone.
	benchH := g.BenchHeight * scale
	pdf.SetFillColor(benchFill.R, benchFill.G, benchFill.B)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.3)
	pdf.Rect(cx-40, top, 80, benchH, "FD")
	pdf.SetFillColor(225, 215, 200)
	pdf.Rect(cx-40, top+benchH, 80, h.Subdrilling*scale, "FD")

	stemH := math.Min(h.Stemming, h.Depth) * scale
	colH := math.Max(r.Charge.ColumnLength, 0) * scale
	subH := h.Subdrilling * scale

	pdf.SetFillColor(stemmingFill.R, stemmingFill.G, stemmingFill.B)
	pdf.Rect(cx-holeW/2, top, holeW, stemH, "FD")
	if colH > 0 {
		col := explosiveColors[r.Explosive]
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(cx-holeW/2, top+stemH, holeW, colH, "FD")
	}
	pdf.SetFillColor(subdrillFill.R, subdrillFill.G, subdrillFill.B)
	pdf.Rect(cx-holeW/2, top+benchH, holeW, subH, "FD")

	// Bench floor.
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetDashPattern([]float64{2, 1}, 0)
	pdf.Line(cx-50, top+benchH, cx+50, top+benchH)
	pdf.SetDashPattern([]float64{}, 0)

	rows := []struct {
		c     rgb
		label string
	}{
		{stemmingFill, fmt.Sprintf("Stemming (T): %.2f m", h.Stemming)},
		{explosiveColors[r.Explosive], fmt.Sprintf("%s column: %.2f m", r.Explosive, r.Charge.ColumnLength)},
		{subdrillFill, fmt.Sprintf("Subdrilling (J): %.2f m", h.Subdrilling)},
	}
	x := cx + 60
	y := top + 10
	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		pdf.SetFillColor(row.c.R, row.c.G, row.c.B)
		pdf.Rect(x, y+1, 4, 4, "F")
		pdf.SetXY(x+6, y)
		pdf.CellFormat(100, 6, row.label, "", 0, "L", false, 0, "")
		y += 8
	}
	y += 4
	for _, line := range []string{
		fmt.Sprintf("Bench height: %.2f m", g.BenchHeight),
		fmt.Sprintf("Hole depth (L): %.2f m", h.Depth),
		fmt.Sprintf("Hole diameter: %.0f mm", h.DiameterMM),
		fmt.Sprintf("Charge per hole: %.2f kg", r.Charge.ChargePerHole),
	} {
		pdf.SetXY(x, y)
		pdf.CellFormat(100, 6, line, "", 0, "L", false, 0, "")
		y += 7
	}
}

// renderSummaryPage lists design parameters, explosive figures, rock class,
// flyrock zones and warnings.
func renderSummaryPage(pdf *fpdf.Fpdf, r engine.Result, opts ReportOptions) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, opts.Title, "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	left := marginLeft
	right := pageWidth / 2
	y := marginTop + 18

	yl := renderItems(pdf, left, y, "Design Parameters", designItems(r))
	yr := renderItems(pdf, right, y, "Explosive Parameters", explosiveItems(r))
	y = math.Max(yl, yr) + 4

	yl = renderItems(pdf, left, y, "Rock & Pattern", rockItems(r))
	yr = renderItems(pdf, right, y, "Flyrock (Roth)", flyrockItems(r))
	y = math.Max(yl, yr) + 4

	if len(r.Warnings) > 0 {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNINGS", "", 0, "L", false, 0, "")
		y += 8
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, w := range r.Warnings {
			pdf.SetXY(marginLeft+5, y)
			pdf.CellFormat(260, 5, "- "+w, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by BlastPlan - Surface Blast Designer", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	pdf.AddPage()
	renderClassificationMatrix(pdf, r)
}

type item struct {
	label string
	value string
}

func renderItems(pdf *fpdf.Fpdf, x, y float64, heading string, items []item) float64 {
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(x, y)
	pdf.CellFormat(100, 7, heading, "", 0, "L", false, 0, "")
	y += 8

	for _, it := range items {
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetXY(x+5, y)
		pdf.CellFormat(60, 5, it.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(60, 5, tr(it.value), "", 0, "L", false, 0, "")
		y += 5
	}
	return y
}

func designItems(r engine.Result) []item {
	h := r.Hole
	diameter := fmt.Sprintf("%.0f mm", h.DiameterMM)
	if r.DiameterDerived {
		diameter += " (optimum)"
	}
	if r.OperationScale != "" {
		diameter += ", " + r.OperationScale
	}
	return []item{
		{"Hole Diameter (D)", diameter},
		{"Burden (B)", fmt.Sprintf("%.2f m", h.Burden)},
		{"Spacing (S)", fmt.Sprintf("%.2f m", h.Spacing)},
		{"Burden-to-Spacing Ratio", fmt.Sprintf("%.2f", h.BurdenSpacingRatio())},
		{"Subdrilling Depth (J)", fmt.Sprintf("%.2f m", h.Subdrilling)},
		{"Stemming Length (T)", fmt.Sprintf("%.2f m", h.Stemming)},
		{"Hole Depth (L)", fmt.Sprintf("%.2f m", h.Depth)},
		{"Volume per Hole", fmt.Sprintf("%.2f m³", r.VolumePerHole)},
		{"Number of Holes", fmt.Sprintf("%d", r.HoleCount)},
		{"Number of Rows", fmt.Sprintf("%d", r.Layout.Rows)},
		{"Holes per Row", fmt.Sprintf("%d", r.Layout.HolesPerRow)},
		{"Blast Volume", fmt.Sprintf("%.2f m³ (%s)", r.Charge.BlastVolume, r.Inputs.VolumeMode)},
	}
}

func explosiveItems(r engine.Result) []item {
	c := r.Charge
	props := r.Explosive.Properties()
	return []item{
		{"Explosive Type", r.Explosive.String()},
		{"Explosive Density", fmt.Sprintf("%.2f kg/m³", c.DensityKgM3)},
		{"Water Resistance", props.WaterResistance},
		{"Column Length", fmt.Sprintf("%.2f m", c.ColumnLength)},
		{"Available Hole Volume", fmt.Sprintf("%.4f m³", c.AvailableHoleVolume)},
		{"Charge per Hole (q)", fmt.Sprintf("%.2f kg", c.ChargePerHole)},
		{"Total Explosive", fmt.Sprintf("%.2f kg", c.TotalExplosive)},
		{"Powder Factor (vol/mass)", fmt.Sprintf("%.2f m³/kg", c.PowderFactorVolPerMass)},
		{"Powder Factor (mass/vol)", fmt.Sprintf("%.2f kg/m³", c.PowderFactorMassPerVol)},
	}
}

func rockItems(r engine.Result) []item {
	rec := r.RecommendedPattern
	return []item{
		{"Rock Class", r.Rock.Hardness.String()},
		{"UCS", r.Rock.UCSRange},
		{"Strength", r.Rock.Strength},
		{"Typical Rocks", r.Rock.Examples},
		{"Water Condition", r.Inputs.Water.String()},
		{"Recommended Pattern", fmt.Sprintf("%s (%s)", rec.Variant, rec.Variant.SpacingFormula())},
		{"Pattern Used", r.Pattern.DisplayName()},
	}
}

func flyrockItems(r engine.Result) []item {
	f := r.Flyrock
	if !f.Valid() {
		return []item{
			{"Initial Velocity", fmt.Sprintf("%.2f m/s", f.InitialVelocity)},
			{"Stemming Factor", fmt.Sprintf("%.2f", f.StemmingFactor)},
			{"Max Safe Distance", "n/a"},
			{"Safety Zones", "n/a"},
		}
	}
	return []item{
		{"Initial Velocity", fmt.Sprintf("%.2f m/s", f.InitialVelocity)},
		{"Max Safe Distance", fmt.Sprintf("%.1f m", f.MaxDistance)},
		{"Red Zone (no access)", fmt.Sprintf("%.1f m", f.Zones.Red)},
		{"Yellow Zone (limited)", fmt.Sprintf("%.1f m", f.Zones.Yellow)},
		{"Green Zone (safe)", fmt.Sprintf("%.1f m", f.Zones.Green)},
	}
}

// renderClassificationMatrix prints the rock classification ladder and
// highlights the class of the current design.
func renderClassificationMatrix(pdf *fpdf.Fpdf, r engine.Result) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(200, 10, "Rock Classification Matrix", "", 0, "L", false, 0, "")

	colWidths := []float64{30, 30, 30, 30, 60, 80}
	headers := []string{"Class", "P-wave (km/s)", "Density (g/cm³)", "UCS", "Strength", "Examples"}

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	y := marginTop + 14
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	x := marginLeft
	for i, header := range headers {
		pdf.SetXY(x, y)
		pdf.CellFormat(colWidths[i], 6, tr(header), "1", 0, "C", true, 0, "")
		x += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, row := range recommend.ClassificationMatrix() {
		switch {
		case row.Class.Hardness == r.Rock.Hardness:
			pdf.SetFillColor(255, 235, 59)
		case i%2 == 0:
			pdf.SetFillColor(245, 245, 245)
		default:
			pdf.SetFillColor(255, 255, 255)
		}
		cells := []string{
			row.Class.Hardness.String(),
			row.PWaveRange,
			row.Density,
			row.Class.UCSRange,
			row.Class.Strength,
			row.Class.Examples,
		}
		x = marginLeft
		for j, cell := range cells {
			pdf.SetXY(x, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			x += colWidths[j]
		}
		y += 6
	}
}

// holeLabelFontSize picks a font size from the drawn hole spacing in mm.
func holeLabelFontSize(spacing float64) float64 {
	switch {
	case spacing > 20:
		return 8
	case spacing > 10:
		return 6
	default:
		return 4
	}
}

func designName(r engine.Result) string {
	if name := strings.TrimSpace(r.Inputs.Name); name != "" {
		return name
	}
	return "Blast Design"
}
