package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/blastplan/internal/engine"
	qrcode "github.com/skip2/go-qrcode"
)

// HoleTag holds the data encoded into each hole tag's QR code.
type HoleTag struct {
	Design    string  `json:"design"`
	Number    int     `json:"hole"`
	X         float64 `json:"x_m"`
	Y         float64 `json:"y_m"`
	Depth     float64 `json:"depth_m"`
	Diameter  float64 `json:"diameter_mm"`
	Stemming  float64 `json:"stemming_m"`
	Explosive string  `json:"explosive"`
	Charge    float64 `json:"charge_kg"`
}

// Tag layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each tag cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportHoleTags generates a PDF of QR-coded tags, one per hole, for
// marking collars in the field. Each tag shows the hole number, position,
// depth and charge, and its QR code carries the same data as JSON.
func ExportHoleTags(path string, r engine.Result) error {
	tags := CollectHoleTags(r)
	if len(tags) == 0 {
		return fmt.Errorf("no holes to generate tags for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, tag := range tags {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderTag(pdf, x, y, tag); err != nil {
			return fmt.Errorf("failed to render tag for hole %d: %w", tag.Number, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderTag draws a single tag at the given position.
func renderTag(pdf *fpdf.Fpdf, x, y float64, tag HoleTag) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(tag)
	if err != nil {
		return fmt.Errorf("failed to marshal hole tag: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_hole_%d", tag.Number)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 5, fmt.Sprintf("Hole %d", tag.Number), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5.5)
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("Depth %.2f m | D %.0f mm", tag.Depth, tag.Diameter), "", 1, "L", false, 0, "")

	pdf.SetXY(textX, y+labelPadding+9)
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("%s %.1f kg | T %.2f m", tag.Explosive, tag.Charge, tag.Stemming), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+13)
	pdf.CellFormat(textW, 3, fmt.Sprintf("@ (%.2f, %.2f)", tag.X, tag.Y), "", 1, "L", false, 0, "")

	design := tag.Design
	if pdf.GetStringWidth(design) > textW {
		for len(design) > 0 && pdf.GetStringWidth(design+"...") > textW {
			design = design[:len(design)-1]
		}
		design += "..."
	}
	pdf.SetXY(textX, y+labelPadding+16.5)
	pdf.CellFormat(textW, 3, design, "", 0, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)

	return nil
}

// CollectHoleTags builds one tag per hole in layout order.
func CollectHoleTags(r engine.Result) []HoleTag {
	var tags []HoleTag
	for i, h := range r.Layout.Holes {
		tags = append(tags, HoleTag{
			Design:    designName(r),
			Number:    i + 1,
			X:         h.X,
			Y:         h.Y,
			Depth:     r.Hole.Depth,
			Diameter:  r.Hole.DiameterMM,
			Stemming:  r.Hole.Stemming,
			Explosive: r.Explosive.String(),
			Charge:    r.Charge.ChargePerHole,
		})
	}
	return tags
}
