// Package export writes packing results to PDF reports, QR label sheets,
// Excel workbooks and DXF drawings.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/binpack2d/internal/model"
)

// itemColor is an RGB fill for a placed item.
type itemColor struct {
	R, G, B int
}

var itemColors = []itemColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF writes one page per used bin with a scaled layout diagram,
// followed by a summary page.
func ExportPDF(path string, result model.Result, settings model.Settings) error {
	if len(result.Bins) == 0 {
		return fmt.Errorf("no bins to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for _, br := range result.Bins {
		pdf.AddPage()
		renderBinPage(pdf, br)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, result, settings)

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

// renderBinPage draws a single bin. Packing coordinates grow upward from the
// bottom-left corner, so y is flipped for the page.
func renderBinPage(pdf *fpdf.Fpdf, br model.BinResult) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Bin %d: %s (%d x %d)", br.BinID+1, br.Bin.Label, br.Bin.Width, br.Bin.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Items: %d | Used area: %d | Total area: %d | Efficiency: %.1f%%",
		len(br.Placements), br.UsedArea(), br.TotalArea(), br.Efficiency())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight

	scale := math.Min(drawWidth/float64(br.Bin.Width), drawHeight/float64(br.Bin.Height))
	canvasW := float64(br.Bin.Width) * scale
	canvasH := float64(br.Bin.Height) * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	pdf.SetFillColor(235, 235, 235)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	for i, p := range br.Placements {
		col := itemColors[i%len(itemColors)]
		pw := float64(p.PlacedWidth()) * scale
		ph := float64(p.PlacedHeight()) * scale
		px := offsetX + float64(p.X)*scale
		py := offsetY + canvasH - float64(p.Y)*scale - ph

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		if pw > 15 && ph > 8 {
			drawItemLabel(pdf, p, px, py, pw, ph)
		}
	}

	drawDimensionAnnotations(pdf, br.Bin, offsetX, offsetY, canvasW, canvasH)
	drawItemsLegend(pdf, br, offsetY+canvasH+5)
}

// drawItemLabel centres the label and, when there is room, the size inside
// an item rectangle.
func drawItemLabel(pdf *fpdf.Fpdf, p model.PlacedItem, px, py, pw, ph float64) {
	pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
	pdf.SetTextColor(0, 0, 0)

	label := p.Item.Label
	dims := fmt.Sprintf("%dx%d", p.Item.Width, p.Item.Height)
	if p.Rotated {
		dims += " R"
	}

	if w := pdf.GetStringWidth(label); w < pw-2 {
		pdf.SetXY(px+(pw-w)/2, py+ph/2-4)
		pdf.CellFormat(w, 4, label, "", 0, "C", false, 0, "")
	}
	if w := pdf.GetStringWidth(dims); ph > 14 && w < pw-2 {
		pdf.SetXY(px+(pw-w)/2, py+ph/2)
		pdf.CellFormat(w, 4, dims, "", 0, "C", false, 0, "")
	}
}

// drawDimensionAnnotations labels the bin width below and the height to the
// left of the diagram.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, bin model.Bin, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%d", bin.Width)
	w := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-w)/2, offsetY+canvasH+1)
	pdf.CellFormat(w, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%d", bin.Height)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	h := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-h/2, offsetY+canvasH/2-2)
	pdf.CellFormat(h, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawItemsLegend lists the placed items with their colour swatches, wrapping
// at the right margin.
func drawItemsLegend(pdf *fpdf.Fpdf, br model.BinResult, startY float64) {
	if len(br.Placements) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Items placed:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for i, p := range br.Placements {
		col := itemColors[i%len(itemColors)]
		label := fmt.Sprintf("%s (%dx%d) @ %d,%d", p.Item.Label, p.Item.Width, p.Item.Height, p.X, p.Y)
		if p.Rotated {
			label += " R"
		}
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")
		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

type summaryLine struct {
	label string
	value string
}

func drawSummaryLines(pdf *fpdf.Fpdf, y float64, lines []summaryLine) float64 {
	pdf.SetFont("Helvetica", "", 10)
	for _, line := range lines {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, line.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(60, 6, line.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}
	return y
}

func drawSectionTitle(pdf *fpdf.Fpdf, y float64, title string) float64 {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, title, "", 0, "L", false, 0, "")
	return y + 9
}

// renderSummaryPage draws overall statistics, a per-bin table, the unplaced
// items and the settings used.
func renderSummaryPage(pdf *fpdf.Fpdf, result model.Result, settings model.Settings) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Packing Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := drawSectionTitle(pdf, marginTop+18, "Overall Statistics")
	y = drawSummaryLines(pdf, y, []summaryLine{
		{"Bins Used", fmt.Sprintf("%d", len(result.Bins))},
		{"Overall Efficiency", fmt.Sprintf("%.1f%%", result.TotalEfficiency())},
		{"Items Placed", fmt.Sprintf("%d", result.PlacedCount())},
		{"Unplaced Items", fmt.Sprintf("%d", len(result.Unplaced))},
	})

	y = drawSectionTitle(pdf, y+5, "Bin Breakdown")

	colWidths := []float64{20, 60, 50, 30, 35, 60}
	headers := []string{"Bin", "Label", "Size", "Items", "Efficiency", "Used / Total Area"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, br := range result.Bins {
		row := []string{
			fmt.Sprintf("%d", br.BinID+1),
			br.Bin.Label,
			fmt.Sprintf("%d x %d", br.Bin.Width, br.Bin.Height),
			fmt.Sprintf("%d", len(br.Placements)),
			fmt.Sprintf("%.1f%%", br.Efficiency()),
			fmt.Sprintf("%d / %d", br.UsedArea(), br.TotalArea()),
		}
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		xPos = marginLeft
		for j, cell := range row {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	if len(result.Unplaced) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Unplaced Items", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, it := range result.Unplaced {
			if y > pageHeight-marginBottom-40 {
				pdf.SetXY(marginLeft+5, y)
				pdf.CellFormat(200, 5, "...", "", 0, "L", false, 0, "")
				y += 5
				break
			}
			pdf.SetXY(marginLeft+5, y)
			pdf.CellFormat(200, 5, fmt.Sprintf("- %s: %d x %d", it.Label, it.Width, it.Height), "", 0, "L", false, 0, "")
			y += 5
		}
	}

	rotation := "off"
	if settings.AllowRotate {
		rotation = "on"
	}
	y = drawSectionTitle(pdf, y+8, "Settings")
	drawSummaryLines(pdf, y, []summaryLine{
		{"Algorithm", string(settings.Algorithm)},
		{"Rotation", rotation},
		{"Sort Order", string(settings.Sort)},
		{"Search", string(settings.Search)},
	})

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by binpack2d", "", 0, "C", false, 0, "")
}

// labelFontSize returns a font size that suits the rectangle on the page.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
