package fpdf

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// Describes a grid we're going to plot over, and the location of its top-left corner in
// PDF space
type BaseGrid struct {
	*gofpdf.Fpdf // Embed the thing we're writing to

	// Describe the portion of PDF page space the grid will be drawn over (labels go outside)
	OffsetU float64 // where the origin (top-left) should be, in PDF coords
	OffsetV float64 // where the origin (top-left) should be, in PDF coords
	W, H    float64 // width and height of the grid, in PDF units (should be mm)

	// Control how (x,y) vals are mapped into (u,v) vals
	MinX, MinY, MaxX, MaxY float64 // the range of values that should be scaled onto the grid.
	Clip                   bool    // whether to clip lines to fit inside grid

	// How to draw gridlines
	XGridlineEvery, YGridlineEvery float64 // From Min[XY] to Max[XY]
	XMinorGridlineEvery            float64
	XTickFmt, YTickFmt             string // Will be passed a float64 via fmt.Sprintf; blank==none

	// Other formatting
	LineColor []int // rgb, each [0,255] - axis labels
}

// {{{ bg.U, V, UV

// the bools are whether the coords are out-of-bounds for the grid.
func (bg BaseGrid) U(x float64) (float64, bool) {
	// Scale the X value to [0.0, 1.0], then map into PDF coords
	xRatio := (x - bg.MinX) / (bg.MaxX - bg.MinX)
	return bg.OffsetU + (xRatio * bg.W), xRatio < 0 || xRatio > 1
}

// PDF's V axis runs down the page, so high Y values get small V values.
func (bg BaseGrid) V(y float64) (float64, bool) {
	yRatio := (y - bg.MinY) / (bg.MaxY - bg.MinY)
	return bg.OffsetV + (bg.H - (yRatio * bg.H)), yRatio < 0 || yRatio > 1
}

func (bg BaseGrid) UV(x, y float64) (float64, float64, bool) {
	u, oobU := bg.U(x)
	v, oobV := bg.V(y)
	return u, v, (oobU || oobV)
}

// }}}
// {{{ bg.MoveBy, MoveTo, LineTo, Line

func (bg BaseGrid) MoveBy(x, y float64) {
	currX, currY := bg.GetXY()
	bg.Fpdf.MoveTo(currX+x, currY+y)
}

// We submit coords in gridspace (e.g. x,y), and the grid transforms them into PDFspace.
func (bg BaseGrid) MoveTo(x, y float64) bool {
	u, v, oob := bg.UV(x, y)
	bg.Fpdf.MoveTo(u, v)
	return oob
}

func (bg BaseGrid) LineTo(x, y float64) bool {
	u, v, oob := bg.UV(x, y)
	bg.Fpdf.LineTo(u, v)
	return oob
}

// Only draw the line if both points are inside bounds (when clipping)
func (bg BaseGrid) Line(x1, y1, x2, y2 float64) {
	u1, v1, oob1 := bg.UV(x1, y1)
	u2, v2, oob2 := bg.UV(x2, y2)

	if !bg.Clip || (!oob1 && !oob2) {
		bg.Fpdf.MoveTo(u1, v1)
		bg.Fpdf.LineTo(u2, v2)
	}
	bg.DrawPath("D")
}

// }}}
// {{{ bg.Band

// Band fills the full height of the grid between x1 and x2.
func (bg BaseGrid) Band(x1, x2 float64, rgb []int, alpha float64) {
	u1, _ := bg.U(x1)
	u2, _ := bg.U(x2)
	bg.SetAlpha(alpha, "Normal")
	bg.SetFillColor(rgb[0], rgb[1], rgb[2])
	bg.Rect(u1, bg.OffsetV, u2-u1, bg.H, "F")
	bg.SetAlpha(1.0, "Normal")
}

// }}}
// {{{ bg.DrawGridlines

func (bg BaseGrid) DrawGridlines() {
	bg.SetFont("Arial", "", 8)

	bg.SetLineWidth(0.03)
	bg.SetDrawColor(0xe0, 0xe0, 0xe0)
	for x := bg.MinX; x <= bg.MaxX; x += bg.XGridlineEvery {
		bg.MoveTo(x, bg.MinY)
		bg.LineTo(x, bg.MaxY)

		if bg.XTickFmt != "" {
			bg.MoveTo(x, bg.MinY)
			bg.MoveBy(-4, 2) // Offset in MM
			bg.SetTextColor(0, 0, 0)
			bg.Cell(30, 4, fmt.Sprintf(bg.XTickFmt, x))
		}
	}
	bg.DrawPath("D")

	if bg.XMinorGridlineEvery > 0 {
		bg.SetLineWidth(0.01)
		bg.SetDashPattern([]float64{2, 2}, 0.0)
		for x := bg.MinX; x <= bg.MaxX; x += bg.XMinorGridlineEvery {
			bg.MoveTo(x, bg.MinY)
			bg.LineTo(x, bg.MaxY)
		}
		bg.DrawPath("D")
		bg.SetDashPattern([]float64{}, 0.0)
	}

	bg.SetLineWidth(0.03)
	bg.SetDrawColor(0xe0, 0xe0, 0xe0)
	for y := bg.MinY; y <= bg.MaxY; y += bg.YGridlineEvery {
		bg.MoveTo(bg.MinX, y)
		bg.LineTo(bg.MaxX, y)

		if bg.YTickFmt != "" {
			bg.MoveTo(bg.MinX, y)
			bg.MoveBy(-19, -2)
			if len(bg.LineColor) == 3 {
				bg.SetTextColor(bg.LineColor[0], bg.LineColor[1], bg.LineColor[2])
			}
			bg.CellFormat(18, 4, fmt.Sprintf(bg.YTickFmt, y), "", 0, "R", false, 0, "")
		}
	}
	bg.DrawPath("D")
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
