// Package drawing renders pile plans: every pile is a circle with a center
// cross and its label above it.
package drawing

import (
	"io"
	"math"
	"strings"

	"github.com/phpdave11/gofpdf"

	"openstruct/internal/calc/calcerr"
)

const (
	pageW  = 297.0 // mm, A4 landscape
	pageH  = 210.0
	margin = 15.0

	axisLength   = 1.0 // m
	titleOffset  = 1.5 // m below the lowest pile
	titleHeight  = 0.3 // m
	labelFactor  = 0.15
	labelSpacing = 1.2
	crossFactor  = 0.05

	ptPerMM = 72 / 25.4
)

type Pile struct {
	X        float64 `json:"coord_X"`  // m
	Y        float64 `json:"coord_Y"`  // m
	Diameter float64 `json:"diametro"` // m
	Label    string  `json:"texto"`
}

// Lines splits the label on real newlines and on the escaped "\n" sequence
// that form fields tend to send.
func (p Pile) Lines() []string {
	if p.Label == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(p.Label, `\n`, "\n"), "\n")
}

func Validate(piles []Pile) error {
	if len(piles) == 0 {
		return calcerr.Invalid("estacas", "at least one pile is required")
	}
	for i, p := range piles {
		if !finite(p.X) {
			return calcerr.Invalid("coord_X", "pile %d: coord_X must be a finite number", i+1)
		}
		if !finite(p.Y) {
			return calcerr.Invalid("coord_Y", "pile %d: coord_Y must be a finite number", i+1)
		}
		if !(p.Diameter > 0) || math.IsInf(p.Diameter, 1) {
			return calcerr.Invalid("diametro", "pile %d: diameter must be greater than zero", i+1)
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// bounds is the drawing extent in plan coordinates (m).
type bounds struct {
	minX, minY, maxX, maxY float64
}

func (b *bounds) add(x, y float64) {
	b.minX = math.Min(b.minX, x)
	b.maxX = math.Max(b.maxX, x)
	b.minY = math.Min(b.minY, y)
	b.maxY = math.Max(b.maxY, y)
}

func extent(piles []Pile) bounds {
	b := bounds{minX: 0, minY: 0, maxX: axisLength, maxY: axisLength}
	lowest := math.Inf(1)
	for _, p := range piles {
		r := p.Diameter / 2
		labelTop := p.Y + r + 0.1 + labelFactor*p.Diameter
		b.add(p.X-r, p.Y-r)
		b.add(p.X+r, labelTop)
		lowest = math.Min(lowest, p.Y)
	}
	b.add(b.minX, lowest-titleOffset-2*titleHeight)
	return b
}

// view maps plan coordinates (m, y up) to page coordinates (mm, y down).
type view struct {
	b     bounds
	scale float64 // mm per m
	ox    float64
	oy    float64
}

func newView(b bounds) view {
	w := math.Max(b.maxX-b.minX, 1e-6)
	h := math.Max(b.maxY-b.minY, 1e-6)
	s := math.Min((pageW-2*margin)/w, (pageH-2*margin)/h)
	return view{
		b:     b,
		scale: s,
		ox:    margin + ((pageW-2*margin)-w*s)/2,
		oy:    margin + ((pageH-2*margin)-h*s)/2,
	}
}

func (v view) point(x, y float64) (float64, float64) {
	return v.ox + (x-v.b.minX)*v.scale, v.oy + (v.b.maxY-y)*v.scale
}

// fontSize converts a text height in plan meters to points.
func (v view) fontSize(h float64) float64 {
	return math.Max(h*v.scale*ptPerMM, 4)
}

type plan struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
	v   view
}

func (p *plan) line(x1, y1, x2, y2 float64) {
	ax, ay := p.v.point(x1, y1)
	bx, by := p.v.point(x2, y2)
	p.pdf.Line(ax, ay, bx, by)
}

// text draws s with its baseline at (x, y); centered when center is set.
func (p *plan) text(x, y, height float64, s string, center bool) {
	p.pdf.SetFontSize(p.v.fontSize(height))
	px, py := p.v.point(x, y)
	s = p.tr(s)
	if center {
		px -= p.pdf.GetStringWidth(s) / 2
	}
	p.pdf.Text(px, py, s)
}

// Render draws the pile plan on one A4 landscape page.
func Render(w io.Writer, piles []Pile, title string) error {
	if err := Validate(piles); err != nil {
		return err
	}
	if title == "" {
		title = "PILE PLAN WITH LOADS"
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 10)
	p := &plan{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor(""), v: newView(extent(piles))}

	// axes
	pdf.SetDrawColor(200, 0, 0)
	pdf.SetTextColor(200, 0, 0)
	p.line(0, 0, axisLength, 0)
	p.line(0, 0, 0, axisLength)
	p.text(axisLength+0.05, 0, 0.12, "X", false)
	p.text(0, axisLength+0.05, 0.12, "Y", false)

	for _, pile := range piles {
		r := pile.Diameter / 2
		cx, cy := p.v.point(pile.X, pile.Y)

		pdf.SetDrawColor(0, 150, 0)
		pdf.Circle(cx, cy, r*p.v.scale, "D")

		pdf.SetDrawColor(128, 128, 128)
		cross := crossFactor * pile.Diameter
		p.line(pile.X-cross, pile.Y, pile.X+cross, pile.Y)
		p.line(pile.X, pile.Y-cross, pile.X, pile.Y+cross)

		pdf.SetTextColor(0, 0, 0)
		height := labelFactor * pile.Diameter
		for i, l := range pile.Lines() {
			y := pile.Y + r + 0.1 - float64(i)*height*labelSpacing
			p.text(pile.X, y, height, l, true)
		}
	}

	minX, maxX, minY := math.Inf(1), math.Inf(-1), math.Inf(1)
	for _, pile := range piles {
		minX = math.Min(minX, pile.X)
		maxX = math.Max(maxX, pile.X)
		minY = math.Min(minY, pile.Y)
	}
	centerX := (minX + maxX) / 2
	baseY := minY - titleOffset

	pdf.SetTextColor(0, 0, 0)
	p.text(centerX, baseY, titleHeight, title, true)
	pdf.SetTextColor(100, 100, 100)
	p.text(centerX, baseY-titleHeight, titleHeight/2, "Units: meters and kN | Symbolic scale 1:100", true)

	return pdf.Output(w)
}
