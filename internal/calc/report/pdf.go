package report

import (
	"fmt"
	"io"
	"time"

	"github.com/phpdave11/gofpdf"

	"openstruct/internal/calc/shear"
	"openstruct/internal/calc/springs"
)

// Meta is the title block printed on every PDF report.
type Meta struct {
	Project string    `json:"project"`
	Author  string    `json:"author"`
	Title   string    `json:"title"`
	Notes   string    `json:"notes"`
	Date    time.Time `json:"-"`
}

func newDocument(meta Meta, defaultTitle string) (*gofpdf.Fpdf, func(string) string) {
	if meta.Title == "" {
		meta.Title = defaultTitle
	}
	if meta.Date.IsZero() {
		meta.Date = time.Now()
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(meta.Title, true)
	pdf.SetAuthor(meta.Author, true)
	pdf.SetCreationDate(meta.Date)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(meta.Title))
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Project: %s", meta.Project)))
	pdf.Ln(6)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Author: %s", meta.Author)))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", meta.Date.Format("2006-01-02")))
	pdf.Ln(10)
	if meta.Notes != "" {
		pdf.MultiCell(0, 6, tr(meta.Notes), "", "L", false)
		pdf.Ln(4)
	}
	return pdf, tr
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 10)
}

func table(pdf *gofpdf.Fpdf, tr func(string) string, widths []float64, header []string, rows [][]string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range header {
		pdf.CellFormat(widths[i], 7, tr(h), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		for i, c := range row {
			pdf.CellFormat(widths[i], 6, tr(c), "1", 0, "R", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)
}

// SpringsPDF writes the spring table as an A4 report.
func SpringsPDF(w io.Writer, rows []springs.Result, meta Meta) error {
	pdf, tr := newDocument(meta, "Horizontal pile springs (k_mola)")
	section(pdf, "Supports")

	body := make([][]string, 0, len(rows))
	for _, r := range rows {
		body = append(body, []string{
			fmt.Sprint(r.Support),
			fmt.Sprintf("%.2f", r.Depth),
			fmt.Sprintf("%.3f", r.Area),
			string(r.Soil),
			fmt.Sprint(r.SPT),
			fmt.Sprintf("%.2f", r.M),
			fmt.Sprintf("%.2f", r.KSpring),
		})
	}
	table(pdf, tr,
		[]float64{20, 25, 25, 25, 20, 30, 35},
		[]string{"Support", "Depth (m)", "Area (m²)", "Soil", "SPT", "m (tf/m4)", "kmola (tf/m)"},
		body)
	pdf.Cell(0, 6, fmt.Sprintf("Total supports: %d", len(rows)))
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, tr("kmola = m · prof · area, area = diameter × 1 m."), "", "L", false)

	return pdf.Output(w)
}

// ShearPDF writes one beam shear design as an A4 calculation sheet.
func ShearPDF(w io.Writer, res shear.Result, meta Meta) error {
	pdf, tr := newDocument(meta, "Shear design - NBR 6118 model I")
	in := res.Input

	section(pdf, tr(fmt.Sprintf("Beam %s", in)))
	kv := func(label, value string) {
		pdf.CellFormat(70, 6, tr(label), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, tr(value), "", 1, "L", false, 0, "")
	}
	kv("Width bw", fmt.Sprintf("%.1f cm", in.Bw))
	kv("Height h / effective depth d", fmt.Sprintf("%.1f cm / %.1f cm", in.H, res.EffectiveDepthCM))
	kv("Vk / Vd", fmt.Sprintf("%.2f kN / %.2f kN", in.Vk, res.DesignShearKN))
	kv("gama_c / gama_c2 / gama_s", fmt.Sprintf("%.2f / %.2f / %.2f", in.GamaC, in.GamaC2, in.GamaS))
	kv("Stirrup legs", fmt.Sprint(in.StirrupLegs))
	pdf.Ln(4)

	mp := res.Materials
	section(pdf, "Materials (MPa)")
	kv("fck / fcd", fmt.Sprintf("%.2f / %.2f", mp.Fck, mp.Fcd))
	kv("fywk / fywd", fmt.Sprintf("%.2f / %.2f", in.Fywk, mp.Fywd))
	kv("fctm / fctk,inf / fctd", fmt.Sprintf("%.3f / %.3f / %.3f", mp.Fctm, mp.FctkInf, mp.Fctd))
	pdf.Ln(4)

	cc := res.Compression
	section(pdf, "Diagonal compression (VRd2)")
	kv("alpha_v2", fmt.Sprintf("%.3f", cc.AlphaV2))
	kv("VRd2", fmt.Sprintf("%.2f kN", cc.Vrd2))
	kv("Status", string(cc.Status))
	pdf.Ln(4)

	td := res.Tension
	section(pdf, "Transverse reinforcement (VRd3)")
	kv("Vc", fmt.Sprintf("%.2f kN", td.Vc))
	kv("asw,min", fmt.Sprintf("%.4f cm²/cm  (%.3f cm²/m)", td.AswMinCM, td.AswMinM))
	kv("Vsw,min / VRd3,min", fmt.Sprintf("%.2f kN / %.2f kN", td.VswMin, td.Vrd3Min))
	kv("Status", td.Status.Describe())
	kv("asw adopted", fmt.Sprintf("%.3f cm²/m", td.AswAdot))
	pdf.Ln(4)

	section(pdf, "Stirrup spacing")
	body := make([][]string, 0, len(res.Detailing))
	for _, s := range res.Detailing {
		body = append(body, []string{fmt.Sprintf("%.1f", s.DiameterMM), fmt.Sprintf("%.0f", s.SpacingCM)})
	}
	table(pdf, tr, []float64{40, 40}, []string{"ø (mm)", "s max (cm)"}, body)

	return pdf.Output(w)
}
