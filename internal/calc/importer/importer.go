// Package importer evaluates supports and beams listed in an xlsx workbook.
//
// Only the first sheet is read and its first row is taken as the header. A row
// that cannot be parsed or calculated does not stop the import: its error is
// collected and the remaining rows are still evaluated.
package importer

import (
	"io"
	"strconv"
	"strings"

	"github.com/ansel1/merry"
	"github.com/hashicorp/go-multierror"
	"github.com/xuri/excelize/v2"

	"openstruct/internal/calc/calcerr"
	"openstruct/internal/calc/shear"
	"openstruct/internal/calc/springs"
)

// Column layouts, in sheet order.
var (
	SpringsColumns = []string{"support", "prof", "diametro", "soil", "spt"}
	ShearColumns   = []string{"name", "bw", "h", "Vk", "fywk", "fck", "legs", "gama_c", "gama_c2", "gama_s"} // gama_* optional
)

type SpringsImport struct {
	Count   int              `json:"count"`
	Results []springs.Result `json:"results"`
	Errors  []string         `json:"errors,omitempty"`
}

type ShearImport struct {
	Count   int            `json:"count"`
	Results []shear.Result `json:"results"`
	Errors  []string       `json:"errors,omitempty"`
}

// Springs evaluates one support per row. When some rows fail the returned
// error is a *multierror.Error holding one error per failed row, and the
// result still carries every successful row.
func Springs(r io.Reader) (SpringsImport, error) {
	rows, err := readRows(r)
	if err != nil {
		return SpringsImport{}, err
	}
	var (
		out  SpringsImport
		errs *multierror.Error
	)
	for i, row := range rows {
		if blank(row) {
			continue
		}
		res, err := springsRow(row)
		if err != nil {
			errs = multierror.Append(errs, merry.Prependf(err, "row %d", i+2))
			continue
		}
		out.Results = append(out.Results, res)
	}
	out.Count = len(out.Results)
	return out, errs.ErrorOrNil()
}

// Shear evaluates one beam per row. Safety factor columns left empty take
// their value from base. Failed rows are reported as in Springs.
func Shear(r io.Reader, base shear.Factors) (ShearImport, error) {
	rows, err := readRows(r)
	if err != nil {
		return ShearImport{}, err
	}
	var (
		out  ShearImport
		errs *multierror.Error
	)
	for i, row := range rows {
		if blank(row) {
			continue
		}
		res, err := shearRow(row, base)
		if err != nil {
			errs = multierror.Append(errs, merry.Prependf(err, "row %d", i+2))
			continue
		}
		out.Results = append(out.Results, res)
	}
	out.Count = len(out.Results)
	return out, errs.ErrorOrNil()
}

// Messages flattens row errors for a response body.
func Messages(err error) []string {
	merr, ok := err.(*multierror.Error)
	if !ok || merr == nil {
		return nil
	}
	msgs := make([]string, 0, len(merr.Errors))
	for _, e := range merr.Errors {
		msgs = append(msgs, e.Error())
	}
	return msgs
}

// readRows returns the data rows of the first sheet, header excluded.
func readRows(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, calcerr.Invalid("file", "invalid xlsx file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, calcerr.Invalid("file", "read sheet: %v", err)
	}
	if len(rows) < 2 {
		return nil, calcerr.Invalid("file", "empty sheet")
	}
	return rows[1:], nil
}

func springsRow(row []string) (springs.Result, error) {
	p := parser{row: row, columns: SpringsColumns}
	in := springs.Input{
		Support:  p.integer(0),
		Depth:    p.number(1),
		Diameter: p.number(2),
		Soil:     p.text(3),
		SPT:      p.integer(4),
	}
	if p.err != nil {
		return springs.Result{}, p.err
	}
	return springs.Calculate(in)
}

func shearRow(row []string, base shear.Factors) (shear.Result, error) {
	p := parser{row: row, columns: ShearColumns}
	in := shear.Input{
		Name:        p.text(0),
		Bw:          p.number(1),
		H:           p.number(2),
		Vk:          p.number(3),
		Fywk:        p.number(4),
		Fck:         p.number(5),
		StirrupLegs: p.integer(6),
		Factors: shear.Factors{
			GamaC:  p.optNumber(7, base.GamaC),
			GamaC2: p.optNumber(8, base.GamaC2),
			GamaS:  p.optNumber(9, base.GamaS),
		},
	}
	if p.err != nil {
		return shear.Result{}, p.err
	}
	return shear.Calculate(in)
}

// parser reads typed cells from a row and keeps the first error.
type parser struct {
	row     []string
	columns []string
	err     error
}

func (p *parser) cell(i int) string {
	if i >= len(p.row) {
		return ""
	}
	return strings.TrimSpace(p.row[i])
}

func (p *parser) fail(i int, format string, args ...interface{}) {
	if p.err == nil {
		p.err = calcerr.Invalid(p.columns[i], format, args...)
	}
}

func (p *parser) text(i int) string {
	s := p.cell(i)
	if s == "" {
		p.fail(i, "missing column %s", p.columns[i])
	}
	return s
}

func (p *parser) number(i int) float64 {
	s := p.text(i)
	if s == "" {
		return 0
	}
	// Decimal commas are common in spreadsheets saved with a pt-BR locale.
	v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil {
		p.fail(i, "column %s: %q is not a number", p.columns[i], s)
	}
	return v
}

func (p *parser) optNumber(i int, def float64) float64 {
	if p.cell(i) == "" {
		return def
	}
	return p.number(i)
}

func (p *parser) integer(i int) int {
	s := p.text(i)
	if s == "" {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		// Numeric cells may come back formatted as "2.0".
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != float64(int(f)) {
			p.fail(i, "column %s: %q is not an integer", p.columns[i], s)
			return 0
		}
		v = int(f)
	}
	return v
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
