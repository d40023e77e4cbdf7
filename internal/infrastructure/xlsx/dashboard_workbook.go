// Package xlsx exporta el dashboard a un libro Excel con tres hojas:
// Totals (serie consolidada), Malls (serie por mall en formato largo) y Summary (tarjetas).
package xlsx

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/rentas-dashboard/internal/application/dto"
)

const (
	SheetTotals  = "Totals"
	SheetMalls   = "Malls"
	SheetSummary = "Summary"

	colorHeader = "#8884D8"
	numFmtMoney = 4 // #,##0.00
)

// WorkbookGenerator genera el .xlsx del dashboard.
type WorkbookGenerator struct{}

// NewWorkbookGenerator construye el generador.
func NewWorkbookGenerator() *WorkbookGenerator { return &WorkbookGenerator{} }

type styles struct {
	title, header, money, moneyBold int
}

// Generate devuelve los bytes del libro.
func (g *WorkbookGenerator) Generate(_ context.Context, view *dto.DashboardDTO) ([]byte, error) {
	if view == nil {
		return nil, fmt.Errorf("xlsx.Generate: vista nil")
	}
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetTotals); err != nil {
		return nil, fmt.Errorf("xlsx.Generate: %w", err)
	}
	for _, name := range []string{SheetMalls, SheetSummary} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("xlsx.Generate: hoja %s: %w", name, err)
		}
	}

	st, err := newStyles(f)
	if err != nil {
		return nil, fmt.Errorf("xlsx.Generate: estilos: %w", err)
	}

	w := &sheetWriter{f: f}
	writeTotals(w, st, view)
	writeMalls(w, st, view.Malls)
	writeSummary(w, st, view.Summaries)
	if w.err != nil {
		return nil, fmt.Errorf("xlsx.Generate: %w", w.err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("xlsx.Generate: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

func newStyles(f *excelize.File) (styles, error) {
	var st styles
	var err error
	if st.title, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14, Color: colorHeader},
	}); err != nil {
		return st, err
	}
	if st.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{colorHeader}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	}); err != nil {
		return st, err
	}
	if st.money, err = f.NewStyle(&excelize.Style{
		NumFmt:    numFmtMoney,
		Alignment: &excelize.Alignment{Horizontal: "right"},
	}); err != nil {
		return st, err
	}
	st.moneyBold, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		NumFmt:    numFmtMoney,
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	return st, err
}

// ── Hojas ─────────────────────────────────────────────────────────────────────

func writeTotals(w *sheetWriter, st styles, view *dto.DashboardDTO) {
	s := SheetTotals
	w.set(s, 1, 1, fmt.Sprintf("%s %d", view.Total.Title, view.Year))
	w.style(s, 1, 1, 1, 1, st.title)

	w.row(s, 3, "Month", view.Total.ExpectedKey, view.Total.ReceivedKey)
	w.style(s, 3, 1, 3, 3, st.header)

	r := 4
	for _, p := range view.Total.Points {
		w.row(s, r, p.Month, p.Expected, p.Received)
		r++
	}
	if len(view.Total.Points) > 0 {
		w.style(s, 4, 2, r-1, 3, st.money)
		w.set(s, r, 1, "Total")
		w.formula(s, r, 2, fmt.Sprintf("SUM(B4:B%d)", r-1))
		w.formula(s, r, 3, fmt.Sprintf("SUM(C4:C%d)", r-1))
		w.style(s, r, 2, r, 3, st.moneyBold)
	}
	w.widths(s, 12, 20, 20)
}

func writeMalls(w *sheetWriter, st styles, charts []dto.ChartDTO) {
	s := SheetMalls
	w.row(s, 1, "Mall", "Month", "Expected", "Received")
	w.style(s, 1, 1, 1, 4, st.header)

	r := 2
	for _, c := range charts {
		for _, p := range c.Points {
			w.row(s, r, c.Title, p.Month, p.Expected, p.Received)
			r++
		}
	}
	if r > 2 {
		w.style(s, 2, 3, r-1, 4, st.money)
	}
	w.widths(s, 24, 10, 16, 16)
}

func writeSummary(w *sheetWriter, st styles, sums []dto.MallSummaryDTO) {
	s := SheetSummary
	w.row(s, 1, "Mall", "Stores", "Monthly Expected", "Received This Month", "Period")
	w.style(s, 1, 1, 1, 5, st.header)

	for i, m := range sums {
		w.row(s, i+2, m.MallName, m.StoreCount, m.MonthlyExpected, m.MonthReceived, m.Period)
	}
	if len(sums) > 0 {
		w.style(s, 2, 3, len(sums)+1, 4, st.money)
	}
	w.widths(s, 24, 10, 20, 22, 12)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// sheetWriter acumula el primer error para no chequear cada celda.
type sheetWriter struct {
	f   *excelize.File
	err error
}

func (w *sheetWriter) cell(col, row int) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil && w.err == nil {
		w.err = err
	}
	return name
}

func (w *sheetWriter) set(sheet string, row, col int, v any) {
	if w.err != nil {
		return
	}
	w.err = w.f.SetCellValue(sheet, w.cell(col, row), v)
}

func (w *sheetWriter) formula(sheet string, row, col int, formula string) {
	if w.err != nil {
		return
	}
	w.err = w.f.SetCellFormula(sheet, w.cell(col, row), formula)
}

func (w *sheetWriter) row(sheet string, row int, values ...any) {
	for i, v := range values {
		w.set(sheet, row, i+1, v)
	}
}

func (w *sheetWriter) style(sheet string, r1, c1, r2, c2, style int) {
	if w.err != nil {
		return
	}
	w.err = w.f.SetCellStyle(sheet, w.cell(c1, r1), w.cell(c2, r2), style)
}

func (w *sheetWriter) widths(sheet string, widths ...float64) {
	for i, width := range widths {
		if w.err != nil {
			return
		}
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			w.err = err
			return
		}
		w.err = w.f.SetColWidth(sheet, name, name, width)
	}
}
