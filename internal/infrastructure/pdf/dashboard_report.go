// Package pdf genera el reporte imprimible del Dashboard de Arriendos.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + año        │  Generado / Snapshot         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL: Mes | Esperado | Recibido | Diferencia (12 filas)   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  POR MALL: misma tabla, una sección por mall                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Mall | Locales | Esperado mensual | Recibido mes  │
//	│  FOOTER: QR al dashboard (opcional)                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/rentas-dashboard/internal/application/dto"
	"github.com/jhoicas/rentas-dashboard/pkg/money"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 136, Green: 132, Blue: 216} // #8884d8
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorGreen   = &props.Color{Red: 60, Green: 140, Blue: 90}
	colorRed     = &props.Color{Red: 190, Green: 60, Blue: 60}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// ReportGenerator genera el PDF del dashboard usando Maroto v2.
type ReportGenerator struct {
	currency     string
	dashboardURL string
}

// NewReportGenerator construye el generador. Si dashboardURL no es vacío, el
// reporte incluye un QR que apunta a la página en vivo.
func NewReportGenerator(currencySymbol, dashboardURL string) *ReportGenerator {
	return &ReportGenerator{currency: currencySymbol, dashboardURL: dashboardURL}
}

// Generate genera el PDF y devuelve sus bytes.
func (g *ReportGenerator) Generate(_ context.Context, view *dto.DashboardDTO) ([]byte, error) {
	if view == nil {
		return nil, fmt.Errorf("pdf.Generate: vista nil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(view.Title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(view))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(g.chartSection(view.Total)...)

	for _, c := range view.Malls {
		m.AddRows(line.NewRow(3))
		m.AddRows(g.chartSection(c)...)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.summaryRows(view.Summaries)...)

	if g.dashboardURL != "" {
		m.AddRows(line.NewRow(3))
		m.AddRows(qrRow(g.dashboardURL))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf.Generate: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(view *dto.DashboardDTO) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(view.Title, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New("Año "+strconv.Itoa(view.Year), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Generado: "+view.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Datos al: "+view.FetchedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// chartSection título del gráfico + tabla mensual.
func (g *ReportGenerator) chartSection(c dto.ChartDTO) []core.Row {
	rows := []core.Row{
		row.New(8).Add(col.New(12).Add(
			text.New(c.Title, props.Text{Style: fontstyle.Bold, Size: 11, Top: 2, Color: colorPrimary}),
		)),
		tableHeaderRow("Mes", c.ExpectedKey, c.ReceivedKey, "Diferencia"),
	}
	var sumExp, sumRec float64
	for _, p := range c.Points {
		sumExp += p.Expected
		sumRec += p.Received
		rows = append(rows, g.amountRow(p.Month, p.Expected, p.Received, false))
	}
	rows = append(rows, g.amountRow("Total", sumExp, sumRec, true))
	return rows
}

func tableHeaderRow(labels ...string) core.Row {
	cols := make([]core.Col, 0, len(labels))
	for i, l := range labels {
		a := align.Right
		size := 3
		if i == 0 {
			a = align.Left
		}
		cols = append(cols, col.New(size).Add(text.New(l, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		})))
	}
	return row.New(6).Add(cols...)
}

func (g *ReportGenerator) amountRow(label string, expected, received float64, bold bool) core.Row {
	style := fontstyle.Normal
	if bold {
		style = fontstyle.Bold
	}
	diff := received - expected
	diffColor := colorGreen
	if diff < 0 {
		diffColor = colorRed
	}
	cell := func(s string, a align.Type, c *props.Color) core.Col {
		return col.New(3).Add(text.New(s, props.Text{
			Style: style, Size: 8, Align: a, Top: 1, Left: 1, Right: 1, Color: c,
		}))
	}
	return row.New(5).Add(
		cell(label, align.Left, nil),
		cell(money.Format(g.currency, expected), align.Right, nil),
		cell(money.Format(g.currency, received), align.Right, nil),
		cell(money.Format(g.currency, diff), align.Right, diffColor),
	)
}

func (g *ReportGenerator) summaryRows(sums []dto.MallSummaryDTO) []core.Row {
	period := ""
	if len(sums) > 0 {
		period = " (" + sums[0].Period + ")"
	}
	rows := []core.Row{
		row.New(8).Add(col.New(12).Add(
			text.New("Mall Summaries"+period, props.Text{Style: fontstyle.Bold, Size: 11, Top: 2, Color: colorPrimary}),
		)),
		tableHeaderRow("Mall", "Stores", "Monthly Expected", "Received This Month"),
	}
	if len(sums) == 0 {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New("Sin malls registrados", props.Text{Size: 8, Top: 1, Color: colorGray}),
		)))
		return rows
	}
	for _, s := range sums {
		rows = append(rows, row.New(5).Add(
			col.New(3).Add(text.New(s.MallName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(strconv.Itoa(s.StoreCount), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(s.MonthlyExpectedLabel, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(s.MonthReceivedLabel, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func qrRow(url string) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(url, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Escanea el código para abrir el dashboard en vivo.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New(url, props.Text{Size: 7, Top: 10, Left: 3, Color: colorGray}),
		),
	)
}
