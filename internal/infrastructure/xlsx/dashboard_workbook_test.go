package xlsx_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/rentas-dashboard/internal/application/dto"
	"github.com/jhoicas/rentas-dashboard/internal/domain/rent"
	"github.com/jhoicas/rentas-dashboard/internal/infrastructure/xlsx"
)

func sampleView() *dto.DashboardDTO {
	points := make([]dto.SeriesPointDTO, 0, 12)
	for _, m := range rent.Months {
		points = append(points, dto.SeriesPointDTO{Month: m, Expected: 1500, Received: 250.5})
	}
	return &dto.DashboardDTO{
		Title: "Rent & Payment Dashboard",
		Year:  2026,
		Total: dto.ChartDTO{Title: "Total Rent Collection Overview", ExpectedKey: "Total Expected", ReceivedKey: "Total Received", Points: points},
		Malls: []dto.ChartDTO{
			{Title: "Mall A", Points: points},
			{Title: "Mall B", Points: points},
		},
		Summaries: []dto.MallSummaryDTO{
			{MallName: "Mall A", StoreCount: 3, MonthlyExpected: 1500, MonthReceived: 250.5, Period: "Oct 2026"},
		},
	}
}

func open(t *testing.T, b []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func raw(t *testing.T, f *excelize.File, sheet, cell string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, cell, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	return v
}

func TestGenerate_Hojas(t *testing.T) {
	out, err := xlsx.NewWorkbookGenerator().Generate(context.Background(), sampleView())
	require.NoError(t, err)

	f := open(t, out)
	assert.Equal(t, []string{xlsx.SheetTotals, xlsx.SheetMalls, xlsx.SheetSummary}, f.GetSheetList())
}

func TestGenerate_Totals(t *testing.T) {
	out, err := xlsx.NewWorkbookGenerator().Generate(context.Background(), sampleView())
	require.NoError(t, err)
	f := open(t, out)

	assert.Equal(t, "Total Rent Collection Overview 2026", raw(t, f, xlsx.SheetTotals, "A1"))
	assert.Equal(t, "Total Expected", raw(t, f, xlsx.SheetTotals, "B3"))
	assert.Equal(t, "Jan", raw(t, f, xlsx.SheetTotals, "A4"))
	assert.Equal(t, "Dec", raw(t, f, xlsx.SheetTotals, "A15"))
	assert.Equal(t, "1500", raw(t, f, xlsx.SheetTotals, "B4"))
	assert.Equal(t, "250.5", raw(t, f, xlsx.SheetTotals, "C15"))
	assert.Equal(t, "Total", raw(t, f, xlsx.SheetTotals, "A16"))

	formula, err := f.GetCellFormula(xlsx.SheetTotals, "B16")
	require.NoError(t, err)
	assert.Equal(t, "SUM(B4:B15)", formula)
}

func TestGenerate_MallsYSummary(t *testing.T) {
	out, err := xlsx.NewWorkbookGenerator().Generate(context.Background(), sampleView())
	require.NoError(t, err)
	f := open(t, out)

	rows, err := f.GetRows(xlsx.SheetMalls)
	require.NoError(t, err)
	assert.Len(t, rows, 1+24)
	assert.Equal(t, "Mall B", raw(t, f, xlsx.SheetMalls, "A14"))
	assert.Equal(t, "Jan", raw(t, f, xlsx.SheetMalls, "B14"))

	assert.Equal(t, "Mall A", raw(t, f, xlsx.SheetSummary, "A2"))
	assert.Equal(t, "3", raw(t, f, xlsx.SheetSummary, "B2"))
	assert.Equal(t, "Oct 2026", raw(t, f, xlsx.SheetSummary, "E2"))
}

func TestGenerate_SinMalls(t *testing.T) {
	view := sampleView()
	view.Malls = nil
	view.Summaries = nil

	out, err := xlsx.NewWorkbookGenerator().Generate(context.Background(), view)
	require.NoError(t, err)
	f := open(t, out)

	rows, err := f.GetRows(xlsx.SheetSummary)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestGenerate_VistaNil(t *testing.T) {
	_, err := xlsx.NewWorkbookGenerator().Generate(context.Background(), nil)
	assert.Error(t, err)
}
