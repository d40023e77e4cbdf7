package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rentas-dashboard/internal/application/dto"
	"github.com/jhoicas/rentas-dashboard/internal/domain/rent"
	"github.com/jhoicas/rentas-dashboard/internal/infrastructure/pdf"
)

func sampleView() *dto.DashboardDTO {
	points := make([]dto.SeriesPointDTO, 0, 12)
	for i, m := range rent.Months {
		points = append(points, dto.SeriesPointDTO{Month: m, Expected: 1500, Received: float64(i * 100)})
	}
	now := time.Date(2026, time.October, 19, 10, 0, 0, 0, time.UTC)
	return &dto.DashboardDTO{
		Title:       "Rent & Payment Dashboard",
		Year:        2026,
		FetchedAt:   now,
		GeneratedAt: now,
		Total: dto.ChartDTO{
			Title: "Total Rent Collection Overview", ExpectedKey: rent.KeyTotalExpected, ReceivedKey: rent.KeyTotalReceived,
			Points: points,
		},
		Malls: []dto.ChartDTO{{MallID: "m1", Title: "Mall A", ExpectedKey: "Mall A Expected", ReceivedKey: "Mall A Received", Points: points}},
		Summaries: []dto.MallSummaryDTO{{
			MallID: "m1", MallName: "Mall A", StoreCount: 2,
			MonthlyExpectedLabel: "$1500.00", MonthReceivedLabel: "$900.00", Period: "Oct 2026",
		}},
	}
}

func TestGenerate_ProducePDF(t *testing.T) {
	gen := pdf.NewReportGenerator("$", "")
	out, err := gen.Generate(context.Background(), sampleView())
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerate_ConQRYSinMalls(t *testing.T) {
	view := sampleView()
	view.Malls = nil
	view.Summaries = nil

	out, err := pdf.NewReportGenerator("$", "http://localhost:8080/dashboard").Generate(context.Background(), view)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerate_VistaNil(t *testing.T) {
	_, err := pdf.NewReportGenerator("$", "").Generate(context.Background(), nil)
	assert.Error(t, err)
}
