// Package dashboard contiene el caso de uso del Dashboard de Arriendos:
// publica el snapshot de malls (Loader) y lo convierte en los DTOs que
// consumen la API JSON, la página HTML y los reportes.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/rentas-dashboard/internal/application/dto"
	"github.com/jhoicas/rentas-dashboard/internal/domain"
	"github.com/jhoicas/rentas-dashboard/internal/domain/rent"
	"github.com/jhoicas/rentas-dashboard/pkg/money"
)

// PageTitle encabezado de la página y de los reportes.
const PageTitle = "Rent & Payment Dashboard"

// UseCase arma la vista del dashboard a partir del estado del Loader.
//
// La serie anual se toma del snapshot (calculada una vez por lectura); las
// tarjetas resumen se evalúan en cada llamada con el mes real de Now.
type UseCase struct {
	loader   *Loader
	now      func() time.Time
	currency string
}

// NewUseCase construye el caso de uso.
func NewUseCase(loader *Loader, now func() time.Time, currencySymbol string) *UseCase {
	if now == nil {
		now = time.Now
	}
	return &UseCase{loader: loader, now: now, currency: currencySymbol}
}

// Status estado actual del snapshot.
func (uc *UseCase) Status() State {
	return uc.loader.State()
}

// Refresh fuerza una nueva lectura de la fuente.
func (uc *UseCase) Refresh(ctx context.Context) error {
	return uc.loader.Refresh(ctx)
}

// GetDashboard devuelve la vista completa.
// Errores: domain.ErrFetchPending mientras no hay primer resultado; *FetchError si la última lectura falló.
func (uc *UseCase) GetDashboard(_ context.Context) (*dto.DashboardDTO, error) {
	snap, err := uc.ready()
	if err != nil {
		return nil, err
	}
	now := uc.now().In(uc.loader.Location())

	view := &dto.DashboardDTO{
		Title:       PageTitle,
		Year:        snap.Year,
		FetchedAt:   snap.FetchedAt,
		GeneratedAt: now,
		Total:       totalChart(snap.Total),
		Malls:       mallCharts(snap),
		Summaries:   uc.summaries(snap, now),
	}
	return view, nil
}

// TotalChartRows filas planas {"name","Total Expected","Total Received"}.
func (uc *UseCase) TotalChartRows(_ context.Context) ([]map[string]any, error) {
	snap, err := uc.ready()
	if err != nil {
		return nil, err
	}
	return rent.TotalChartRows(snap.Total), nil
}

// MallChartRows filas planas {"name","<mall> Expected","<mall> Received",...}.
func (uc *UseCase) MallChartRows(_ context.Context) ([]map[string]any, error) {
	snap, err := uc.ready()
	if err != nil {
		return nil, err
	}
	return rent.ChartRows(snap.PerMall, snap.Malls), nil
}

// Summaries tarjetas resumen evaluadas con el mes actual.
func (uc *UseCase) Summaries(_ context.Context) ([]dto.MallSummaryDTO, error) {
	snap, err := uc.ready()
	if err != nil {
		return nil, err
	}
	return uc.summaries(snap, uc.now().In(uc.loader.Location())), nil
}

func (uc *UseCase) ready() (*Snapshot, error) {
	st := uc.loader.State()
	switch st.Status {
	case StatusReady:
		return st.Snapshot, nil
	case StatusFailed:
		return nil, st.Err
	case StatusPending:
		return nil, domain.ErrFetchPending
	default:
		return nil, fmt.Errorf("dashboard: estado desconocido %q", st.Status)
	}
}

// ── Conversión a DTO ──────────────────────────────────────────────────────────

func totalChart(series []rent.TotalMonth) dto.ChartDTO {
	points := make([]dto.SeriesPointDTO, 0, len(series))
	for _, tm := range series {
		points = append(points, dto.SeriesPointDTO{Month: tm.Month, Expected: tm.Total.Expected, Received: tm.Total.Received})
	}
	return dto.ChartDTO{
		Title:       "Total Rent Collection Overview",
		ExpectedKey: rent.KeyTotalExpected,
		ReceivedKey: rent.KeyTotalReceived,
		Colors:      dto.ColorsDTO(rent.TotalColors),
		Points:      points,
	}
}

func mallCharts(snap *Snapshot) []dto.ChartDTO {
	charts := make([]dto.ChartDTO, 0, len(snap.Malls))
	for i, m := range snap.Malls {
		points := make([]dto.SeriesPointDTO, 0, len(snap.PerMall))
		for _, mm := range snap.PerMall {
			a := mm.ByMall[m.ID]
			points = append(points, dto.SeriesPointDTO{Month: mm.Month, Expected: a.Expected, Received: a.Received})
		}
		charts = append(charts, dto.ChartDTO{
			MallID:      m.ID,
			Title:       m.Name,
			ExpectedKey: rent.ExpectedKey(m.Name),
			ReceivedKey: rent.ReceivedKey(m.Name),
			Colors:      dto.ColorsDTO(rent.ColorsFor(i)),
			Points:      points,
		})
	}
	return charts
}

func (uc *UseCase) summaries(snap *Snapshot, now time.Time) []dto.MallSummaryDTO {
	period := fmt.Sprintf("%s %d", rent.Months[now.Month()-1], now.Year())
	out := make([]dto.MallSummaryDTO, 0, len(snap.Malls))
	for _, m := range snap.Malls {
		s := rent.CurrentMonthSummary(m, now)
		out = append(out, dto.MallSummaryDTO{
			MallID:               m.ID,
			MallName:             m.Name,
			StoreCount:           s.StoreCount,
			MonthlyExpected:      s.MonthlyExpected,
			MonthReceived:        s.MonthReceived,
			MonthlyExpectedLabel: money.Format(uc.currency, s.MonthlyExpected),
			MonthReceivedLabel:   money.Format(uc.currency, s.MonthReceived),
			Period:               period,
		})
	}
	return out
}
