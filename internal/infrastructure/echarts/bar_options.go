// Package echarts traduce los gráficos del dashboard a opciones de Apache ECharts
// (go-echarts). La página HTML pasa el JSON resultante a chart.setOption.
package echarts

import (
	"encoding/json"
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/jhoicas/rentas-dashboard/internal/application/dto"
	"github.com/jhoicas/rentas-dashboard/pkg/money"
)

// Alto de los contenedores de gráfico.
const (
	TotalChartHeight = "400px"
	MallChartHeight  = "300px"
)

// NewBar arma el gráfico de barras agrupadas esperado vs. recibido.
func NewBar(c dto.ChartDTO, height string) *charts.Bar {
	months := make([]string, 0, len(c.Points))
	expected := make([]opts.BarData, 0, len(c.Points))
	received := make([]opts.BarData, 0, len(c.Points))
	for _, p := range c.Points {
		months = append(months, p.Month)
		expected = append(expected, opts.BarData{Name: p.Month, Value: money.Round2(p.Expected)})
		received = append(received, opts.BarData{Name: p.Month, Value: money.Round2(p.Received)})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Height: height}),
		charts.WithTitleOpts(opts.Title{Title: c.Title}),
	)
	bar.SetXAxis(months).
		AddSeries(c.ExpectedKey, expected, charts.WithItemStyleOpts(opts.ItemStyle{Color: c.Colors.Expected})).
		AddSeries(c.ReceivedKey, received, charts.WithItemStyleOpts(opts.ItemStyle{Color: c.Colors.Received}))
	return bar
}

// OptionsJSON opciones de ECharts serializadas.
func OptionsJSON(c dto.ChartDTO, height string) (json.RawMessage, error) {
	bar := NewBar(c, height)
	bar.Validate()
	raw, err := json.Marshal(bar.JSON())
	if err != nil {
		return nil, fmt.Errorf("echarts.OptionsJSON %q: %w", c.Title, err)
	}
	return raw, nil
}
