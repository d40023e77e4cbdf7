package echarts_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rentas-dashboard/internal/application/dto"
	"github.com/jhoicas/rentas-dashboard/internal/domain/rent"
	"github.com/jhoicas/rentas-dashboard/internal/infrastructure/echarts"
)

type decoded struct {
	XAxis []struct {
		Data []string `json:"data"`
	} `json:"xAxis"`
	Series []struct {
		Name      string `json:"name"`
		Type      string `json:"type"`
		ItemStyle struct {
			Color string `json:"color"`
		} `json:"itemStyle"`
		Data []struct {
			Value float64 `json:"value"`
		} `json:"data"`
	} `json:"series"`
}

func chart() dto.ChartDTO {
	points := make([]dto.SeriesPointDTO, 0, 12)
	for i, m := range rent.Months {
		points = append(points, dto.SeriesPointDTO{Month: m, Expected: 1000, Received: float64(i) + 0.004})
	}
	return dto.ChartDTO{
		Title:       "Mall A",
		ExpectedKey: "Mall A Expected",
		ReceivedKey: "Mall A Received",
		Colors:      dto.ColorsDTO(rent.ColorsFor(0)),
		Points:      points,
	}
}

func TestOptionsJSON_SeriesYEje(t *testing.T) {
	raw, err := echarts.OptionsJSON(chart(), echarts.MallChartHeight)
	require.NoError(t, err)

	var got decoded
	require.NoError(t, json.Unmarshal(raw, &got))

	require.NotEmpty(t, got.XAxis)
	assert.Equal(t, rent.Months[:], got.XAxis[0].Data)

	require.Len(t, got.Series, 2)
	assert.Equal(t, "Mall A Expected", got.Series[0].Name)
	assert.Equal(t, "bar", got.Series[0].Type)
	assert.Equal(t, "#8884d8", got.Series[0].ItemStyle.Color)
	assert.Equal(t, "Mall A Received", got.Series[1].Name)
	assert.Equal(t, "#82ca9d", got.Series[1].ItemStyle.Color)

	require.Len(t, got.Series[1].Data, 12)
	assert.Equal(t, 3.0, got.Series[1].Data[3].Value, "redondeado a 2 decimales")
	assert.Equal(t, 1000.0, got.Series[0].Data[11].Value)
}

func TestOptionsJSON_SinPuntos(t *testing.T) {
	c := chart()
	c.Points = nil
	raw, err := echarts.OptionsJSON(c, echarts.TotalChartHeight)
	require.NoError(t, err)
	assert.True(t, json.Valid(raw))
}
