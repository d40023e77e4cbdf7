package rent_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/rentas-dashboard/internal/domain/entity"
	"github.com/jhoicas/rentas-dashboard/internal/domain/rent"
)

func TestColorsFor_Envuelve(t *testing.T) {
	assert.Equal(t, rent.MallColors{Expected: "#8884d8", Received: "#82ca9d"}, rent.ColorsFor(0))
	assert.Equal(t, rent.MallColors{Expected: "#a8e6cf", Received: "#dcedc1"}, rent.ColorsFor(4))
	assert.Equal(t, rent.ColorsFor(0), rent.ColorsFor(5))
	assert.Equal(t, rent.ColorsFor(2), rent.ColorsFor(12))
	assert.Equal(t, rent.ColorsFor(4), rent.ColorsFor(-1))
}

func TestChartRows_ClavesPorNombre(t *testing.T) {
	malls := []entity.Mall{
		{ID: "1", Name: "Norte", Stores: []entity.Store{{RentAmount: 10}}},
		{ID: "2", Name: "Sur", Stores: []entity.Store{{RentAmount: 20}}},
	}
	rows := rent.ChartRows(rent.PerMallSeries(malls, 2026, nil), malls)

	assert.Len(t, rows[0], 5)
	assert.Equal(t, "Jan", rows[0]["name"])
	assert.Equal(t, 10.0, rows[0]["Norte Expected"])
	assert.Equal(t, 20.0, rows[0]["Sur Expected"])
	assert.Equal(t, 0.0, rows[0]["Sur Received"])
}

func TestTotalChartRows(t *testing.T) {
	rows := rent.TotalChartRows([]rent.TotalMonth{{Month: "Jan", Total: rent.Amounts{Expected: 3, Received: 1}}})
	assert.Equal(t, []map[string]any{{"name": "Jan", "Total Expected": 3.0, "Total Received": 1.0}}, rows)
}
