package rent

import "github.com/jhoicas/rentas-dashboard/internal/domain/entity"

// Claves de las filas planas consumidas por librerías de gráficos.
const (
	KeyName          = "name"
	KeyTotalExpected = "Total Expected"
	KeyTotalReceived = "Total Received"
)

// ExpectedKey "<mall> Expected".
func ExpectedKey(mallName string) string { return mallName + " Expected" }

// ReceivedKey "<mall> Received".
func ReceivedKey(mallName string) string { return mallName + " Received" }

// ChartRows aplana la serie por mall en registros {"name": "Jan", "<mall> Expected": n, ...}.
// Dos malls con el mismo nombre comparten clave; el último en malls gana.
func ChartRows(series []MallMonth, malls []entity.Mall) []map[string]any {
	rows := make([]map[string]any, 0, len(series))
	for _, mm := range series {
		row := map[string]any{KeyName: mm.Month}
		for _, m := range malls {
			a, ok := mm.ByMall[m.ID]
			if !ok {
				continue
			}
			row[ExpectedKey(m.Name)] = a.Expected
			row[ReceivedKey(m.Name)] = a.Received
		}
		rows = append(rows, row)
	}
	return rows
}

// TotalChartRows aplana la serie consolidada.
func TotalChartRows(series []TotalMonth) []map[string]any {
	rows := make([]map[string]any, 0, len(series))
	for _, tm := range series {
		rows = append(rows, map[string]any{
			KeyName:          tm.Month,
			KeyTotalExpected: tm.Total.Expected,
			KeyTotalReceived: tm.Total.Received,
		})
	}
	return rows
}
