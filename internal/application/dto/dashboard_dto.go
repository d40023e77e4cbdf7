package dto

import "time"

// DashboardDTO respuesta de GET /api/dashboard.
// El orden de los campos sigue el orden de la página: total, gráficos por mall, tarjetas.
type DashboardDTO struct {
	Title       string           `json:"title"`
	Year        int              `json:"year"`
	FetchedAt   time.Time        `json:"fetched_at"`
	GeneratedAt time.Time        `json:"generated_at"`
	Total       ChartDTO         `json:"total"`
	Malls       []ChartDTO       `json:"malls"`
	Summaries   []MallSummaryDTO `json:"summaries"`
}

// ChartDTO un gráfico de barras esperado vs. recibido, 12 puntos Jan..Dec.
type ChartDTO struct {
	MallID      string           `json:"mall_id,omitempty"` // vacío en el gráfico consolidado
	Title       string           `json:"title"`
	ExpectedKey string           `json:"expected_key"` // "<mall> Expected" o "Total Expected"
	ReceivedKey string           `json:"received_key"`
	Colors      ColorsDTO        `json:"colors"`
	Points      []SeriesPointDTO `json:"points"`
}

// ColorsDTO colores de las dos series.
type ColorsDTO struct {
	Expected string `json:"expected"`
	Received string `json:"received"`
}

// SeriesPointDTO un mes de la serie.
type SeriesPointDTO struct {
	Month    string  `json:"month"`
	Expected float64 `json:"expected"`
	Received float64 `json:"received"`
}

// MallSummaryDTO tarjeta resumen de un mall. Los *Label ya vienen formateados ("$1000.00").
type MallSummaryDTO struct {
	MallID               string  `json:"mall_id"`
	MallName             string  `json:"mall_name"`
	StoreCount           int     `json:"store_count"`
	MonthlyExpected      float64 `json:"monthly_expected"`
	MonthReceived        float64 `json:"month_received"`
	MonthlyExpectedLabel string  `json:"monthly_expected_label"`
	MonthReceivedLabel   string  `json:"month_received_label"`
	Period               string  `json:"period"` // mes evaluado, ej. "Oct 2026"
}
