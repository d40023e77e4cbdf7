// Package rent calcula las series mensuales de arriendo esperado vs. recibido
// a partir de un snapshot de malls. Todas las funciones son puras: el año y el
// instante "actual" llegan como parámetros.
package rent

import (
	"time"

	"github.com/jhoicas/rentas-dashboard/internal/domain/entity"
)

// Months etiquetas de los 12 meses en orden calendario.
var Months = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// Amounts par esperado / recibido de un mes.
type Amounts struct {
	Expected float64 `json:"expected"`
	Received float64 `json:"received"`
}

// MallMonth un mes de la serie por mall. ByMall se indexa por Mall.ID.
type MallMonth struct {
	Month  string
	ByMall map[string]Amounts
}

// TotalMonth un mes de la serie consolidada.
type TotalMonth struct {
	Month string
	Total Amounts
}

// Summary datos de la tarjeta resumen de un mall.
type Summary struct {
	StoreCount      int
	MonthlyExpected float64
	MonthReceived   float64
}

// MonthlyExpected suma el arriendo de todos los stores del mall.
// Es constante mes a mes.
func MonthlyExpected(m entity.Mall) float64 {
	var total float64
	for _, s := range m.Stores {
		total += s.RentAmount
	}
	return total
}

// ReceivedIn suma los pagos del mall cuya fecha (en loc) cae en year/month.
// Con loc nil se usa la zona propia de cada fecha.
func ReceivedIn(m entity.Mall, year int, month time.Month, loc *time.Location) float64 {
	var total float64
	for _, s := range m.Stores {
		for _, p := range s.Payments {
			d := p.PaymentDate
			if loc != nil {
				d = d.In(loc)
			}
			if d.Year() == year && d.Month() == month {
				total += p.Amount
			}
		}
	}
	return total
}

// PerMallSeries devuelve siempre 12 registros (Jan..Dec) con esperado y recibido
// de cada mall para el año indicado. Meses sin pagos quedan en cero.
func PerMallSeries(malls []entity.Mall, year int, loc *time.Location) []MallMonth {
	expected := make([]float64, len(malls))
	for i, m := range malls {
		expected[i] = MonthlyExpected(m)
	}

	series := make([]MallMonth, 0, len(Months))
	for i, label := range Months {
		month := time.Month(i + 1)
		row := MallMonth{Month: label, ByMall: make(map[string]Amounts, len(malls))}
		for j, m := range malls {
			row.ByMall[m.ID] = Amounts{
				Expected: expected[j],
				Received: ReceivedIn(m, year, month, loc),
			}
		}
		series = append(series, row)
	}
	return series
}

// TotalSeries consolida todos los malls en un único par por mes.
func TotalSeries(malls []entity.Mall, year int, loc *time.Location) []TotalMonth {
	var expected float64
	for _, m := range malls {
		expected += MonthlyExpected(m)
	}

	series := make([]TotalMonth, 0, len(Months))
	for i, label := range Months {
		month := time.Month(i + 1)
		var received float64
		for _, m := range malls {
			received += ReceivedIn(m, year, month, loc)
		}
		series = append(series, TotalMonth{
			Month: label,
			Total: Amounts{Expected: expected, Received: received},
		})
	}
	return series
}

// CurrentMonthSummary resume el mall usando el mes real de now (no el mes que se esté mostrando).
func CurrentMonthSummary(m entity.Mall, now time.Time) Summary {
	return MonthSummary(m, now.Year(), now.Month(), now.Location())
}

// MonthSummary resume el mall para un año/mes explícito.
func MonthSummary(m entity.Mall, year int, month time.Month, loc *time.Location) Summary {
	return Summary{
		StoreCount:      len(m.Stores),
		MonthlyExpected: MonthlyExpected(m),
		MonthReceived:   ReceivedIn(m, year, month, loc),
	}
}
