// Package keystone reúne lo que comparten los adaptadores que leen el esquema
// de Keystone (API GraphQL o tablas Prisma): interpretación de fechas y
// ensamblado de filas planas en malls → stores → pagos.
package keystone

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DayLayout formato de un campo calendarDay de Keystone.
const DayLayout = "2006-01-02"

// Con zona explícita: instantes.
var zonedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999-07",
}

// Sin zona: se leen como hora local de loc.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	DayLayout,
}

// ParseDate equivale a ParseDateIn con UTC.
func ParseDate(s string) (time.Time, error) {
	return ParseDateIn(s, time.UTC)
}

// ParseDateIn interpreta una fecha textual. Un valor con zona es un instante;
// uno sin zona (en particular un día calendario "2026-03-01") se ancla en loc,
// así su mes no cambia al agruparlo en esa misma zona.
func ParseDateIn(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("keystone: fecha vacía")
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	// Prisma sobre SQLite guarda DateTime como milisegundos Unix.
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), nil
	}
	if ms, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(ms) && !math.IsInf(ms, 0) {
		return time.UnixMilli(int64(ms)).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("keystone: fecha %q no reconocida", s)
}

// CalendarDay toma año, mes y día de t tal como están escritos y los ancla a
// medianoche en loc. Sirve para columnas DATE que el driver entrega en UTC.
func CalendarDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// DateValue equivale a DateValueIn con UTC.
func DateValue(v any) (time.Time, error) {
	return DateValueIn(v, time.UTC)
}

// DateValueIn convierte el valor crudo de una columna de fecha; el texto sin zona se ancla en loc.
func DateValueIn(v any, loc *time.Location) (time.Time, error) {
	switch x := v.(type) {
	case time.Time:
		return x, nil
	case string:
		return ParseDateIn(x, loc)
	case []byte:
		return ParseDateIn(string(x), loc)
	case int64:
		return time.UnixMilli(x).UTC(), nil
	case float64:
		return time.UnixMilli(int64(x)).UTC(), nil
	case nil:
		return time.Time{}, fmt.Errorf("keystone: fecha nula")
	default:
		return time.Time{}, fmt.Errorf("keystone: tipo de fecha %T no soportado", v)
	}
}
