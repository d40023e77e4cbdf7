// Package money formatea montos float64 para presentación (2 decimales, símbolo de moneda).
package money

import "github.com/shopspring/decimal"

// Fixed2 devuelve el monto con exactamente dos decimales ("1000.00").
// Redondea half-up sobre la representación decimal del float, no sobre su binario.
func Fixed2(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(2)
}

// Format antepone el símbolo de moneda: Format("$", 1234.5) = "$1234.50".
// El signo va antes del símbolo: Format("$", -12.5) = "-$12.50".
func Format(symbol string, amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)
	if d.IsNegative() {
		return "-" + symbol + d.Neg().StringFixed(2)
	}
	return symbol + d.StringFixed(2)
}

// Round2 redondea a 2 decimales para respuestas JSON.
func Round2(amount float64) float64 {
	return decimal.NewFromFloat(amount).Round(2).InexactFloat64()
}
