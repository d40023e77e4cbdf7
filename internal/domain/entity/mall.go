package entity

import "time"

// Mall agrupa un conjunto ordenado de locales (Store).
type Mall struct {
	ID     string
	Name   string
	Stores []Store
}

// Store es un local con canon de arriendo mensual fijo y su historial de pagos.
// RentAmount no varía por mes: no existe un calendario histórico de arriendos.
type Store struct {
	ID         string
	Name       string
	RentAmount float64
	Payments   []Payment
}

// Payment es un pago fechado de un Store. Amount puede ser mayor o menor que el arriendo.
// PaymentDate en cero indica una fecha que no se pudo interpretar.
type Payment struct {
	ID          string
	Amount      float64
	PaymentDate time.Time
}
