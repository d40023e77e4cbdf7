package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/rentas-dashboard/internal/infrastructure/keystone"
)

const (
	dialectPostgres = "postgres"
	dialectSQLite   = "sqlite"
)

var requiredColumns = []string{"mall", "store", "rent_amount", "payment_amount", "payment_date"}

type seedPayment struct {
	id     string
	amount decimal.Decimal
	date   string // día calendario "2006-01-02" o instante RFC 3339 UTC
}

type seedStore struct {
	id       string
	name     string
	rent     decimal.Decimal
	payments []seedPayment
}

type seedMall struct {
	id     string
	name   string
	stores []*seedStore
}

type seedStats struct {
	malls, stores, payments int
}

// parseCSV agrupa las filas por mall y local conservando el orden de aparición.
func parseCSV(r io.Reader) ([]*seedMall, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("cabecera: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, c := range requiredColumns {
		if _, ok := col[c]; !ok {
			return nil, fmt.Errorf("falta la columna %q", c)
		}
	}

	var malls []*seedMall
	mallByName := map[string]*seedMall{}
	storeByKey := map[string]*seedStore{}

	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		get := func(name string) string { return strings.TrimSpace(rec[col[name]]) }

		mallName, storeName := get("mall"), get("store")
		if mallName == "" || storeName == "" {
			return nil, fmt.Errorf("línea %d: mall y store son obligatorios", line)
		}

		m, ok := mallByName[mallName]
		if !ok {
			m = &seedMall{id: uuid.NewString(), name: mallName}
			mallByName[mallName] = m
			malls = append(malls, m)
		}

		key := mallName + "\x00" + storeName
		s, ok := storeByKey[key]
		if !ok {
			rent, err := parseAmount(get("rent_amount"))
			if err != nil {
				return nil, fmt.Errorf("línea %d: rent_amount: %w", line, err)
			}
			s = &seedStore{id: uuid.NewString(), name: storeName, rent: rent}
			storeByKey[key] = s
			m.stores = append(m.stores, s)
		}

		if get("payment_amount") == "" {
			continue
		}
		amount, err := parseAmount(get("payment_amount"))
		if err != nil {
			return nil, fmt.Errorf("línea %d: payment_amount: %w", line, err)
		}
		date, err := normalizeDate(get("payment_date"))
		if err != nil {
			return nil, fmt.Errorf("línea %d: payment_date: %w", line, err)
		}
		s.payments = append(s.payments, seedPayment{
			id:     uuid.NewString(),
			amount: amount,
			date:   date,
		})
	}
	return malls, nil
}

// normalizeDate conserva un día calendario tal cual (el dashboard lo ancla en su zona)
// y lleva cualquier otro formato a RFC 3339 UTC.
func normalizeDate(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if _, err := time.Parse(keystone.DayLayout, raw); err == nil {
		return raw, nil
	}
	date, err := keystone.ParseDate(raw)
	if err != nil {
		return "", err
	}
	return date.UTC().Format("2006-01-02T15:04:05.000Z"), nil
}

// parseAmount acepta "1500", "1500.50" y "1500,50"; vacío es 0.
func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("monto negativo %s", s)
	}
	return d, nil
}

// writeSQL escribe los INSERT en el dialecto pedido dentro de una transacción.
func writeSQL(w io.Writer, malls []*seedMall, dialect string) (seedStats, error) {
	var q func(string) string
	switch dialect {
	case dialectPostgres:
		q = func(ident string) string { return `"` + ident + `"` }
	case dialectSQLite:
		q = func(ident string) string { return ident }
	default:
		return seedStats{}, fmt.Errorf("dialecto %q no soportado", dialect)
	}

	var stats seedStats
	var b strings.Builder
	b.WriteString("-- Datos de demostración para el Dashboard de Arriendos\n")
	b.WriteString("BEGIN;\n\n")
	for _, m := range malls {
		stats.malls++
		fmt.Fprintf(&b, "INSERT INTO %s (%s, %s) VALUES ('%s', '%s');\n",
			q("Mall"), q("id"), q("name"), m.id, escapeSQL(m.name))
		for _, s := range m.stores {
			stats.stores++
			fmt.Fprintf(&b, "INSERT INTO %s (%s, %s, %s, %s) VALUES ('%s', '%s', %s, '%s');\n",
				q("Store"), q("id"), q("name"), q("rentAmount"), q("mall"),
				s.id, escapeSQL(s.name), s.rent.StringFixed(2), m.id)
			for _, p := range s.payments {
				stats.payments++
				fmt.Fprintf(&b, "INSERT INTO %s (%s, %s, %s, %s) VALUES ('%s', %s, '%s', '%s');\n",
					q("Payment"), q("id"), q("amount"), q("paymentDate"), q("store"),
					p.id, p.amount.StringFixed(2), p.date, s.id)
			}
		}
		b.WriteString("\n")
	}
	b.WriteString("COMMIT;\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return stats, err
	}
	return stats, nil
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
