// Package sqlite lee el snapshot desde la base SQLite de Keystone (provider "sqlite" de Prisma).
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jhoicas/rentas-dashboard/internal/domain/entity"
	"github.com/jhoicas/rentas-dashboard/internal/domain/repository"
	"github.com/jhoicas/rentas-dashboard/internal/infrastructure/keystone"
	"github.com/jhoicas/rentas-dashboard/pkg/logger"
)

var _ repository.MallRepository = (*MallRepo)(nil)

const mallPaymentsQuery = `
	SELECT
	    m.id,
	    m.name,
	    s.id,
	    s.name,
	    s.rentAmount,
	    p.id,
	    p.amount,
	    CAST(p.paymentDate AS TEXT)
	FROM Mall m
	LEFT JOIN Store   s ON s.mall  = m.id
	LEFT JOIN Payment p ON p.store = s.id
	ORDER BY m.id, s.id, p.paymentDate, p.id`

// MallRepo adaptador de solo lectura.
// Las fechas se leen como texto para que el driver no convierta un día calendario en medianoche UTC.
type MallRepo struct {
	db  *sql.DB
	loc *time.Location
	log *logger.Logger
}

// Open abre la base en modo solo lectura y verifica la conexión.
func Open(path string, loc *time.Location, log *logger.Logger) (*MallRepo, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return NewMallRepository(db, loc, log), nil
}

// NewMallRepository envuelve una conexión existente.
// loc es la zona en la que se anclan las fechas sin zona (nil = UTC).
func NewMallRepository(db *sql.DB, loc *time.Location, log *logger.Logger) *MallRepo {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = logger.Nop()
	}
	return &MallRepo{db: db, loc: loc, log: log}
}

// Close cierra la base.
func (r *MallRepo) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// ListMalls ejecuta una única consulta y arma malls → stores → pagos.
func (r *MallRepo) ListMalls(ctx context.Context) ([]entity.Mall, error) {
	rows, err := r.db.QueryContext(ctx, mallPaymentsQuery)
	if err != nil {
		return nil, fmt.Errorf("sqlite.ListMalls: %w", err)
	}
	defer rows.Close()

	b := keystone.NewBuilder()
	for rows.Next() {
		var (
			row       keystone.Row
			storeID   sql.NullString
			storeName sql.NullString
			rent      sql.NullFloat64
			paymentID sql.NullString
			amount    sql.NullFloat64
			rawDate   any
		)
		if err := rows.Scan(&row.MallID, &row.MallName, &storeID, &storeName, &rent, &paymentID, &amount, &rawDate); err != nil {
			return nil, fmt.Errorf("sqlite.ListMalls scan: %w", err)
		}
		row.StoreID = nullable(storeID)
		row.StoreName = nullable(storeName)
		row.RentAmount = rent.Float64
		row.PaymentID = nullable(paymentID)
		row.Amount = amount.Float64
		if row.PaymentID != nil {
			d, err := keystone.DateValueIn(rawDate, r.loc)
			if err != nil {
				r.log.Warn().Err(err).Str("payment_id", *row.PaymentID).Msg("paymentDate inválida; se omite de las series")
			}
			row.PaymentDate = d
		}
		b.Add(row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite.ListMalls rows: %w", err)
	}
	return b.Malls(), nil
}

func nullable(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
