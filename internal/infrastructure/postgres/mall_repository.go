package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/rentas-dashboard/internal/domain/entity"
	"github.com/jhoicas/rentas-dashboard/internal/domain/repository"
	"github.com/jhoicas/rentas-dashboard/internal/infrastructure/keystone"
	"github.com/jhoicas/rentas-dashboard/pkg/logger"
)

var _ repository.MallRepository = (*MallRepo)(nil)

// mallPaymentsQuery lee las tablas que Prisma genera para las listas Mall, Store y Payment de Keystone.
// Los montos se castean a NUMERIC para que sirva tanto un campo float como uno decimal.
// date_only marca un campo calendarDay (columna DATE): su día se ancla en la zona del dashboard.
const mallPaymentsQuery = `
	SELECT
	    m.id,
	    m.name,
	    s.id,
	    s.name,
	    COALESCE(s."rentAmount", 0)::NUMERIC  AS rent_amount,
	    p.id,
	    COALESCE(p.amount, 0)::NUMERIC        AS amount,
	    p."paymentDate"::TIMESTAMPTZ          AS payment_date,
    pg_typeof(p."paymentDate") = 'date'::regtype AS date_only
	FROM "Mall" m
	LEFT JOIN "Store"   s ON s.mall  = m.id
	LEFT JOIN "Payment" p ON p.store = s.id
	ORDER BY m.id, s.id, p."paymentDate", p.id`

// MallRepo lectura del snapshot directamente desde la base PostgreSQL de Keystone.
type MallRepo struct {
	tx  *TxRunner
	loc *time.Location
	log *logger.Logger
}

// NewMallRepository construye el adaptador. loc es la zona de los días calendario (nil = UTC).
func NewMallRepository(pool *pgxpool.Pool, loc *time.Location, log *logger.Logger) *MallRepo {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = logger.Nop()
	}
	return &MallRepo{tx: NewTxRunner(pool), loc: loc, log: log}
}

// ListMalls ejecuta una única consulta en una transacción de solo lectura y arma malls → stores → pagos.
func (r *MallRepo) ListMalls(ctx context.Context) ([]entity.Mall, error) {
	var malls []entity.Mall
	err := r.tx.ReadOnly(ctx, func(q Querier) error {
		var err error
		malls, err = r.listMalls(ctx, q)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("postgres.ListMalls: %w", err)
	}
	return malls, nil
}

func (r *MallRepo) listMalls(ctx context.Context, q Querier) ([]entity.Mall, error) {
	rows, err := q.Query(ctx, mallPaymentsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	b := keystone.NewBuilder()
	for rows.Next() {
		var (
			row         keystone.Row
			rent        decimal.Decimal
			amount      decimal.Decimal
			paymentDate *time.Time
			dateOnly    bool
		)
		if err := rows.Scan(
			&row.MallID,
			&row.MallName,
			&row.StoreID,
			&row.StoreName,
			&rent,
			&row.PaymentID,
			&amount,
			&paymentDate,
			&dateOnly,
		); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		row.RentAmount = rent.InexactFloat64()
		row.Amount = amount.InexactFloat64()
		switch {
		case paymentDate != nil && dateOnly:
			// la sesión corre en UTC: el DATE llega como medianoche UTC
			row.PaymentDate = keystone.CalendarDay(paymentDate.UTC(), r.loc)
		case paymentDate != nil:
			row.PaymentDate = *paymentDate
		case row.PaymentID != nil:
			r.log.Warn().Str("payment_id", *row.PaymentID).Msg("pago sin paymentDate; se omite de las series")
		}
		b.Add(row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return b.Malls(), nil
}
