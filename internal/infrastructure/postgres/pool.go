package postgres

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"

	"github.com/jhoicas/rentas-dashboard/pkg/config"
	"github.com/jhoicas/rentas-dashboard/pkg/logger"
)

const applicationName = "rentas-dashboard"

// NewPool abre un pool pequeño hacia la base de Keystone. Todas las sesiones arrancan
// con default_transaction_read_only: el dashboard nunca escribe.
func NewPool(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*pgxpool.Pool, error) {
	if log == nil {
		log = logger.Nop()
	}
	poolConfig, err := pgxpool.ParseConfig(preferIPv4(cfg.ConnectionString()))
	if err != nil {
		return nil, fmt.Errorf("postgres.NewPool: parse DSN: %w", err)
	}

	poolConfig.MaxConns = 4
	poolConfig.MinConns = 0
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 10 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	rp := poolConfig.ConnConfig.RuntimeParams
	rp["application_name"] = applicationName
	rp["default_transaction_read_only"] = "on"
	// Prisma guarda DateTime como timestamp sin zona en UTC.
	rp["timezone"] = "UTC"

	poolConfig.ConnConfig.Tracer = &tracelog.TraceLog{
		Logger:   queryLogger(log),
		LogLevel: tracelog.LogLevelWarn,
	}

	// NUMERIC -> shopspring/decimal en cada conexión.
	poolConfig.AfterConnect = func(_ context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("postgres.NewPool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres.NewPool: ping: %w", err)
	}
	return pool, nil
}

// queryLogger reenvía los eventos de pgx (errores de consulta y conexión) al logger del componente.
func queryLogger(log *logger.Logger) tracelog.Logger {
	return tracelog.LoggerFunc(func(_ context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
		switch level {
		case tracelog.LogLevelError:
			log.Error().Fields(data).Msg(msg)
		case tracelog.LogLevelWarn:
			log.Warn().Fields(data).Msg(msg)
		default:
			log.Debug().Fields(data).Msg(msg)
		}
	})
}

// preferIPv4 cambia el host de una URL postgres:// por su IPv4 cuando la hay
// (en Docker suele no haber ruta IPv6). Un DSN key=value queda igual.
func preferIPv4(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.Host == "" {
		return dsn
	}
	ip, ok := lookupIPv4(u.Hostname())
	if !ok {
		return dsn
	}
	port := u.Port()
	if port == "" {
		port = "5432"
	}
	u.Host = net.JoinHostPort(ip, port)
	return u.String()
}

func lookupIPv4(host string) (string, bool) {
	if ip := net.ParseIP(host); ip != nil {
		return host, ip.To4() != nil
	}
	ips, err := net.LookupIP(host)
	if err != nil {
		return "", false
	}
	for _, ip := range ips {
		if v4 := ip.To4(); v4 != nil {
			return v4.String(), true
		}
	}
	return "", false
}
