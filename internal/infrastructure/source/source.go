// Package source elige el adaptador de lectura (GraphQL de Keystone, Postgres o SQLite)
// según DATA_SOURCE.
package source

import (
	"context"
	"fmt"

	"github.com/jhoicas/rentas-dashboard/internal/domain"
	"github.com/jhoicas/rentas-dashboard/internal/domain/repository"
	"github.com/jhoicas/rentas-dashboard/internal/infrastructure/graphql"
	"github.com/jhoicas/rentas-dashboard/internal/infrastructure/postgres"
	"github.com/jhoicas/rentas-dashboard/internal/infrastructure/sqlite"
	"github.com/jhoicas/rentas-dashboard/pkg/config"
	"github.com/jhoicas/rentas-dashboard/pkg/logger"
)

// Open construye el MallRepository configurado. closeFn libera conexiones y nunca es nil.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (repo repository.MallRepository, closeFn func(), err error) {
	if log == nil {
		log = logger.Nop()
	}
	noop := func() {}
	loc := cfg.App.Location()

	switch cfg.Source.Kind {
	case config.DataSourceGraphQL:
		client := graphql.NewKeystoneClient(graphql.Config{
			URL:           cfg.Keystone.GraphQLURL,
			Token:         cfg.Keystone.Token,
			SessionCookie: cfg.Keystone.SessionCookie,
			Timeout:       cfg.Source.FetchTimeout,
			Location:      loc,
		}, log.Named("graphql"))
		return client, noop, nil

	case config.DataSourcePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB, log.Named("postgres"))
		if err != nil {
			return nil, noop, fmt.Errorf("source.Open: %w", err)
		}
		return postgres.NewMallRepository(pool, loc, log.Named("postgres")), pool.Close, nil

	case config.DataSourceSQLite:
		r, err := sqlite.Open(cfg.SQLite.Path, loc, log.Named("sqlite"))
		if err != nil {
			return nil, noop, fmt.Errorf("source.Open: %w", err)
		}
		return r, func() { _ = r.Close() }, nil

	default:
		return nil, noop, fmt.Errorf("source.Open %q: %w", cfg.Source.Kind, domain.ErrUnknownDataSource)
	}
}
