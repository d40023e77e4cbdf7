// export genera el reporte del dashboard (PDF o XLSX) sin levantar el servidor.
//
// Uso: go run ./cmd/export --format pdf --out rent-dashboard.pdf
// Lee la misma configuración que cmd/api (DATA_SOURCE, KEYSTONE_GRAPHQL_URL, ...).
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/jhoicas/rentas-dashboard/internal/application/dashboard"
	"github.com/jhoicas/rentas-dashboard/internal/application/dto"
	infrapdf "github.com/jhoicas/rentas-dashboard/internal/infrastructure/pdf"
	"github.com/jhoicas/rentas-dashboard/internal/infrastructure/source"
	infraxlsx "github.com/jhoicas/rentas-dashboard/internal/infrastructure/xlsx"
	"github.com/jhoicas/rentas-dashboard/pkg/config"
	"github.com/jhoicas/rentas-dashboard/pkg/logger"
)

type generator interface {
	Generate(ctx context.Context, view *dto.DashboardDTO) ([]byte, error)
}

func main() {
	format := pflag.StringP("format", "f", "pdf", "formato de salida: pdf | xlsx")
	out := pflag.StringP("out", "o", "", "archivo destino (por defecto rent-dashboard-<año>.<formato>)")
	pflag.Parse()

	if err := run(strings.ToLower(*format), *out); err != nil {
		fmt.Fprintf(os.Stderr, "export: %v\n", err)
		os.Exit(1)
	}
}

func run(format, out string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Out: os.Stderr})

	var gen generator
	switch format {
	case "pdf":
		gen = infrapdf.NewReportGenerator(cfg.App.CurrencySymbol, cfg.App.PublicURL)
	case "xlsx":
		gen = infraxlsx.NewWorkbookGenerator()
	default:
		return fmt.Errorf("formato %q no soportado (pdf|xlsx)", format)
	}

	ctx := context.Background()
	repo, closeRepo, err := source.Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeRepo()

	loader := dashboard.NewLoader(repo, dashboard.LoaderConfig{
		Timeout:  cfg.Source.FetchTimeout,
		Location: cfg.App.Location(),
	}, log.Named("loader"))
	if err := loader.Refresh(ctx); err != nil {
		return err
	}

	view, err := dashboard.NewUseCase(loader, time.Now, cfg.App.CurrencySymbol).GetDashboard(ctx)
	if err != nil {
		return err
	}
	data, err := gen.Generate(ctx, view)
	if err != nil {
		return err
	}

	if out == "" {
		out = fmt.Sprintf("rent-dashboard-%d.%s", view.Year, format)
	}
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("crear directorio: %w", err)
		}
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("escribir %s: %w", out, err)
	}
	log.Info().Str("file", out).Int("bytes", len(data)).Int("malls", len(view.Malls)).Msg("reporte generado")
	return nil
}
