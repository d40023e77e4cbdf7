package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/rentas-dashboard/internal/domain"
	"github.com/jhoicas/rentas-dashboard/internal/domain/entity"
	"github.com/jhoicas/rentas-dashboard/internal/domain/rent"
	"github.com/jhoicas/rentas-dashboard/internal/domain/repository"
	"github.com/jhoicas/rentas-dashboard/pkg/logger"
)

// Status estado del snapshot.
type Status string

const (
	StatusPending Status = "loading"
	StatusFailed  Status = "error"
	StatusReady   Status = "ready"
)

// FetchError cualquier fallo de la fuente (transporte, autorización, respuesta malformada).
// Error() devuelve el mensaje de la causa sin adornos: es lo que se muestra al usuario.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string { return e.Err.Error() }

// Unwrap permite errors.Is(err, domain.ErrFetch) y también llegar a la causa.
func (e *FetchError) Unwrap() []error { return []error{domain.ErrFetch, e.Err} }

// Snapshot malls obtenidos en una lectura más las series derivadas para Year.
// Es inmutable una vez publicado.
type Snapshot struct {
	Version   uint64
	FetchedAt time.Time
	Malls     []entity.Mall
	Year      int
	PerMall   []rent.MallMonth
	Total     []rent.TotalMonth
}

// State estado publicado por el Loader.
type State struct {
	Status   Status
	Snapshot *Snapshot
	Err      error
}

// LoaderConfig parámetros del Loader.
type LoaderConfig struct {
	Timeout  time.Duration
	Location *time.Location
	Now      func() time.Time
}

// Loader obtiene el snapshot desde el repositorio y publica su estado.
// Antes del primer resultado el estado es Pending. No reintenta: un fallo queda
// publicado hasta el siguiente Refresh explícito o programado.
type Loader struct {
	repo    repository.MallRepository
	timeout time.Duration
	loc     *time.Location
	now     func() time.Time
	log     *logger.Logger

	mu      sync.RWMutex
	state   State
	version uint64
	group   singleflight.Group
}

// NewLoader construye el Loader en estado Pending.
func NewLoader(repo repository.MallRepository, cfg LoaderConfig, log *logger.Logger) *Loader {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Loader{
		repo:    repo,
		timeout: cfg.Timeout,
		loc:     cfg.Location,
		now:     cfg.Now,
		log:     log,
		state:   State{Status: StatusPending},
	}
}

// Start lanza la primera lectura en segundo plano.
func (l *Loader) Start(ctx context.Context) {
	go func() {
		_ = l.Refresh(ctx)
	}()
}

// Refresh lee de nuevo la fuente y reemplaza el estado. Si ya hay una lectura en
// curso, espera esa misma y devuelve su resultado.
func (l *Loader) Refresh(ctx context.Context) error {
	ch := l.group.DoChan("refresh", func() (any, error) {
		return nil, l.fetch(ctx)
	})
	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *Loader) fetch(ctx context.Context) error {
	fetchCtx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	started := time.Now()
	malls, err := l.repo.ListMalls(fetchCtx)
	elapsed := time.Since(started)

	if err != nil {
		fe := &FetchError{Err: err}
		l.log.Error().Err(err).Dur("elapsed", elapsed).Msg("lectura de malls fallida")
		l.mu.Lock()
		l.state = State{Status: StatusFailed, Err: fe}
		l.mu.Unlock()
		return fe
	}

	now := l.now().In(l.loc)
	l.mu.Lock()
	l.version++
	snap := buildSnapshot(l.version, now, malls, now.Year(), l.loc)
	l.state = State{Status: StatusReady, Snapshot: snap}
	l.mu.Unlock()

	l.log.Info().
		Int("malls", len(malls)).
		Uint64("version", snap.Version).
		Dur("elapsed", elapsed).
		Msg("snapshot actualizado")
	return nil
}

// State devuelve el estado actual. Si el snapshot se calculó para un año que ya
// terminó, recalcula las series para el año en curso (mismos malls, misma versión).
func (l *Loader) State() State {
	year := l.now().In(l.loc).Year()

	l.mu.RLock()
	st := l.state
	l.mu.RUnlock()
	if st.Status != StatusReady || st.Snapshot.Year == year {
		return st
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state.Status == StatusReady && l.state.Snapshot.Year != year {
		old := l.state.Snapshot
		l.state.Snapshot = buildSnapshot(old.Version, old.FetchedAt, old.Malls, year, l.loc)
	}
	return l.state
}

// Location zona usada para asignar pagos a meses.
func (l *Loader) Location() *time.Location { return l.loc }

// ScheduleRefresh programa Refresh con una expresión cron estándar de 5 campos o un descriptor ("@every 5m").
// El llamador debe invocar Stop() sobre el cron devuelto.
func (l *Loader) ScheduleRefresh(ctx context.Context, spec string) (*cron.Cron, error) {
	c := cron.New(cron.WithLogger(l.log.Cron()))
	if _, err := c.AddFunc(spec, func() {
		if err := l.Refresh(ctx); err != nil {
			l.log.Warn().Err(err).Msg("refresco programado fallido")
		}
	}); err != nil {
		return nil, fmt.Errorf("dashboard: programación %q inválida: %w", spec, err)
	}
	c.Start()
	return c, nil
}

func buildSnapshot(version uint64, fetchedAt time.Time, malls []entity.Mall, year int, loc *time.Location) *Snapshot {
	return &Snapshot{
		Version:   version,
		FetchedAt: fetchedAt,
		Malls:     malls,
		Year:      year,
		PerMall:   rent.PerMallSeries(malls, year, loc),
		Total:     rent.TotalSeries(malls, year, loc),
	}
}
