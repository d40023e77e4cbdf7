package repository

import (
	"context"

	"github.com/jhoicas/rentas-dashboard/internal/domain/entity"
)

// MallRepository obtiene el snapshot completo de malls con sus stores y pagos.
// Es una lectura única y sin filtros: no hay paginación ni ordenamiento configurable.
// Las implementaciones preservan el orden de la fuente.
type MallRepository interface {
	ListMalls(ctx context.Context) ([]entity.Mall, error)
}
