package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrFetchPending      = errors.New("datos en carga")
	ErrFetch             = errors.New("no se pudieron obtener los datos")
	ErrUnknownDataSource = errors.New("fuente de datos desconocida")
)
