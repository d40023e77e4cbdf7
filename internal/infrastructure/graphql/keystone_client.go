// Package graphql implementa repository.MallRepository contra la API GraphQL del admin de Keystone.
package graphql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rentas-dashboard/internal/domain/entity"
	"github.com/jhoicas/rentas-dashboard/internal/domain/repository"
	"github.com/jhoicas/rentas-dashboard/internal/infrastructure/keystone"
	"github.com/jhoicas/rentas-dashboard/pkg/logger"
)

// MallPaymentsQuery consulta fija: todo el dataset, sin paginación ni filtros.
const MallPaymentsQuery = `query GetMallPayments {
  malls {
    id
    name
    stores {
      id
      name
      rentAmount
      payments {
        id
        amount
        paymentDate
      }
    }
  }
}`

const sessionCookieName = "keystonejs-session"

var _ repository.MallRepository = (*KeystoneClient)(nil)

// Config parámetros de conexión.
type Config struct {
	URL           string
	Token         string
	SessionCookie string
	Timeout       time.Duration
	Location      *time.Location // zona en la que se anclan los días calendario (nil = UTC)
}

// KeystoneClient cliente HTTP de la API GraphQL (usa el Agent de Fiber sobre fasthttp).
type KeystoneClient struct {
	cfg Config
	log *logger.Logger
}

// NewKeystoneClient construye el cliente.
func NewKeystoneClient(cfg Config, log *logger.Logger) *KeystoneClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if log == nil {
		log = logger.Nop()
	}
	return &KeystoneClient{cfg: cfg, log: log}
}

// ── Wire format ───────────────────────────────────────────────────────────────

type request struct {
	OperationName string         `json:"operationName"`
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables"`
}

type gqlError struct {
	Message string `json:"message"`
}

type response struct {
	Data *struct {
		Malls []mallDTO `json:"malls"`
	} `json:"data"`
	Errors []gqlError `json:"errors"`
}

type mallDTO struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	Stores []storeDTO `json:"stores"`
}

type storeDTO struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	RentAmount *float64     `json:"rentAmount"`
	Payments   []paymentDTO `json:"payments"`
}

type paymentDTO struct {
	ID          string   `json:"id"`
	Amount      *float64 `json:"amount"`
	PaymentDate *string  `json:"paymentDate"`
}

// ── Operación ─────────────────────────────────────────────────────────────────

// ListMalls ejecuta MallPaymentsQuery. Fallos de transporte, de autorización y
// respuestas malformadas se devuelven todos como error, sin reintentos.
func (c *KeystoneClient) ListMalls(ctx context.Context) ([]entity.Mall, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("graphql.ListMalls: %w", err)
	}

	timeout := c.cfg.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	agent := fiber.Post(c.cfg.URL)
	agent.Timeout(timeout)
	agent.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	if c.cfg.Token != "" {
		agent.Set(fiber.HeaderAuthorization, "Bearer "+c.cfg.Token)
	}
	if c.cfg.SessionCookie != "" {
		agent.Cookie(sessionCookieName, c.cfg.SessionCookie)
	}
	agent.JSON(request{OperationName: "GetMallPayments", Query: MallPaymentsQuery, Variables: map[string]any{}})

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("graphql.ListMalls: %w", errors.Join(errs...))
	}

	var resp response
	decodeErr := json.Unmarshal(body, &resp)

	// Keystone devuelve errores GraphQL también con status 200 (y a veces 400).
	if decodeErr == nil && len(resp.Errors) > 0 {
		return nil, fmt.Errorf("graphql.ListMalls: %s", joinMessages(resp.Errors))
	}
	if code < 200 || code >= 300 {
		return nil, fmt.Errorf("graphql.ListMalls: status HTTP %d", code)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("graphql.ListMalls: decodificar respuesta: %w", decodeErr)
	}
	if resp.Data == nil {
		return nil, fmt.Errorf("graphql.ListMalls: respuesta sin data")
	}

	return c.toEntities(resp.Data.Malls), nil
}

func (c *KeystoneClient) toEntities(in []mallDTO) []entity.Mall {
	malls := make([]entity.Mall, 0, len(in))
	for _, m := range in {
		mall := entity.Mall{ID: m.ID, Name: m.Name, Stores: make([]entity.Store, 0, len(m.Stores))}
		for _, s := range m.Stores {
			store := entity.Store{ID: s.ID, Name: s.Name, RentAmount: deref(s.RentAmount), Payments: make([]entity.Payment, 0, len(s.Payments))}
			for _, p := range s.Payments {
				store.Payments = append(store.Payments, entity.Payment{
					ID:          p.ID,
					Amount:      deref(p.Amount),
					PaymentDate: c.paymentDate(p),
				})
			}
			mall.Stores = append(mall.Stores, store)
		}
		malls = append(malls, mall)
	}
	return malls
}

// paymentDate deja la fecha en cero si no se puede interpretar: el pago queda fuera de todo mes.
func (c *KeystoneClient) paymentDate(p paymentDTO) time.Time {
	if p.PaymentDate == nil {
		c.log.Warn().Str("payment_id", p.ID).Msg("pago sin paymentDate; se omite de las series")
		return time.Time{}
	}
	t, err := keystone.ParseDateIn(*p.PaymentDate, c.cfg.Location)
	if err != nil {
		c.log.Warn().Err(err).Str("payment_id", p.ID).Msg("paymentDate inválida; se omite de las series")
		return time.Time{}
	}
	return t
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func joinMessages(errs []gqlError) string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}
