package http

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rentas-dashboard/internal/application/dashboard"
	"github.com/jhoicas/rentas-dashboard/internal/application/dto"
	"github.com/jhoicas/rentas-dashboard/internal/domain"
)

// ReportGenerator contrato común de los generadores PDF y XLSX.
type ReportGenerator interface {
	Generate(ctx context.Context, view *dto.DashboardDTO) ([]byte, error)
}

// DashboardHandler maneja los endpoints JSON y de reportes del dashboard.
type DashboardHandler struct {
	uc   *dashboard.UseCase
	pdf  ReportGenerator
	xlsx ReportGenerator
}

// NewDashboardHandler construye el handler. pdf y xlsx pueden ser nil: el reporte responde 404.
func NewDashboardHandler(uc *dashboard.UseCase, pdf, xlsx ReportGenerator) *DashboardHandler {
	return &DashboardHandler{uc: uc, pdf: pdf, xlsx: xlsx}
}

// Get godoc
// @Summary      Dashboard completo
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardDTO
// @Success      202  {object}  dto.StatusResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	view, err := h.uc.GetDashboard(c.Context())
	if err != nil {
		return writeStateError(c, err)
	}
	return c.JSON(view)
}

// TotalChart filas planas del gráfico consolidado.
// GET /api/dashboard/charts/total
func (h *DashboardHandler) TotalChart(c *fiber.Ctx) error {
	rows, err := h.uc.TotalChartRows(c.Context())
	if err != nil {
		return writeStateError(c, err)
	}
	return c.JSON(rows)
}

// MallsChart filas planas con dos columnas por mall.
// GET /api/dashboard/charts/malls
func (h *DashboardHandler) MallsChart(c *fiber.Ctx) error {
	rows, err := h.uc.MallChartRows(c.Context())
	if err != nil {
		return writeStateError(c, err)
	}
	return c.JSON(rows)
}

// Summaries tarjetas resumen del mes en curso.
// GET /api/dashboard/summaries
func (h *DashboardHandler) Summaries(c *fiber.Ctx) error {
	sums, err := h.uc.Summaries(c.Context())
	if err != nil {
		return writeStateError(c, err)
	}
	return c.JSON(sums)
}

// Refresh vuelve a leer la fuente y devuelve la vista nueva.
// POST /api/dashboard/refresh
func (h *DashboardHandler) Refresh(c *fiber.Ctx) error {
	if err := h.uc.Refresh(c.Context()); err != nil {
		return writeStateError(c, err)
	}
	return h.Get(c)
}

// ReportPDF descarga el reporte en PDF.
// GET /api/dashboard/report.pdf
func (h *DashboardHandler) ReportPDF(c *fiber.Ctx) error {
	return h.report(c, h.pdf, "application/pdf", "pdf")
}

// ReportXLSX descarga el libro Excel.
// GET /api/dashboard/report.xlsx
func (h *DashboardHandler) ReportXLSX(c *fiber.Ctx) error {
	return h.report(c, h.xlsx, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "xlsx")
}

func (h *DashboardHandler) report(c *fiber.Ctx, gen ReportGenerator, contentType, ext string) error {
	if gen == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "reporte " + ext + " no disponible"})
	}
	view, err := h.uc.GetDashboard(c.Context())
	if err != nil {
		return writeStateError(c, err)
	}
	out, err := gen.Generate(c.Context(), view)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "REPORT_ERROR", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="rent-dashboard-%d.%s"`, view.Year, ext))
	return c.Send(out)
}

// writeStateError traduce el estado del snapshot a HTTP:
// Pending → 202 {"status":"loading"}; FetchError → 502 con el mensaje tal cual.
func writeStateError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrFetchPending):
		return c.Status(fiber.StatusAccepted).JSON(dto.StatusResponse{Status: string(dashboard.StatusPending)})
	case errors.Is(err, domain.ErrFetch):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "FETCH_ERROR", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
