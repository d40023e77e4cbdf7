package http

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rentas-dashboard/internal/application/dashboard"
	"github.com/jhoicas/rentas-dashboard/internal/application/dto"
	"github.com/jhoicas/rentas-dashboard/internal/domain"
	"github.com/jhoicas/rentas-dashboard/internal/infrastructure/echarts"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// chartView un contenedor de gráfico con sus opciones de ECharts.
type chartView struct {
	ID      string
	Title   string
	Height  string
	Options template.JS
}

type pageData struct {
	Title     string
	Loading   bool
	Error     string
	FetchedAt string
	Total     chartView
	Malls     []chartView
	Summaries []dto.MallSummaryDTO
}

// PageHandler renderiza la página HTML del dashboard.
type PageHandler struct {
	uc *dashboard.UseCase
}

// NewPageHandler construye el handler.
func NewPageHandler(uc *dashboard.UseCase) *PageHandler {
	return &PageHandler{uc: uc}
}

// Dashboard GET /dashboard.
// Mientras no hay datos muestra "Loading..."; si la lectura falló, "Error: <mensaje>".
func (h *PageHandler) Dashboard(c *fiber.Ctx) error {
	data := pageData{Title: dashboard.PageTitle}
	status := fiber.StatusOK

	view, err := h.uc.GetDashboard(c.Context())
	switch {
	case errors.Is(err, domain.ErrFetchPending):
		data.Loading = true
	case err != nil:
		data.Error = err.Error()
		status = fiber.StatusBadGateway
	default:
		if err := fillCharts(&data, view); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return render(c, status, "dashboard.html", data)
}

// Login GET /login.
func (h *PageHandler) Login(c *fiber.Ctx) error {
	return render(c, fiber.StatusOK, "login.html", pageData{Title: dashboard.PageTitle})
}

func fillCharts(data *pageData, view *dto.DashboardDTO) error {
	data.FetchedAt = view.FetchedAt.Format("2006-01-02 15:04")
	data.Summaries = view.Summaries

	total, err := newChartView("total-chart", view.Total, echarts.TotalChartHeight)
	if err != nil {
		return err
	}
	data.Total = total

	data.Malls = make([]chartView, 0, len(view.Malls))
	for i, m := range view.Malls {
		cv, err := newChartView(fmt.Sprintf("mall-chart-%d", i), m, echarts.MallChartHeight)
		if err != nil {
			return err
		}
		data.Malls = append(data.Malls, cv)
	}
	return nil
}

func newChartView(id string, c dto.ChartDTO, height string) (chartView, error) {
	raw, err := echarts.OptionsJSON(c, height)
	if err != nil {
		return chartView{}, err
	}
	// json.Marshal escapa <, > y &, así que el JSON es seguro dentro de <script>.
	return chartView{ID: id, Title: c.Title, Height: height, Options: template.JS(raw)}, nil
}

func render(c *fiber.Ctx, status int, name string, data pageData) error {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("http.render %s: %w", name, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(buf.Bytes())
}
