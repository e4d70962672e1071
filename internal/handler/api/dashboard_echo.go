package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"MacroPulse/internal/domain/models"
	"MacroPulse/internal/service/ratelimit"
	"MacroPulse/internal/usecase"
	xhttp "MacroPulse/pkg/http"
	xlogger "MacroPulse/pkg/logger"
	"MacroPulse/pkg/util"
)

// DashboardEchoHandler serves the dashboard JSON API.
type DashboardEchoHandler struct {
	logger    *xlogger.Logger
	dashboard *usecase.Dashboard
	limiter   *ratelimit.Limiter
}

// NewDashboardEchoHandler creates the handler. limiter guards the expensive endpoints
// (insight, refresh); nil disables limiting.
func NewDashboardEchoHandler(logger *xlogger.Logger, dashboard *usecase.Dashboard, limiter *ratelimit.Limiter) *DashboardEchoHandler {
	return &DashboardEchoHandler{logger: logger, dashboard: dashboard, limiter: limiter}
}

func (h *DashboardEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/metrics", h.Metrics)
	g.GET("/series", h.Series)
	g.GET("/correlations", h.Correlations)
	g.POST("/insight", h.Insight, h.rateLimited)
	g.POST("/refresh", h.Refresh, h.rateLimited)
	g.GET("/health", h.Health)
}

func (h *DashboardEchoHandler) rateLimited(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !h.limiter.Allow(c.Path() + "|" + c.RealIP()) {
			return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("too many requests, try again shortly"))
		}
		return next(c)
	}
}

func (h *DashboardEchoHandler) Metrics(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderCacheControl, "public, max-age=3600")
	return xhttp.SuccessResponse(c, h.dashboard.Fields())
}

func (h *DashboardEchoHandler) Series(c echo.Context) error {
	req := &models.SeriesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	fields, err := selection(util.SplitCSV(req.Fields))
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	window, _ := models.ParseWindow(req.Range)

	res, err := h.dashboard.Series(c.Request().Context(), window, models.Mode(req.Mode), fields)
	if err != nil {
		h.logger.Error("series usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *DashboardEchoHandler) Correlations(c echo.Context) error {
	req := &models.CorrelationRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	fields, err := selection(util.SplitCSV(req.Fields))
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	window, _ := models.ParseWindow(req.Range)

	res, err := h.dashboard.Correlations(c.Request().Context(), window, fields)
	if err != nil {
		h.logger.Error("correlations usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *DashboardEchoHandler) Insight(c echo.Context) error {
	req := &models.InsightHTTPRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	fields, err := selection(req.Fields)
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	window, _ := models.ParseWindow(req.Range)

	res, err := h.dashboard.Insight(c.Request().Context(), window, fields)
	if err != nil {
		h.logger.Error("insight usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *DashboardEchoHandler) Refresh(c echo.Context) error {
	res, err := h.dashboard.Refresh(c.Request().Context())
	if err != nil {
		h.logger.Error("refresh usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("refresh failed").WithError(err))
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *DashboardEchoHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.dashboard.Health())
}

// selection validates field ids and maps failures to 400s.
func selection(ids []string) ([]models.Field, error) {
	fields, err := models.ParseSelection(ids)
	switch {
	case err == nil:
		return fields, nil
	case errors.Is(err, models.ErrTooManyFields):
		return nil, xhttp.NewAppError("ERR_TOO_MANY_FIELDS", "fields", err.Error(), http.StatusBadRequest).
			WithParam("max", models.MaxSelection)
	case errors.Is(err, models.ErrUnknownField):
		return nil, xhttp.NewAppError("ERR_UNKNOWN_FIELD", "fields", err.Error(), http.StatusBadRequest)
	default:
		return nil, xhttp.BadRequestError(err.Error())
	}
}
