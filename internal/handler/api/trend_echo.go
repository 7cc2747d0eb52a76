package api

import (
	"time"

	"TrendGate/internal/domain/models"
	"TrendGate/internal/usecase"
	xhttp "TrendGate/pkg/http"
	xlogger "TrendGate/pkg/logger"
	"TrendGate/pkg/util"

	"github.com/labstack/echo/v4"
)

// TrendEchoHandler serves filter decisions over HTTP.
type TrendEchoHandler struct {
	logger   *xlogger.Logger
	filter   *usecase.TrendFilter
	pairlist *usecase.PairlistUseCase
	now      func() time.Time
}

func NewTrendEchoHandler(logger *xlogger.Logger, filter *usecase.TrendFilter, pairlist *usecase.PairlistUseCase) *TrendEchoHandler {
	return &TrendEchoHandler{
		logger:   logger.With("api"),
		filter:   filter,
		pairlist: pairlist,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (h *TrendEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/trend/evaluate", h.Evaluate)
	g.GET("/trend/status", h.Status)
	g.POST("/pairlist/filter", h.FilterPairlist)
	e.GET("/healthz", h.Health)
}

// Evaluate decides a single symbol.
func (h *TrendEchoHandler) Evaluate(c echo.Context) error {
	req := &models.EvaluateRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	at, err := h.resolveTime(req.At)
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}

	d := h.filter.Decide(c.Request().Context(), req.Symbol, at)
	return xhttp.SuccessResponse(c, d)
}

// FilterPairlist splits a whitelist into kept and removed symbols.
func (h *TrendEchoHandler) FilterPairlist(c echo.Context) error {
	req := &models.PairlistRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	at, err := h.resolveTime(req.At)
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}

	res := h.pairlist.Filter(c.Request().Context(), usecase.FilterParams{Symbols: req.Symbols, Now: at})
	h.logger.Debug("pairlist filtered",
		xlogger.Int("requested", len(req.Symbols)),
		xlogger.Int("kept", len(res.Kept)),
	)
	return xhttp.SuccessResponse(c, models.PairlistResponse{Kept: res.Kept, Removed: res.Removed})
}

// Status reports the filter configuration and counters.
func (h *TrendEchoHandler) Status(c echo.Context) error {
	return xhttp.SuccessResponse(c, models.StatusResponse{
		Description:  h.filter.Description(),
		NeedsTickers: h.filter.NeedsTickers(),
		Enabled:      h.filter.Enabled(),
		CacheSize:    h.filter.CacheSize(),
		Config:       h.filter.Config(),
		Stats:        h.pairlist.Stats(),
	})
}

func (h *TrendEchoHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, "ok")
}

func (h *TrendEchoHandler) resolveTime(s string) (time.Time, error) {
	if s == "" {
		return h.now(), nil
	}
	t, ok := util.ParseTime(s)
	if !ok {
		return time.Time{}, xhttp.BadRequestError("at", "at must be RFC3339, unix seconds or unix milliseconds")
	}
	return t, nil
}
