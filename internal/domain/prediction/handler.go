package prediction

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/puvop/puvop/internal/domain/features"
	"github.com/puvop/puvop/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/predictions", h.CreatePrediction)
	api.GET("/predictions", h.ListPredictions)
	api.GET("/predictions/:id", h.GetPrediction)
	api.GET("/outcomes", h.ListOutcomes)
}

// CreatePrediction evaluates one patient submission across the requested
// outcomes and returns the per-outcome results.
func (h *Handler) CreatePrediction(c echo.Context) error {
	var req EvaluationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	eval, err := h.svc.Evaluate(c.Request().Context(), &req)
	if err != nil {
		var fieldErr *features.FieldError
		if errors.As(err, &fieldErr) || strings.HasPrefix(err.Error(), "unknown outcome") {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, eval)
}

func (h *Handler) GetPrediction(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	eval, err := h.svc.GetEvaluation(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "evaluation not found")
	}
	return c.JSON(http.StatusOK, eval)
}

func (h *Handler) ListPredictions(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListEvaluations(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

// ListOutcomes documents the loaded outcome models and their input schemas.
func (h *Handler) ListOutcomes(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.OutcomeDescriptors())
}
