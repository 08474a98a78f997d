package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"photoshare/internal/logging"
	"photoshare/internal/service"
)

// StatsHandler serves the aggregated per-user views.
type StatsHandler struct {
	aggregation service.AggregationService
	log         logging.Logger
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(aggregation service.AggregationService, log logging.Logger) *StatsHandler {
	return &StatsHandler{aggregation: aggregation, log: log}
}

// PhotoCounts godoc
// @Summary Photo count per user
// @Tags stats
// @Produce json
// @Success 200 {object} map[string]int64
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /photo/counts [get]
func (h *StatsHandler) PhotoCounts(c echo.Context) error {
	counts, err := h.aggregation.PhotoCountsByUser(c.Request().Context())
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, counts)
}

// CommentCounts godoc
// @Summary Comment count per user
// @Tags stats
// @Produce json
// @Success 200 {object} map[string]int64
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /comment/counts [get]
func (h *StatsHandler) CommentCounts(c echo.Context) error {
	counts, err := h.aggregation.CommentCountsByUser(c.Request().Context())
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, counts)
}

// CommentsByUser godoc
// @Summary Every comment written by a user
// @Tags stats
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {array} model.UserComment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /commentsByUser/{userId} [get]
func (h *StatsHandler) CommentsByUser(c echo.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return fail(c, h.log, err)
	}
	comments, err := h.aggregation.CommentsByUser(c.Request().Context(), userID)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, comments)
}
