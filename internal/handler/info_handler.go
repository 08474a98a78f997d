package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"photoshare/internal/logging"
	"photoshare/internal/service"
)

// InfoHandler serves the dataset diagnostics.
type InfoHandler struct {
	info service.InfoService
	log  logging.Logger
}

// NewInfoHandler creates a new info handler.
func NewInfoHandler(info service.InfoService, log logging.Logger) *InfoHandler {
	return &InfoHandler{info: info, log: log}
}

// Test godoc
// @Summary Dataset diagnostics
// @Description "info" returns the loaded schema version, "counts" the size of each collection.
// @Tags diagnostics
// @Produce json
// @Param p1 path string true "info or counts"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /test/{p1} [get]
func (h *InfoHandler) Test(c echo.Context) error {
	param := c.Param("p1")
	if param == "" {
		param = "info"
	}

	ctx := c.Request().Context()
	switch param {
	case "info":
		info, err := h.info.SchemaInfo(ctx)
		if err != nil {
			return fail(c, h.log, err)
		}
		return c.JSON(http.StatusOK, info)
	case "counts":
		counts, err := h.info.Counts(ctx)
		if err != nil {
			return fail(c, h.log, err)
		}
		return c.JSON(http.StatusOK, counts)
	default:
		return badRequest("Bad param "+param, "BAD_PARAM")
	}
}
