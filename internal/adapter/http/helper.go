package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// ---- helpers ----

func pathID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

func badID(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id", Reason: "invalid_id"})
}
