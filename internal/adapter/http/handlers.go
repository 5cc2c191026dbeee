package http

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const healthPingTimeout = 2 * time.Second

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct{ db Pinger }

func NewHandler(db Pinger) *Handler { return &Handler{db: db} }

type healthResp struct {
	Status string `json:"status"`
	DB     string `json:"db"`
	Time   string `json:"time"`
}

// Health reports 200 while the store answers a ping and 503 once it stops.
func (h *Handler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthPingTimeout)
	defer cancel()

	resp := healthResp{Status: "ok", DB: "up", Time: time.Now().UTC().Format(time.RFC3339Nano)}
	code := http.StatusOK
	if err := h.db.PingContext(ctx); err != nil {
		c.Logger().Errorf("health: db ping: %v", err)
		resp.Status, resp.DB = "unavailable", "down"
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, resp)
}
