package status

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

type StatusOutput struct {
	Body struct {
		Status string `json:"status" example:"ok"`
	}
}

// pinger reports whether the database is reachable.
type pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	DB pinger
}

func NewHandler(db pinger) *Handler {
	return &Handler{DB: db}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "status",
		Method:      http.MethodGet,
		Path:        "/status",
		Summary:     "Liveness",
		Tags:        []string{"Status"},
	}, h.handle)
}

func (h *Handler) handle(ctx context.Context, _ *struct{}) (*StatusOutput, error) {
	if err := h.DB.PingContext(ctx); err != nil {
		return nil, huma.NewError(http.StatusServiceUnavailable, "database unavailable", err)
	}

	out := &StatusOutput{}
	out.Body.Status = "ok"
	return out, nil
}
