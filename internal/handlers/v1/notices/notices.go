package notices

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-tracker/internal/service"
)

type Notice struct {
	Slot    string    `json:"slot" doc:"Storage slot the write was for"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

type ListNoticesOutput struct {
	Body struct {
		Notices []Notice `json:"notices" doc:"Writes that failed since the last call. The in-memory state is still in effect."`
	}
}

type noticeSource interface {
	PersistenceNotices() []service.Notice
}

// Handler handles GET /v1/notices.
type Handler struct {
	Service noticeSource
}

func NewHandler(svc noticeSource) *Handler {
	return &Handler{Service: svc}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-notices",
		Method:      http.MethodGet,
		Path:        "/v1/notices",
		Summary:     "List persistence notices",
		Description: "Returns and clears the storage write failures recorded so far.",
		Tags:        []string{"Status"},
	}, h.handle)
}

func (h *Handler) handle(_ context.Context, _ *struct{}) (*ListNoticesOutput, error) {
	notices := h.Service.PersistenceNotices()
	out := &ListNoticesOutput{}
	out.Body.Notices = make([]Notice, len(notices))
	for i, n := range notices {
		out.Body.Notices[i] = Notice(n)
	}
	return out, nil
}
