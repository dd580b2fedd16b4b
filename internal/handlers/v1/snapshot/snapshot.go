package snapshot

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-tracker/internal/codec"
	"github.com/carson-networks/expense-tracker/internal/handlers/v1/apierror"
	"github.com/carson-networks/expense-tracker/internal/logging"
)

// MaxImportBytes caps an import body. Exports have no cap, so this sits well
// above the size of a realistic ledger.
const MaxImportBytes int64 = 64 << 20

type ExportOutput struct {
	ContentDisposition string `header:"Content-Disposition"`
	Body               codec.Document
}

type ImportInput struct {
	RawBody []byte `contentType:"application/json"`
}

type ImportOutput struct {
	Body struct {
		Restored []string             `json:"restored" doc:"Slots that were replaced"`
		Skipped  []codec.SkippedField `json:"skipped" doc:"Present fields that failed their type check and were left untouched"`
	}
}

type ResetOutput struct {
	Status int
}

type snapshotService interface {
	ExportSnapshot(ctx context.Context) codec.Document
	ImportSnapshot(ctx context.Context, data []byte) (codec.Plan, error)
	Reset(ctx context.Context)
}

// Handler serves export, import and reset on /v1/snapshot.
type Handler struct {
	SnapshotService snapshotService
}

func NewHandler(svc snapshotService) *Handler {
	return &Handler{SnapshotService: svc}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "export-snapshot",
		Method:      http.MethodGet,
		Path:        "/v1/snapshot",
		Summary:     "Export snapshot",
		Description: "Returns every slot in one portable document.",
		Tags:        []string{"Snapshot"},
	}, h.export)

	huma.Register(api, huma.Operation{
		OperationID:  "import-snapshot",
		Method:       http.MethodPost,
		Path:         "/v1/snapshot",
		Summary:      "Import snapshot",
		Description:  "Replaces each slot present and valid in the document. A document with none of transactions, budget or settings is rejected and changes nothing.",
		Tags:         []string{"Snapshot"},
		MaxBodyBytes: MaxImportBytes,
	}, h.importSnapshot)

	huma.Register(api, huma.Operation{
		OperationID:   "reset-data",
		Method:        http.MethodDelete,
		Path:          "/v1/snapshot",
		Summary:       "Clear all data",
		DefaultStatus: http.StatusNoContent,
		Tags:          []string{"Snapshot"},
	}, h.reset)
}

func (h *Handler) export(ctx context.Context, _ *struct{}) (*ExportOutput, error) {
	doc := h.SnapshotService.ExportSnapshot(ctx)
	return &ExportOutput{
		ContentDisposition: `attachment; filename="expense-tracker-` + doc.ExportDate.Format("2006-01-02") + `.json"`,
		Body:               doc,
	}, nil
}

func (h *Handler) importSnapshot(ctx context.Context, input *ImportInput) (*ImportOutput, error) {
	plan, err := h.SnapshotService.ImportSnapshot(ctx, input.RawBody)
	if err != nil {
		return nil, apierror.From(err, "failed to import snapshot")
	}

	out := &ImportOutput{}
	out.Body.Restored = []string{}
	for _, key := range plan.Keys() {
		out.Body.Restored = append(out.Body.Restored, string(key))
	}
	out.Body.Skipped = plan.Skipped
	if out.Body.Skipped == nil {
		out.Body.Skipped = []codec.SkippedField{}
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("restoredSlots", len(out.Body.Restored))
		logData.AddData("skippedFields", len(out.Body.Skipped))
	}
	return out, nil
}

func (h *Handler) reset(ctx context.Context, _ *struct{}) (*ResetOutput, error) {
	h.SnapshotService.Reset(ctx)
	return &ResetOutput{Status: http.StatusNoContent}, nil
}
