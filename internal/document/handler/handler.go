package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"enrollhub/internal/document/models"
	id "enrollhub/pkg/domain"
	dErrors "enrollhub/pkg/domain-errors"
	"enrollhub/pkg/platform/httputil"
	"enrollhub/pkg/requestcontext"
)

// Service defines the document operations the HTTP layer depends on.
type Service interface {
	Create(ctx context.Context, regID id.RegistrationID, documentType, filePath, fileName string, notes *string) (*models.Document, error)
	SetStatus(ctx context.Context, docID id.DocumentID, status models.Status, verifiedBy *id.UserID, notes *string) (*models.Document, error)
	ListPending(ctx context.Context) ([]*models.Document, error)
}

// Handler exposes the document endpoints.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register wires the document routes onto the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/documents", h.handleCreate)
	r.Get("/documents/pending", h.handleListPending)
	r.Patch("/documents/{documentID}/status", h.handleUpdateStatus)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateDocumentRequest
	if err := httputil.DecodeAndPrepare(r, &req); err != nil {
		h.warn(ctx, "invalid create document request", err)
		httputil.WriteError(w, err)
		return
	}

	document, err := h.service.Create(ctx, req.ParsedRegistrationID(), req.DocumentType, req.FilePath, req.FileName, req.Notes)
	if err != nil {
		h.warn(ctx, "create document failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, document)
}

func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	docID, err := id.ParseDocumentID(chi.URLParam(r, "documentID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var req UpdateStatusRequest
	if err := httputil.DecodeAndPrepare(r, &req); err != nil {
		h.warn(ctx, "invalid update document status request", err)
		httputil.WriteError(w, err)
		return
	}

	document, err := h.service.SetStatus(ctx, docID, req.ParsedStatus(), req.ParsedVerifiedBy(), req.Notes)
	if err != nil {
		h.warn(ctx, "update document status failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, document)
}

func (h *Handler) handleListPending(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	documents, err := h.service.ListPending(ctx)
	if err != nil {
		h.warn(ctx, "list pending documents failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, listResponse(documents))
}

// listResponse keeps empty lists as [] rather than null on the wire.
func listResponse(documents []*models.Document) []*models.Document {
	if documents == nil {
		return []*models.Document{}
	}
	return documents
}

func (h *Handler) warn(ctx context.Context, msg string, err error) {
	logFn := h.logger.WarnContext
	if dErrors.HasCode(err, dErrors.CodeInternal) {
		logFn = h.logger.ErrorContext
	}
	logFn(ctx, msg,
		"request_id", requestcontext.RequestID(ctx),
		"error", err.Error(),
	)
}
