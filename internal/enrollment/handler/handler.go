package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"enrollhub/internal/enrollment/service"
	id "enrollhub/pkg/domain"
	dErrors "enrollhub/pkg/domain-errors"
	"enrollhub/pkg/platform/httputil"
	"enrollhub/pkg/requestcontext"
)

// Service defines the enrollment views the HTTP layer depends on.
type Service interface {
	Summarize(ctx context.Context, regID id.RegistrationID) (*service.Summary, error)
	SummariesByUser(ctx context.Context, userID id.UserID) ([]*service.Summary, error)
}

// Handler exposes the read-only enrollment views.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register wires the enrollment routes onto the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/registrations/{registrationID}/summary", h.handleSummary)
	r.Get("/users/{userID}/enrollments", h.handleSummariesByUser)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	regID, err := id.ParseRegistrationID(chi.URLParam(r, "registrationID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	summary, err := h.service.Summarize(ctx, regID)
	if err != nil {
		h.warn(ctx, "summarize registration failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, summary)
}

func (h *Handler) handleSummariesByUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := id.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	summaries, err := h.service.SummariesByUser(ctx, userID)
	if err != nil {
		h.warn(ctx, "list enrollments failed", err)
		httputil.WriteError(w, err)
		return
	}
	if summaries == nil {
		summaries = []*service.Summary{}
	}
	httputil.WriteJSON(w, http.StatusOK, summaries)
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
