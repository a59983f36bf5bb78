package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"enrollhub/internal/schedule/models"
	id "enrollhub/pkg/domain"
	dErrors "enrollhub/pkg/domain-errors"
	"enrollhub/pkg/platform/httputil"
	"enrollhub/pkg/requestcontext"
)

// Service defines the schedule operations the HTTP layer depends on.
type Service interface {
	Create(ctx context.Context, programID id.ProgramID, title string, sessionDate time.Time, startTime, endTime string, location, materials *string) (*models.Session, error)
	ListByProgram(ctx context.Context, programID id.ProgramID) ([]*models.Session, error)
}

// Handler exposes the schedule endpoints.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register wires the schedule routes onto the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/programs/{programID}/schedule", h.handleCreate)
	r.Get("/programs/{programID}/schedule", h.handleListByProgram)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	programID, err := id.ParseProgramID(chi.URLParam(r, "programID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var req CreateSessionRequest
	if err := httputil.DecodeAndPrepare(r, &req); err != nil {
		h.warn(ctx, "invalid create session request", err)
		httputil.WriteError(w, err)
		return
	}

	session, err := h.service.Create(ctx, programID, req.SessionTitle, req.SessionDate, req.StartTime, req.EndTime, req.Location, req.Materials)
	if err != nil {
		h.warn(ctx, "create session failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, session)
}

func (h *Handler) handleListByProgram(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	programID, err := id.ParseProgramID(chi.URLParam(r, "programID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	sessions, err := h.service.ListByProgram(ctx, programID)
	if err != nil {
		h.warn(ctx, "list sessions failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, listResponse(sessions))
}

// listResponse keeps empty lists as [] rather than null on the wire.
func listResponse(sessions []*models.Session) []*models.Session {
	if sessions == nil {
		return []*models.Session{}
	}
	return sessions
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
