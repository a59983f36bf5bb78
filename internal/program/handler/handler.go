package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"enrollhub/internal/program/models"
	id "enrollhub/pkg/domain"
	dErrors "enrollhub/pkg/domain-errors"
	"enrollhub/pkg/platform/httputil"
	"enrollhub/pkg/requestcontext"
)

// Service defines the program operations the HTTP layer depends on.
type Service interface {
	Create(ctx context.Context, name, description string, durationHours int, price id.Amount, maxParticipants int, startDate, endDate time.Time) (*models.TrainingProgram, error)
	List(ctx context.Context, activeOnly bool) ([]*models.TrainingProgram, error)
	Get(ctx context.Context, programID id.ProgramID) (*models.TrainingProgram, error)
}

// Handler exposes the program catalog endpoints.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register wires the program routes onto the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/programs", h.handleCreate)
	r.Get("/programs", h.handleList)
	r.Get("/programs/{programID}", h.handleGet)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateProgramRequest
	if err := httputil.DecodeAndPrepare(r, &req); err != nil {
		h.warn(ctx, "invalid create program request", err)
		httputil.WriteError(w, err)
		return
	}

	program, err := h.service.Create(ctx, req.Name, req.Description, req.DurationHours, req.Price, req.MaxParticipants, req.StartDate, req.EndDate)
	if err != nil {
		h.warn(ctx, "create program failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, program)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	programID, err := id.ParseProgramID(chi.URLParam(r, "programID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	program, err := h.service.Get(ctx, programID)
	if err != nil {
		h.warn(ctx, "get program failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, program)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	activeOnly := r.URL.Query().Get("active") == "true"
	programs, err := h.service.List(ctx, activeOnly)
	if err != nil {
		h.warn(ctx, "list programs failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, listResponse(programs))
}

// listResponse keeps empty lists as [] rather than null on the wire.
func listResponse(programs []*models.TrainingProgram) []*models.TrainingProgram {
	if programs == nil {
		return []*models.TrainingProgram{}
	}
	return programs
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
