package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"enrollhub/internal/registration/models"
	id "enrollhub/pkg/domain"
	dErrors "enrollhub/pkg/domain-errors"
	"enrollhub/pkg/platform/httputil"
	"enrollhub/pkg/requestcontext"
)

// Service defines the registration operations the HTTP layer depends on.
type Service interface {
	Create(ctx context.Context, userID id.UserID, programID id.ProgramID, notes *string) (*models.Registration, error)
	SetStatus(ctx context.Context, regID id.RegistrationID, status models.Status, notes *string) (*models.Registration, error)
	ListByUser(ctx context.Context, userID id.UserID) ([]*models.Registration, error)
	ListAll(ctx context.Context) ([]*models.Registration, error)
}

// Handler exposes the registration endpoints.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register wires the registration routes onto the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/registrations", h.handleCreate)
	r.Get("/registrations", h.handleListAll)
	r.Patch("/registrations/{registrationID}/status", h.handleUpdateStatus)
	r.Get("/users/{userID}/registrations", h.handleListByUser)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateRegistrationRequest
	if err := httputil.DecodeAndPrepare(r, &req); err != nil {
		h.warn(ctx, "invalid create registration request", err)
		httputil.WriteError(w, err)
		return
	}

	registration, err := h.service.Create(ctx, req.ParsedUserID(), req.ParsedProgramID(), req.Notes)
	if err != nil {
		h.warn(ctx, "create registration failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, registration)
}

func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	regID, err := id.ParseRegistrationID(chi.URLParam(r, "registrationID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var req UpdateStatusRequest
	if err := httputil.DecodeAndPrepare(r, &req); err != nil {
		h.warn(ctx, "invalid update registration status request", err)
		httputil.WriteError(w, err)
		return
	}

	registration, err := h.service.SetStatus(ctx, regID, req.ParsedStatus(), req.Notes)
	if err != nil {
		h.warn(ctx, "update registration status failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, registration)
}

func (h *Handler) handleListByUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := id.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	registrations, err := h.service.ListByUser(ctx, userID)
	if err != nil {
		h.warn(ctx, "list registrations by user failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, listResponse(registrations))
}

func (h *Handler) handleListAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	registrations, err := h.service.ListAll(ctx)
	if err != nil {
		h.warn(ctx, "list registrations failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, listResponse(registrations))
}

// listResponse keeps empty lists as [] rather than null on the wire.
func listResponse(registrations []*models.Registration) []*models.Registration {
	if registrations == nil {
		return []*models.Registration{}
	}
	return registrations
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
