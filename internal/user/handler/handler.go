package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"enrollhub/internal/user/models"
	dErrors "enrollhub/pkg/domain-errors"
	"enrollhub/pkg/platform/httputil"
	"enrollhub/pkg/requestcontext"
)

// Service defines the user operations the HTTP layer depends on.
type Service interface {
	Create(ctx context.Context, email, password, fullName, phone string, address *string, role models.Role) (*models.User, error)
}

// Handler exposes the user endpoints.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register wires the user routes onto the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/users", h.handleCreate)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateUserRequest
	if err := httputil.DecodeAndPrepare(r, &req); err != nil {
		h.warn(ctx, "invalid create user request", err)
		httputil.WriteError(w, err)
		return
	}

	user, err := h.service.Create(ctx, req.Email, req.Password, req.FullName, req.Phone, req.Address, req.ParsedRole())
	if err != nil {
		h.warn(ctx, "create user failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, user)
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
