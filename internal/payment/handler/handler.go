package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"enrollhub/internal/payment/models"
	id "enrollhub/pkg/domain"
	dErrors "enrollhub/pkg/domain-errors"
	"enrollhub/pkg/platform/httputil"
	"enrollhub/pkg/requestcontext"
)

// Service defines the payment operations the HTTP layer depends on.
type Service interface {
	Create(ctx context.Context, regID id.RegistrationID, amount id.Amount, method models.Method, transactionID, notes *string) (*models.Payment, error)
	SetStatus(ctx context.Context, payID id.PaymentID, update models.StatusUpdate) (*models.Payment, error)
	ListAll(ctx context.Context) ([]*models.Payment, error)
}

// Handler exposes the payment endpoints.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register wires the payment routes onto the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/payments", h.handleCreate)
	r.Get("/payments", h.handleListAll)
	r.Patch("/payments/{paymentID}/status", h.handleUpdateStatus)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreatePaymentRequest
	if err := httputil.DecodeAndPrepare(r, &req); err != nil {
		h.warn(ctx, "invalid create payment request", err)
		httputil.WriteError(w, err)
		return
	}

	payment, err := h.service.Create(ctx, req.ParsedRegistrationID(), req.Amount, req.ParsedMethod(), req.TransactionID, req.Notes)
	if err != nil {
		h.warn(ctx, "create payment failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, payment)
}

func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	payID, err := id.ParsePaymentID(chi.URLParam(r, "paymentID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var req UpdateStatusRequest
	if err := httputil.DecodeAndPrepare(r, &req); err != nil {
		h.warn(ctx, "invalid update payment status request", err)
		httputil.WriteError(w, err)
		return
	}

	payment, err := h.service.SetStatus(ctx, payID, req.ParsedUpdate())
	if err != nil {
		h.warn(ctx, "update payment status failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, payment)
}

func (h *Handler) handleListAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	payments, err := h.service.ListAll(ctx)
	if err != nil {
		h.warn(ctx, "list payments failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, listResponse(payments))
}

// listResponse keeps empty lists as [] rather than null on the wire.
func listResponse(payments []*models.Payment) []*models.Payment {
	if payments == nil {
		return []*models.Payment{}
	}
	return payments
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
