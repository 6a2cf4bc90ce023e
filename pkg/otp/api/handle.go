package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/startupvista/verify/pkg/otp"
	"github.com/startupvista/verify/pkg/ratelimit"
)

// Handler exposes the email verification endpoint
type Handler struct {
	service *otp.VerificationService
	limiter *ratelimit.RateLimiter
}

// HandlerOption configures a Handler
type HandlerOption func(*Handler)

// WithRateLimiter bounds generate requests per client IP. Verify is
// already bounded by the attempt ceiling.
func WithRateLimiter(limiter *ratelimit.RateLimiter) HandlerOption {
	return func(h *Handler) {
		h.limiter = limiter
	}
}

// NewHandler creates a new verification API handler
func NewHandler(service *otp.VerificationService, opts ...HandlerOption) *Handler {
	h := &Handler{service: service}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes mounts the verification endpoint
func Routes(r chi.Router, h *Handler) {
	r.Post("/email-verification", h.HandleVerification)
}

// HandleVerification handles POST /email-verification, dispatching on the
// request's action field.
func (h *Handler) HandleVerification(w http.ResponseWriter, r *http.Request) {
	var req VerificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "Invalid request body"})
		return
	}

	switch req.Action {
	case ActionGenerate:
		h.generate(w, r, req)
	case ActionVerify:
		h.verify(w, r, req)
	default:
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "Invalid action"})
	}
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request, req VerificationRequest) {
	if h.limiter != nil && !h.limiter.Allow(ratelimit.ClientIP(r)) {
		render.Status(r, http.StatusTooManyRequests)
		render.JSON(w, r, ErrorResponse{Error: "Too many requests, please try again later"})
		return
	}

	if err := h.service.Generate(r.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, otp.ErrEmailRequired):
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, ErrorResponse{Error: err.Error()})
		case errors.Is(err, otp.ErrDeliveryFailed):
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, ErrorResponse{Error: err.Error()})
		default:
			slog.Error("Failed to generate verification code", "error", err)
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, ErrorResponse{Error: "Internal server error"})
		}
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, SuccessResponse{Success: true})
}

func (h *Handler) verify(w http.ResponseWriter, r *http.Request, req VerificationRequest) {
	if err := h.service.Verify(r.Context(), req.Email, req.Code); err != nil {
		switch {
		case errors.Is(err, otp.ErrEmailRequired),
			errors.Is(err, otp.ErrCodeRequired),
			errors.Is(err, otp.ErrRecordNotFound),
			errors.Is(err, otp.ErrCodeExpired),
			errors.Is(err, otp.ErrTooManyAttempts),
			errors.Is(err, otp.ErrInvalidCode):
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, ErrorResponse{Error: err.Error()})
		default:
			slog.Error("Failed to verify code", "error", err)
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, ErrorResponse{Error: "Internal server error"})
		}
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, SuccessResponse{Success: true, Message: "Email verified successfully"})
}
