package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/jinzhu/copier"
	"github.com/startupvista/verify/pkg/notice"
)

// Handler exposes the notice endpoints
type Handler struct {
	service *notice.NoticeService
}

// NewHandler creates a new notice API handler
func NewHandler(service *notice.NoticeService) *Handler {
	return &Handler{service: service}
}

// Routes mounts the notice endpoints. The caller decides which of them
// sit behind admin auth.
func Routes(r chi.Router, h *Handler) {
	r.Post("/status-email", h.SendStatusEmail)
	r.Post("/contact-email", h.SendContactEmail)
}

// SendStatusEmail handles POST /status-email
func (h *Handler) SendStatusEmail(w http.ResponseWriter, r *http.Request) {
	var req StatusEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "Invalid request body"})
		return
	}

	var n notice.AccountStatusNotice
	copier.Copy(&n, &req)

	if err := h.service.SendAccountStatus(r.Context(), n); err != nil {
		h.renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, SuccessResponse{Success: true})
}

// SendContactEmail handles POST /contact-email
func (h *Handler) SendContactEmail(w http.ResponseWriter, r *http.Request) {
	var req ContactEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "Invalid request body"})
		return
	}

	var n notice.ContactNotice
	copier.Copy(&n, &req)

	if err := h.service.SendContactMessage(r.Context(), n); err != nil {
		h.renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, SuccessResponse{Success: true})
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, notice.ErrEmailRequired),
		errors.Is(err, notice.ErrInvalidStatus),
		errors.Is(err, notice.ErrMessageRequired):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: err.Error()})
	case errors.Is(err, notice.ErrDeliveryFailed):
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: err.Error()})
	default:
		slog.Error("Failed to send notice", "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: "Internal server error"})
	}
}
