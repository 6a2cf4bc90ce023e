package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/startupvista/verify/pkg/notice"
	"github.com/startupvista/verify/pkg/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNoticeRouter(t *testing.T) (chi.Router, *notification.MockNotifier) {
	mock := &notification.MockNotifier{}
	nm, err := notification.NewNotificationManagerWithOptions(
		notification.WithNotifier(notification.EmailSystem, mock),
		notification.WithDefaultTemplates(),
	)
	require.NoError(t, err)

	router := chi.NewRouter()
	Routes(router, NewHandler(notice.NewNoticeService(nm, "admin@startupvista.in")))
	return router, mock
}

func postJSON(t *testing.T, router chi.Router, path string, body any) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSendStatusEmail(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		router, mock := newNoticeRouter(t)

		rec := postJSON(t, router, "/status-email", StatusEmailRequest{
			Email:     "founder@x.com",
			Status:    notice.StatusVerified,
			BrandName: "Acme",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp SuccessResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)

		// Applicant email plus the admin copy
		require.Len(t, mock.SentNotifications, 2)
		assert.Equal(t, "founder@x.com", mock.SentNotifications[0].To)
		assert.Equal(t, "Acme", mock.SentNotifications[0].Data["BrandName"])
	})

	t.Run("InvalidStatus", func(t *testing.T) {
		router, _ := newNoticeRouter(t)

		rec := postJSON(t, router, "/status-email", StatusEmailRequest{
			Email:  "founder@x.com",
			Status: "pending",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "status must be verified or rejected", resp.Error)
	})

	t.Run("DeliveryFailure", func(t *testing.T) {
		router, mock := newNoticeRouter(t)
		mock.Err = errors.New("smtp down")

		rec := postJSON(t, router, "/status-email", StatusEmailRequest{
			Email:  "founder@x.com",
			Status: notice.StatusRejected,
		})
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("InvalidBody", func(t *testing.T) {
		router, _ := newNoticeRouter(t)

		req := httptest.NewRequest(http.MethodPost, "/status-email", bytes.NewReader([]byte("{not json")))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestSendContactEmail(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		router, mock := newNoticeRouter(t)

		rec := postJSON(t, router, "/contact-email", ContactEmailRequest{
			Name:    "Jordan",
			Email:   "jordan@x.com",
			Message: "Hello",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		require.Len(t, mock.SentNotifications, 1)
		sent := mock.SentNotifications[0]
		assert.Equal(t, "admin@startupvista.in", sent.To)
		assert.Equal(t, "Jordan", sent.Data["Name"])
		assert.Equal(t, "jordan@x.com", sent.Data["Email"])
	})

	t.Run("MissingMessage", func(t *testing.T) {
		router, _ := newNoticeRouter(t)

		rec := postJSON(t, router, "/contact-email", ContactEmailRequest{
			Name:  "Jordan",
			Email: "jordan@x.com",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "message is required", resp.Error)
	})
}
