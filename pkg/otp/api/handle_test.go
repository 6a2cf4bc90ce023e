package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/startupvista/verify/pkg/notification"
	"github.com/startupvista/verify/pkg/otp"
	"github.com/startupvista/verify/pkg/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type handlerFixture struct {
	router chi.Router
	repo   *otp.InMemRecordRepository
	mock   *notification.MockNotifier
}

func newHandlerFixture(t *testing.T, opts ...HandlerOption) *handlerFixture {
	mock := &notification.MockNotifier{}
	nm := notification.NewNotificationManager()
	nm.RegisterNotifier(notification.EmailSystem, mock)
	err := nm.RegisterNotification(notification.VerificationCode, notification.EmailSystem, notification.NoticeTemplate{
		Subject: "Your Verification Code",
		Text:    "Your verification code is: {{.Code}}",
	})
	require.NoError(t, err)

	repo := otp.NewInMemRecordRepository()
	service := otp.NewVerificationService(repo, otp.WithNotificationManager(nm))

	router := chi.NewRouter()
	Routes(router, NewHandler(service, opts...))

	return &handlerFixture{router: router, repo: repo, mock: mock}
}

func (f *handlerFixture) post(t *testing.T, body any) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/email-verification", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error
}

func (f *handlerFixture) storedCode(t *testing.T, email string) string {
	rec, err := f.repo.Get(context.Background(), email)
	require.NoError(t, err)
	return rec.Code
}

func TestHandleVerification_Generate(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.post(t, VerificationRequest{Email: "a@x.com", Action: ActionGenerate})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp SuccessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Len(t, f.mock.SentNotifications, 1)
}

func TestHandleVerification_GenerateMissingEmail(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.post(t, VerificationRequest{Action: ActionGenerate})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "email is required", decodeError(t, rec))
}

func TestHandleVerification_GenerateDeliveryFailure(t *testing.T) {
	f := newHandlerFixture(t)
	f.mock.Err = errors.New("smtp down")

	rec := f.post(t, VerificationRequest{Email: "a@x.com", Action: ActionGenerate})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "failed to send verification email", decodeError(t, rec))
}

func TestHandleVerification_GenerateRateLimited(t *testing.T) {
	f := newHandlerFixture(t, WithRateLimiter(ratelimit.NewRateLimiter(1, 0.001, 0)))

	rec := f.post(t, VerificationRequest{Email: "a@x.com", Action: ActionGenerate})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.post(t, VerificationRequest{Email: "a@x.com", Action: ActionGenerate})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "Too many requests, please try again later", decodeError(t, rec))
}

func TestHandleVerification_VerifyFlow(t *testing.T) {
	f := newHandlerFixture(t)

	require.Equal(t, http.StatusOK, f.post(t, VerificationRequest{Email: "a@x.com", Action: ActionGenerate}).Code)
	code := f.storedCode(t, "a@x.com")

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	rec := f.post(t, VerificationRequest{Email: "a@x.com", Action: ActionVerify, Code: wrong})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid verification code", decodeError(t, rec))

	rec = f.post(t, VerificationRequest{Email: "a@x.com", Action: ActionVerify, Code: code})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp SuccessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Email verified successfully", resp.Message)

	// One-time use: the record is gone now
	rec = f.post(t, VerificationRequest{Email: "a@x.com", Action: ActionVerify, Code: code})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "no verification code found for this email", decodeError(t, rec))
}

func TestHandleVerification_VerifyValidation(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.post(t, VerificationRequest{Action: ActionVerify, Code: "123456"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "email is required", decodeError(t, rec))

	rec = f.post(t, VerificationRequest{Email: "a@x.com", Action: ActionVerify})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "verification code is required", decodeError(t, rec))
}

func TestHandleVerification_InvalidAction(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.post(t, VerificationRequest{Email: "a@x.com", Action: "refresh"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid action", decodeError(t, rec))
}

func TestHandleVerification_InvalidBody(t *testing.T) {
	f := newHandlerFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/email-verification", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request body", decodeError(t, rec))
}
