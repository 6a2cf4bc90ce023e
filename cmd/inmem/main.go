// Package main runs the verification service without a database or SMTP
// relay: records live in memory and issued codes are written to the log
// instead of being emailed. Useful for frontend development and demos.
// All state is lost when the process stops; use cmd/verify for real
// deployments.
package main

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/tendant/chi-demo/app"

	"github.com/startupvista/verify/pkg/notice"
	noticeapi "github.com/startupvista/verify/pkg/notice/api"
	"github.com/startupvista/verify/pkg/notification"
	"github.com/startupvista/verify/pkg/otp"
	otpapi "github.com/startupvista/verify/pkg/otp/api"
)

// logNotifier prints notices to the log instead of delivering them.
type logNotifier struct{}

func (logNotifier) Send(noticeType notification.NoticeType, data notification.NotificationData, template notification.NoticeTemplate) error {
	slog.Info("Notice (not delivered)", "notice_type", noticeType, "to", data.To, "data", data.Data)
	return nil
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	slog.Info("Starting in-memory verification service (no database, no SMTP)")

	notificationManager, err := notification.NewNotificationManagerWithOptions(
		notification.WithNotifier(notification.EmailSystem, logNotifier{}),
		notification.WithDefaultTemplates(),
	)
	if err != nil {
		slog.Error("Failed to create notification manager", "error", err)
		os.Exit(1)
	}

	verificationService := otp.NewVerificationService(
		otp.NewInMemRecordRepository(),
		otp.WithNotificationManager(notificationManager),
	)
	noticeService := notice.NewNoticeService(notificationManager, "admin@localhost")

	otpHandler := otpapi.NewHandler(verificationService)
	noticeHandler := noticeapi.NewHandler(noticeService)

	server := app.NewApp(app.WithPort(4000))

	server.R.Route("/api", func(r chi.Router) {
		otpapi.Routes(r, otpHandler)
		noticeapi.Routes(r, noticeHandler)
	})

	server.Run()
}
