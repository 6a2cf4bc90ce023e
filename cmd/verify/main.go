package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/tendant/chi-demo/app"
	dbutils "github.com/tendant/db-utils/db"

	"github.com/startupvista/verify/pkg/admin"
	"github.com/startupvista/verify/pkg/notice"
	noticeapi "github.com/startupvista/verify/pkg/notice/api"
	"github.com/startupvista/verify/pkg/notification"
	"github.com/startupvista/verify/pkg/otp"
	otpapi "github.com/startupvista/verify/pkg/otp/api"
	"github.com/startupvista/verify/pkg/ratelimit"
)

type DbConfig struct {
	Host     string `env:"VERIFY_PG_HOST" env-default:"localhost"`
	Port     uint16 `env:"VERIFY_PG_PORT" env-default:"5432"`
	Database string `env:"VERIFY_PG_DATABASE" env-default:"verify_db"`
	User     string `env:"VERIFY_PG_USER" env-default:"verify"`
	Password string `env:"VERIFY_PG_PASSWORD" env-default:"pwd"`
}

func (d DbConfig) toDbConfig() dbutils.DbConfig {
	return dbutils.DbConfig{
		Host:     d.Host,
		Port:     d.Port,
		Database: d.Database,
		User:     d.User,
		Password: d.Password,
	}
}

type EmailConfig struct {
	Host     string `env:"SMTP_HOST" env-default:"localhost"`
	Port     int    `env:"SMTP_PORT" env-default:"1025"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM" env-default:"noreply@startupvista.in"`
	TLS      bool   `env:"SMTP_TLS" env-default:"false"`
}

type Config struct {
	Port          uint16 `env:"VERIFY_PORT" env-default:"4000"`
	AdminEmail    string `env:"ADMIN_EMAIL" env-default:"startupvista09@gmail.com"`
	AdminSecret   string `env:"ADMIN_JWT_SECRET" env-default:"very-secure-admin-secret"`
	CodeExpiry    string `env:"OTP_CODE_EXPIRY" env-default:"10m"`
	AttemptLimit  int32  `env:"OTP_ATTEMPT_LIMIT" env-default:"3"`
	SweepInterval string `env:"OTP_SWEEP_INTERVAL" env-default:"1h"`
	DbConfig      DbConfig
	EmailConfig   EmailConfig
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	godotenv.Load()

	config := Config{}
	if err := cleanenv.ReadEnv(&config); err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	codeExpiry, err := time.ParseDuration(config.CodeExpiry)
	if err != nil {
		slog.Error("Invalid OTP_CODE_EXPIRY", "value", config.CodeExpiry, "error", err)
		os.Exit(1)
	}
	sweepInterval, err := time.ParseDuration(config.SweepInterval)
	if err != nil {
		slog.Error("Invalid OTP_SWEEP_INTERVAL", "value", config.SweepInterval, "error", err)
		os.Exit(1)
	}

	dbConfig := config.DbConfig.toDbConfig()
	pool, err := dbutils.NewDbPool(context.Background(), dbConfig)
	if err != nil {
		slog.Error("Failed creating dbpool", "db", dbConfig.Database, "host", dbConfig.Host, "port", dbConfig.Port, "user", dbConfig.User)
		os.Exit(1)
	}

	notificationManager, err := notification.NewNotificationManagerWithOptions(
		notification.WithSMTP(notification.SMTPConfig{
			Host:     config.EmailConfig.Host,
			Port:     config.EmailConfig.Port,
			Username: config.EmailConfig.Username,
			Password: config.EmailConfig.Password,
			From:     config.EmailConfig.From,
			TLS:      config.EmailConfig.TLS,
		}),
		notification.WithDefaultTemplates(),
	)
	if err != nil {
		slog.Error("Failed to create notification manager", "error", err)
		os.Exit(1)
	}

	repo, err := otp.NewRecordRepository("postgres", otp.RepositoryConfig{Pool: pool})
	if err != nil {
		slog.Error("Failed to create record repository", "error", err)
		os.Exit(1)
	}

	verificationService := otp.NewVerificationService(
		repo,
		otp.WithNotificationManager(notificationManager),
		otp.WithCodeExpiry(codeExpiry),
		otp.WithAttemptLimit(config.AttemptLimit),
	)
	noticeService := notice.NewNoticeService(notificationManager, config.AdminEmail)

	// 5 generate requests per IP, one refill per minute
	generateLimiter := ratelimit.NewRateLimiter(5, 1.0/60, time.Hour)
	contactLimiter := ratelimit.NewRateLimiter(10, 1.0/30, time.Hour)

	otpHandler := otpapi.NewHandler(verificationService, otpapi.WithRateLimiter(generateLimiter))
	noticeHandler := noticeapi.NewHandler(noticeService)
	adminAuth := admin.NewAuth(config.AdminSecret)

	server := app.NewApp(app.WithPort(int(config.Port)))

	server.R.Route("/api", func(r chi.Router) {
		otpapi.Routes(r, otpHandler)

		r.Group(func(r chi.Router) {
			r.Use(ratelimit.Middleware(contactLimiter))
			r.Post("/contact-email", noticeHandler.SendContactEmail)
		})

		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(adminAuth))
			r.Use(jwtauth.Authenticator(adminAuth))
			r.Use(admin.RequireRole("admin"))
			r.Post("/status-email", noticeHandler.SendStatusEmail)
		})
	})

	// Expired records are re-checked at read time; the sweep only keeps
	// storage tidy.
	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for range ticker.C {
			verificationService.DeleteExpired(context.Background())
		}
	}()

	slog.Info("Starting verification service", "port", config.Port)
	server.Run()
}
