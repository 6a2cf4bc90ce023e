package notification

import (
	"embed"
	"log/slog"
)

//go:embed templates/*
var templateFiles embed.FS

func loadTemplate(filename string) string {
	content, err := templateFiles.ReadFile(filename)
	if err != nil {
		slog.Error("Error reading template file", "filename", filename, "error", err)
		return ""
	}
	return string(content)
}

// NotificationManagerOption is a function that configures a NotificationManager
type NotificationManagerOption func(*NotificationManager) error

// WithSMTP adds an email notifier with the provided SMTP configuration
func WithSMTP(config SMTPConfig) NotificationManagerOption {
	return func(nm *NotificationManager) error {
		emailNotifier, err := NewEmailNotifier(config)
		if err != nil {
			return err
		}
		nm.RegisterNotifier(EmailSystem, emailNotifier)
		return nil
	}
}

// WithNotifier registers an arbitrary notifier for a channel
func WithNotifier(system NotificationSystem, notifier Notifier) NotificationManagerOption {
	return func(nm *NotificationManager) error {
		nm.RegisterNotifier(system, notifier)
		return nil
	}
}

// WithVerificationCodeTemplate registers the OTP email template
func WithVerificationCodeTemplate() NotificationManagerOption {
	return func(nm *NotificationManager) error {
		return nm.RegisterNotification(VerificationCode, EmailSystem, NoticeTemplate{
			Subject: "Your Verification Code",
			Text:    "Your verification code is: {{.Code}}. It will expire in {{.ExpiryMinutes}} minutes.",
			Html:    loadTemplate("templates/email/verification_code.html"),
		})
	}
}

// WithAccountStatusTemplates registers the application decision templates
// and the admin notification copy
func WithAccountStatusTemplates() NotificationManagerOption {
	return func(nm *NotificationManager) error {
		if err := nm.RegisterNotification(AccountApproved, EmailSystem, NoticeTemplate{
			Subject: "You're Approved — Welcome to StartupVista!",
			Html:    loadTemplate("templates/email/account_approved.html"),
		}); err != nil {
			return err
		}
		if err := nm.RegisterNotification(AccountRejected, EmailSystem, NoticeTemplate{
			Subject: "Update on Your StartupVista Application",
			Html:    loadTemplate("templates/email/account_rejected.html"),
		}); err != nil {
			return err
		}
		return nm.RegisterNotification(AdminStatusNotice, EmailSystem, NoticeTemplate{
			Subject: "Application Decision",
			Html:    loadTemplate("templates/email/admin_status_notice.html"),
		})
	}
}

// WithContactMessageTemplate registers the contact-form relay template
func WithContactMessageTemplate() NotificationManagerOption {
	return func(nm *NotificationManager) error {
		return nm.RegisterNotification(ContactMessage, EmailSystem, NoticeTemplate{
			Subject: "New Contact Message",
			Html:    loadTemplate("templates/email/contact_message.html"),
		})
	}
}

// WithDefaultTemplates registers all notification templates
func WithDefaultTemplates() NotificationManagerOption {
	return func(nm *NotificationManager) error {
		options := []NotificationManagerOption{
			WithVerificationCodeTemplate(),
			WithAccountStatusTemplates(),
			WithContactMessageTemplate(),
		}

		for _, opt := range options {
			if err := opt(nm); err != nil {
				return err
			}
		}

		return nil
	}
}

// NewNotificationManagerWithOptions creates a new notification manager with the provided options
func NewNotificationManagerWithOptions(opts ...NotificationManagerOption) (*NotificationManager, error) {
	notificationManager := NewNotificationManager()

	for _, opt := range opts {
		if err := opt(notificationManager); err != nil {
			return nil, err
		}
	}

	return notificationManager, nil
}
