// Package notice sends the platform's operational emails: the decision on
// a startup application (with an admin copy) and contact-form relays to
// the support inbox.
package notice

import (
	"context"
	"log/slog"

	"github.com/startupvista/verify/pkg/notification"
)

// Application decision statuses as the admin dashboard reports them.
const (
	StatusVerified = "verified"
	StatusRejected = "rejected"
)

// AccountStatusNotice describes an application decision to announce.
type AccountStatusNotice struct {
	Email     string
	BrandName string
	Status    string
	Reason    string
}

// ContactNotice describes a contact-form submission to relay.
type ContactNotice struct {
	Name    string
	Email   string
	Message string
}

// NoticeService sends operational notices through the notification stack.
type NoticeService struct {
	notificationManager *notification.NotificationManager
	adminEmail          string
}

// NewNoticeService creates a new notice service. adminEmail receives the
// admin copies and contact relays.
func NewNoticeService(notificationManager *notification.NotificationManager, adminEmail string) *NoticeService {
	return &NoticeService{
		notificationManager: notificationManager,
		adminEmail:          adminEmail,
	}
}

// SendAccountStatus emails the applicant their application decision and
// sends the admin inbox a copy. The admin copy is best effort: the
// applicant email is the one that must land.
func (s *NoticeService) SendAccountStatus(ctx context.Context, n AccountStatusNotice) error {
	if n.Email == "" {
		return ErrEmailRequired
	}
	if n.Status != StatusVerified && n.Status != StatusRejected {
		return ErrInvalidStatus
	}

	noticeType := notification.AccountApproved
	if n.Status == StatusRejected {
		noticeType = notification.AccountRejected
	}

	reason := n.Reason
	if reason == "" {
		reason = "Not provided"
	}

	err := s.notificationManager.Send(noticeType, notification.EmailSystem, notification.NotificationData{
		To: n.Email,
		Data: map[string]string{
			"BrandName": n.BrandName,
			"Reason":    reason,
		},
	})
	if err != nil {
		slog.Error("Failed to send account status email", "email", n.Email, "status", n.Status, "error", err)
		return ErrDeliveryFailed
	}

	adminErr := s.notificationManager.Send(notification.AdminStatusNotice, notification.EmailSystem, notification.NotificationData{
		To: s.adminEmail,
		Data: map[string]string{
			"Email":     n.Email,
			"BrandName": n.BrandName,
			"Status":    n.Status,
			"Reason":    reason,
		},
	})
	if adminErr != nil {
		slog.Error("Failed to send admin status copy", "admin_email", s.adminEmail, "error", adminErr)
	}

	slog.Info("Account status email sent", "email", n.Email, "status", n.Status)
	return nil
}

// SendContactMessage relays a contact-form submission to the support inbox.
func (s *NoticeService) SendContactMessage(ctx context.Context, n ContactNotice) error {
	if n.Email == "" {
		return ErrEmailRequired
	}
	if n.Message == "" {
		return ErrMessageRequired
	}

	err := s.notificationManager.Send(notification.ContactMessage, notification.EmailSystem, notification.NotificationData{
		To: s.adminEmail,
		Data: map[string]string{
			"Name":    n.Name,
			"Email":   n.Email,
			"Message": n.Message,
		},
	})
	if err != nil {
		slog.Error("Failed to relay contact message", "from", n.Email, "error", err)
		return ErrDeliveryFailed
	}

	slog.Info("Contact message relayed", "from", n.Email)
	return nil
}
