// Package notification delivers the platform's transactional emails:
// verification codes, application decisions, and contact-form relays.
// Channels implement Notifier; templates are registered per notice type
// on a NotificationManager.
package notification

// NotificationSystem represents a delivery channel. Email is the only
// channel the platform uses today.
type NotificationSystem string

// NoticeType identifies a kind of notice (e.g. "verification_code").
type NoticeType string

const (
	EmailSystem NotificationSystem = "email"

	// VerificationCode carries the registration OTP to the applicant.
	VerificationCode NoticeType = "verification_code"
	// AccountApproved and AccountRejected carry the application decision.
	AccountApproved NoticeType = "account_approved"
	AccountRejected NoticeType = "account_rejected"
	// AdminStatusNotice is the admin's copy of an application decision.
	AdminStatusNotice NoticeType = "admin_status_notice"
	// ContactMessage relays a contact-form submission to the support inbox.
	ContactMessage NoticeType = "contact_message"
)

// NotificationData is the per-send payload handed to a Notifier.
type NotificationData struct {
	To      string            // Recipient address
	Subject string            // Optional subject override
	Data    map[string]string // Template values
}

// NoticeTemplate holds the registered content for a notice type. Subject
// is required; at least one of Text or Html must be set.
type NoticeTemplate struct {
	Subject string
	Text    string
	Html    string
}

// Notifier sends a rendered notice over one channel.
type Notifier interface {
	Send(noticeType NoticeType, data NotificationData, template NoticeTemplate) error
}
