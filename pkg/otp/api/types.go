package api

// Actions accepted by the verification endpoint
const (
	ActionGenerate = "generate"
	ActionVerify   = "verify"
)

// VerificationRequest is the single request shape for the verification
// endpoint; Code is only read for the verify action.
type VerificationRequest struct {
	Email  string `json:"email"`
	Action string `json:"action"`
	Code   string `json:"code,omitempty"`
}

// SuccessResponse reports a completed generate or verify
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}
