package api

// StatusEmailRequest announces an application decision
type StatusEmailRequest struct {
	Email     string `json:"email"`
	Status    string `json:"status"`
	BrandName string `json:"brandName"`
	Reason    string `json:"reason,omitempty"`
}

// ContactEmailRequest relays a contact-form submission
type ContactEmailRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// SuccessResponse reports a completed send
type SuccessResponse struct {
	Success bool `json:"success"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}
