package resend

// Email is the request body of POST /emails
type Email struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// SendResponse is the success body of POST /emails
type SendResponse struct {
	ID string `json:"id"`
}

// ErrorResponse is the error body returned by the API
type ErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Name       string `json:"name"`
	Message    string `json:"message"`
}
