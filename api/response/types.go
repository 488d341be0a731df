/*
Package response is the API layer's uniform response envelope.

Design rules:
 1. HTTP status mapping stays in the API boundary; the domain and
    application layers never see status codes.
 2. Error responses expose the stable error code and a user-facing
    message, never stacks or internal error text.
 3. Every response carries the request id for log correlation.
 4. Internal failures render as "internal server error"; the real
    cause goes to the log only.
*/
package response

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = "request_id"

// Response is the uniform envelope.
type Response struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	Code      int         `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}
