package types

// SuccessEnvelope wraps every JSON success payload except the storefront's
// legacy cart and admin AJAX shapes, which keep their historical top-level
// fields.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the public face of a coded error: the stable code string, a
// client-safe message, and optional field-level details on validation
// failures.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
