package dto

// Envelope is the uniform success wrapper used by every API response.
// Failures use ErrorEnvelope; the two shapes never mix.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// ErrorBody is the error payload carried by ErrorEnvelope.
type ErrorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorEnvelope is the uniform failure wrapper.
type ErrorEnvelope struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

// Success wraps data in a success envelope.
func Success(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

// SuccessMessage wraps data with a human message.
func SuccessMessage(data any, message string) Envelope {
	return Envelope{Success: true, Data: data, Message: message}
}

// Failure builds the error envelope.
func Failure(code, message string, details map[string]any) ErrorEnvelope {
	return ErrorEnvelope{Success: false, Error: ErrorBody{Code: code, Message: message, Details: details}}
}
