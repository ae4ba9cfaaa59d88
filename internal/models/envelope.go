package models

// Envelope is the single result produced for one file operation: either a
// serialized body with its media type, or an error message with IsError set.
type Envelope struct {
	Body      string
	MediaType string
	IsError   bool
	Message   string
}

// SuccessEnvelope wraps a serialized body.
func SuccessEnvelope(body, mediaType string) *Envelope {
	return &Envelope{Body: body, MediaType: mediaType}
}

// ErrorEnvelope wraps a human-readable failure message.
func ErrorEnvelope(message string) *Envelope {
	return &Envelope{IsError: true, Message: message}
}

// Text returns what a transport should show for the envelope.
func (e *Envelope) Text() string {
	if e.IsError {
		return e.Message
	}
	return e.Body
}

// ErrorDetail is a failed operation before it is framed for a transport.
// Code uses the JSON-RPC code space; Data carries path, operation and kind.
type ErrorDetail struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse is the body returned by the REST endpoints on failure.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
