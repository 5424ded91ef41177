// Package response builds the JSON envelopes returned by every API endpoint.
//
// Handlers create one Builder per request, optionally change its status code,
// and turn data or an error message into a Reply which is then written to the
// client.
package response

import (
	"encoding/json"
	"net/http"
)

const (
	// StatusSuccess is the status field of every success envelope.
	StatusSuccess = "Success"
	// StatusFailed is the status field of every failure envelope.
	StatusFailed = "failed"

	// DefaultNotFoundMessage is used by NotFound when no message is given.
	DefaultNotFoundMessage = "Not Found"
)

// Builder tracks the status code of a single response.
// A Builder must not be shared between requests. The zero value is ready to
// use and reports 200 until a code is set.
type Builder struct {
	statusCode int
}

// NewBuilder returns a builder whose status code is 200.
func NewBuilder() *Builder {
	return &Builder{statusCode: http.StatusOK}
}

// StatusCode returns the current status code.
func (b *Builder) StatusCode() int {
	if b.statusCode == 0 {
		return http.StatusOK
	}
	return b.statusCode
}

// SetStatusCode records code as the current status code and returns b so
// calls can be chained. The code is not validated.
func (b *Builder) SetStatusCode(code int) *Builder {
	b.statusCode = code
	return b
}

// NotFound sets the status code to 404 and returns a failure envelope.
// An empty message is replaced by DefaultNotFoundMessage.
func (b *Builder) NotFound(message string) Reply {
	if message == "" {
		message = DefaultNotFoundMessage
	}
	return b.SetStatusCode(http.StatusNotFound).Error(message)
}

// Error returns a failure envelope carrying the current status code.
//
// The current code is used as-is, even if it is still 200. Callers set an
// error code first.
func (b *Builder) Error(message string) Reply {
	return b.Response(Failure{
		Status: StatusFailed,
		Error: ErrorBody{
			StatusCode: b.StatusCode(),
			Message:    message,
		},
	})
}

// Response wraps data, unchanged, together with the current status code.
func (b *Builder) Response(data any) Reply {
	return Reply{Status: b.StatusCode(), Body: data}
}

// Reply is a status code and a body ready to be serialized.
type Reply struct {
	Status int
	Body   any
}

// Write serializes the reply as JSON.
//
// net/http refuses status codes outside 100-999; such replies are sent as
// 500 with the body unchanged.
func (r Reply) Write(w http.ResponseWriter) {
	status := r.Status
	if status < 100 || status > 999 {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, r.Body)
}

// RespondJSON writes a success envelope with the given status code and payload.
func RespondJSON(w http.ResponseWriter, status int, payload any) {
	OK(NewBuilder().SetStatusCode(status), payload).Write(w)
}

// RespondError writes a failure envelope with the given status code and message.
func RespondError(w http.ResponseWriter, status int, msg string) {
	NewBuilder().SetStatusCode(status).Error(msg).Write(w)
}

// writeJSON encodes v as JSON and writes it to the response writer.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
