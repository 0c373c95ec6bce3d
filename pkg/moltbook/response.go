package moltbook

import (
	"encoding/json"
	"net/http"

	"github.com/tidwall/gjson"
)

// Response is a decoded API response. The body is kept exactly as the
// service sent it; a non-2xx status is not an error at this layer.
type Response struct {
	StatusCode int
	Header     http.Header

	// Raw is the body as received.
	Raw json.RawMessage

	// Data is Raw decoded with encoding/json into generic values.
	Data any
}

// OK reports whether the status code is 2xx.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Object returns the body as a JSON object, or nil when it is not one.
func (r *Response) Object() map[string]any {
	m, _ := r.Data.(map[string]any)
	return m
}

// Get looks up a gjson path such as "agent.name" or "posts.#.title".
func (r *Response) Get(path string) gjson.Result {
	return gjson.GetBytes(r.Raw, path)
}

// Decode unmarshals the body into v, typically one of the payload models.
func (r *Response) Decode(v any) error {
	return json.Unmarshal(r.Raw, v)
}

// ServiceError returns the error the service embedded in the body, if any:
// either "success": false or a string "error" field. Callers that want a
// stricter contract than the client's opt into it here.
func (r *Response) ServiceError() error {
	success := r.Get("success")
	msg := r.Get("error")
	failed := (success.Exists() && success.Type == gjson.False) ||
		(msg.Exists() && msg.Type == gjson.String && msg.String() != "")
	if !failed {
		return nil
	}
	return &APIError{
		StatusCode: r.StatusCode,
		Message:    msg.String(),
		Hint:       r.Get("hint").String(),
	}
}
