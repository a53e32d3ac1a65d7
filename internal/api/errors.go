package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error is a non-2xx response from the server. Detail carries the server's
// human-readable explanation when one was sent.
type Error struct {
	StatusCode int
	Detail     string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("server returned %d", e.StatusCode)
}

// errorEnvelope is the server's error body: {"detail": "..."}.
type errorEnvelope struct {
	Detail string `json:"detail"`
}

// newError builds an *Error from a non-2xx response body. Bodies that are
// not the expected envelope are tolerated; the status code alone remains.
func newError(statusCode int, body []byte) *Error {
	var envelope errorEnvelope
	_ = json.Unmarshal(body, &envelope)
	return &Error{
		StatusCode: statusCode,
		Detail:     envelope.Detail,
	}
}

// User-facing messages. Transport errors and unexpected server responses all
// collapse into the generic one.
const (
	msgGeneric         = "Something went wrong talking to the server. Please try again."
	msgDuplicateFolder = "A folder with this name already exists."
	msgFolderNotEmpty  = "This folder still contains bookmarks. Move or delete them first."
	msgNotFound        = "That item no longer exists on the server."
)

// FriendlyMessage turns any error from the client into a message fit for the
// status line. A few cases pattern-match the server's detail text to pick a
// friendlier wording.
func FriendlyMessage(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return msgGeneric
	}

	detail := strings.ToLower(apiErr.Detail)
	switch {
	case strings.Contains(detail, "already exists"):
		return msgDuplicateFolder
	case strings.Contains(detail, "bookmarks"):
		return msgFolderNotEmpty
	case apiErr.StatusCode == http.StatusNotFound:
		return msgNotFound
	default:
		return msgGeneric
	}
}
