// internal/wire/response.go
//
// Response framing: status line, headers, blank line, body. Every response
// closes the connection afterwards.

package wire

import (
	"fmt"
	"io"
	"net/http"
)

// Fixed bodies sent for the error cases.
const (
	NotFoundBody   = "404 Not Found"
	BadRequestBody = "400 Bad Request"
	FullBody       = "Sorry, Web Server is Full!"
)

// HTMLContentType is the content type of rendered boards.
const HTMLContentType = "text/html; charset=UTF-8"

// Write frames body as a complete response with the given status.
func Write(w io.Writer, version string, status int, contentType string, body []byte) error {
	if version == "" {
		version = "HTTP/1.1"
	}
	head := fmt.Sprintf("%s %d %s\r\n", version, status, http.StatusText(status))
	if contentType != "" {
		head += "Content-Type: " + contentType + "\r\n"
	}
	head += fmt.Sprintf("Content-Length: %d\r\nConnection: close\r\n\r\n", len(body))

	if _, err := io.WriteString(w, head); err != nil {
		return err
	}
	_, err := w.Write(body)
	return err
}

// OK sends a 200 with an HTML body.
func OK(w io.Writer, body []byte) error {
	return Write(w, "HTTP/1.1", http.StatusOK, HTMLContentType, body)
}

// NotFound sends the fixed 404 response.
func NotFound(w io.Writer) error {
	return Write(w, "HTTP/1.1", http.StatusNotFound, "", []byte(NotFoundBody))
}

// BadRequest sends the fixed 400 response.
func BadRequest(w io.Writer) error {
	return Write(w, "HTTP/1.0", http.StatusBadRequest, "", []byte(BadRequestBody))
}

// Full sends the capacity-exceeded response.
func Full(w io.Writer) error {
	return Write(w, "HTTP/1.1", http.StatusServiceUnavailable, "text/plain; charset=UTF-8", []byte(FullBody))
}
