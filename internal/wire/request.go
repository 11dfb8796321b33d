// internal/wire/request.go
//
// Minimal request-line parsing for the game endpoint.
//
// Only the first line of a request is read:
//
//	<METHOD> <path>[?<key>=<value>] [<version>]
//
// The method must be GET (any case). A query string turns the request into
// a guess submission; only the "move" key is recognized and anything else
// leaves Move empty. Headers and bodies are ignored.

package wire

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
)

// MaxRequestLine caps how many bytes are read while looking for the
// request line.
const MaxRequestLine = 1024

var (
	// ErrBadRequest covers unparsable request lines.
	ErrBadRequest = errors.New("wire: malformed request line")
	// ErrNoRequest means the peer closed without sending anything.
	ErrNoRequest = errors.New("wire: connection closed before request")
	// ErrMethodNotAllowed is returned for anything but GET.
	ErrMethodNotAllowed = errors.New("wire: only GET is supported")
)

// Kind distinguishes the two request shapes.
type Kind int

const (
	// KindFetch is a plain resource fetch (no query string).
	KindFetch Kind = iota
	// KindGuess is a request carrying a query string.
	KindGuess
)

func (k Kind) String() string {
	if k == KindGuess {
		return "guess"
	}
	return "fetch"
}

// Request is a parsed request line.
type Request struct {
	Method  string
	Target  string // raw request target
	Path    string // target without query, leading '/' stripped
	Query   string
	Version string
	Kind    Kind
	Move    string // decoded value of move=..., empty when absent or malformed
}

// HasMove reports whether a usable guess was submitted.
func (r *Request) HasMove() bool { return r.Kind == KindGuess && r.Move != "" }

// ReadRequest reads and parses the request line from r. At most
// MaxRequestLine bytes are consumed.
func ReadRequest(r io.Reader) (*Request, error) {
	br := bufio.NewReaderSize(io.LimitReader(r, MaxRequestLine), MaxRequestLine)
	line, err := br.ReadString('\n')
	switch {
	case err == nil:
	case !errors.Is(err, io.EOF):
		return nil, err
	case line == "":
		return nil, ErrNoRequest
	case len(line) >= MaxRequestLine:
		return nil, fmt.Errorf("%w: request line too long", ErrBadRequest)
	}
	return ParseRequestLine(line)
}

// ParseRequestLine tokenizes one request line.
func ParseRequestLine(line string) (*Request, error) {
	fields := strings.Fields(strings.TrimRight(line, "\r\n"))
	if len(fields) < 2 || len(fields) > 3 {
		return nil, fmt.Errorf("%w: %q", ErrBadRequest, line)
	}
	req := &Request{Method: fields[0], Target: fields[1], Version: "HTTP/1.0"}
	if len(fields) == 3 {
		req.Version = fields[2]
	}
	if !strings.EqualFold(req.Method, "GET") {
		return req, fmt.Errorf("%w: %s", ErrMethodNotAllowed, req.Method)
	}

	path, query, hasQuery := strings.Cut(req.Target, "?")
	req.Path = strings.TrimPrefix(path, "/")
	if hasQuery {
		req.Kind = KindGuess
		req.Query = query
		req.Move = moveValue(query)
	}
	return req, nil
}

// moveValue extracts the first non-empty move=<value> pair. Values are
// percent-decoded when possible and used verbatim otherwise.
func moveValue(query string) string {
	for _, pair := range strings.Split(query, "&") {
		key, val, ok := strings.Cut(pair, "=")
		if !ok || key != "move" || val == "" {
			continue
		}
		if dec, err := url.QueryUnescape(val); err == nil {
			return dec
		}
		return val
	}
	return ""
}
