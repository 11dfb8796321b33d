package wire

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRequestLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		kind    Kind
		path    string
		move    string
		hasMove bool
		version string
	}{
		{"fetch", "GET /game.html HTTP/1.1\r\n", KindFetch, "game.html", "", false, "HTTP/1.1"},
		{"lowercase method", "get /game.html HTTP/1.1", KindFetch, "game.html", "", false, "HTTP/1.1"},
		{"no version", "GET /index", KindFetch, "index", "", false, "HTTP/1.0"},
		{"guess", "GET /words?move=cat HTTP/1.1", KindGuess, "words", "cat", true, "HTTP/1.1"},
		{"encoded guess", "GET /words?move=c%41t HTTP/1.1", KindGuess, "words", "cAt", true, "HTTP/1.1"},
		{"bad escape kept raw", "GET /words?move=ca%zz HTTP/1.1", KindGuess, "words", "ca%zz", true, "HTTP/1.1"},
		{"second pair", "GET /words?x=1&move=act HTTP/1.1", KindGuess, "words", "act", true, "HTTP/1.1"},
		{"wrong key", "GET /words?guess=cat HTTP/1.1", KindGuess, "words", "", false, "HTTP/1.1"},
		{"missing value", "GET /words?move= HTTP/1.1", KindGuess, "words", "", false, "HTTP/1.1"},
		{"no pair", "GET /words? HTTP/1.1", KindGuess, "words", "", false, "HTTP/1.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := ParseRequestLine(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, req.Kind)
			assert.Equal(t, tt.path, req.Path)
			assert.Equal(t, tt.move, req.Move)
			assert.Equal(t, tt.hasMove, req.HasMove())
			assert.Equal(t, tt.version, req.Version)
		})
	}
}

func TestParseRequestLineErrors(t *testing.T) {
	_, err := ParseRequestLine("POST /words HTTP/1.1")
	assert.ErrorIs(t, err, ErrMethodNotAllowed)

	_, err = ParseRequestLine("DELETE /x")
	assert.ErrorIs(t, err, ErrMethodNotAllowed)

	for _, line := range []string{"", "\r\n", "GET", "GET / HTTP/1.1 extra"} {
		_, err := ParseRequestLine(line)
		assert.ErrorIs(t, err, ErrBadRequest, "%q", line)
	}
}

func TestReadRequest(t *testing.T) {
	req, err := ReadRequest(strings.NewReader("GET /words?move=cats HTTP/1.1\r\nHost: x\r\n\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "cats", req.Move)

	req, err = ReadRequest(strings.NewReader("GET /game.html HTTP/1.1"))
	require.NoError(t, err)
	assert.Equal(t, "game.html", req.Path)

	_, err = ReadRequest(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrNoRequest)
	assert.NotErrorIs(t, err, ErrBadRequest)

	// A blank line is something, just not a request.
	_, err = ReadRequest(strings.NewReader("\r\n"))
	assert.ErrorIs(t, err, ErrBadRequest)

	// A request line longer than the limit is cut off and rejected.
	long := "GET /" + strings.Repeat("a", MaxRequestLine) + " HTTP/1.1\r\n"
	_, err = ReadRequest(strings.NewReader(long))
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestResponses(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NotFound(&buf))
	assert.Equal(t, "HTTP/1.1 404 Not Found\r\nContent-Length: 13\r\nConnection: close\r\n\r\n404 Not Found", buf.String())

	buf.Reset()
	require.NoError(t, BadRequest(&buf))
	assert.Equal(t, "HTTP/1.0 400 Bad Request\r\nContent-Length: 15\r\nConnection: close\r\n\r\n400 Bad Request", buf.String())

	buf.Reset()
	require.NoError(t, Full(&buf))
	assert.True(t, strings.HasPrefix(buf.String(), "HTTP/1.1 503 Service Unavailable\r\n"))
	assert.True(t, strings.HasSuffix(buf.String(), "\r\n\r\n"+FullBody))
	assert.Contains(t, buf.String(), "Content-Length: 26\r\n")

	buf.Reset()
	require.NoError(t, OK(&buf, []byte("<p>hi</p>")))
	assert.Equal(t, "HTTP/1.1 200 OK\r\nContent-Type: text/html; charset=UTF-8\r\nContent-Length: 9\r\nConnection: close\r\n\r\n<p>hi</p>", buf.String())
}
