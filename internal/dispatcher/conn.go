// internal/dispatcher/conn.go
//
// Closing connections without losing the response. Closing a socket that
// still has unread input makes the kernel answer with RST, and the client
// may drop the response it was reading. The write side is shut first, then
// whatever the client sent is drained (bounded in size and time).

package dispatcher

import (
	"io"
	"net"
	"time"
)

// drainLimit caps how much unread input is discarded before closing.
const drainLimit = 64 << 10

// closeDrained half-closes conn, discards pending input until EOF, the
// limit, or wait elapses, and then closes it.
func closeDrained(conn net.Conn, wait time.Duration) {
	if cw, ok := conn.(interface{ CloseWrite() error }); ok {
		_ = cw.CloseWrite()
	}
	_ = conn.SetReadDeadline(time.Now().Add(wait))
	_, _ = io.Copy(io.Discard, io.LimitReader(conn, drainLimit))
	_ = conn.Close()
}
