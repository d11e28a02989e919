package listener

import (
	"bytes"
	"io"
)

// crlfConn normalizes line endings between the wire and the session: reads
// collapse \r\n and bare \r down to \n, writes expand \n to \r\n. Telnet
// clients send \r\n; SSH clients without a PTY send a bare \r.
type crlfConn struct {
	rw io.ReadWriter
}

func newCRLFReadWriter(rw io.ReadWriter) io.ReadWriter {
	return &crlfConn{rw: rw}
}

func (c *crlfConn) Read(p []byte) (int, error) {
	n, err := c.rw.Read(p)
	if n > 0 {
		normalized := bytes.ReplaceAll(p[:n], []byte("\r\n"), []byte("\n"))
		normalized = bytes.ReplaceAll(normalized, []byte("\r"), []byte("\n"))
		n = copy(p, normalized)
	}
	return n, err
}

func (c *crlfConn) Write(p []byte) (int, error) {
	_, err := c.rw.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n")))
	// Report the caller's length, not the expanded one.
	return len(p), err
}
