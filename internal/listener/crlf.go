package listener

import (
	"bytes"
	"io"
)

var (
	crlf = []byte("\r\n")
	cr   = []byte("\r")
	lf   = []byte("\n")
)

// crlfConn translates line endings for clients that speak CRLF. Input
// endings become "\n" and output "\n" becomes "\r\n".
type crlfConn struct {
	rw io.ReadWriter
}

func newCRLFReadWriter(rw io.ReadWriter) io.ReadWriter {
	return &crlfConn{rw: rw}
}

// Read folds "\r\n" and a bare "\r" (sent by ssh clients without a pty)
// into "\n".
func (c *crlfConn) Read(p []byte) (int, error) {
	n, err := c.rw.Read(p)
	if n > 0 {
		data := bytes.ReplaceAll(p[:n], crlf, lf)
		data = bytes.ReplaceAll(data, cr, lf)
		n = copy(p, data)
	}
	return n, err
}

// Write reports len(p) on success so callers never see the expanded size.
func (c *crlfConn) Write(p []byte) (int, error) {
	_, err := c.rw.Write(bytes.ReplaceAll(p, lf, crlf))
	if err != nil {
		return 0, err
	}
	return len(p), nil
}
