package listener

import (
	"bytes"
	"io"
)

var (
	crlf   = []byte("\r\n")
	crNul  = []byte("\r\x00")
	cr     = []byte("\r")
	lf     = []byte("\n")
	nulMap = func(r rune) rune {
		if r == 0 {
			return -1
		}
		return r
	}
)

// lineEndings adapts a terminal connection to the console's \n world. Reads
// fold \r\n, telnet's \r NUL and a bare \r (ssh with a pty) into \n; writes
// expand \n to \r\n.
type lineEndings struct {
	rw io.ReadWriter
}

func newCRLFReadWriter(rw io.ReadWriter) io.ReadWriter {
	return &lineEndings{rw: rw}
}

func (c *lineEndings) Read(p []byte) (int, error) {
	n, err := c.rw.Read(p)
	if n > 0 {
		data := bytes.ReplaceAll(p[:n], crlf, lf)
		data = bytes.ReplaceAll(data, crNul, lf)
		data = bytes.ReplaceAll(data, cr, lf)
		data = bytes.Map(nulMap, data)
		n = copy(p, data)
	}
	return n, err
}

// Write reports len(p) on success; the expansion is invisible to callers.
func (c *lineEndings) Write(p []byte) (int, error) {
	if _, err := c.rw.Write(bytes.ReplaceAll(p, lf, crlf)); err != nil {
		return 0, err
	}
	return len(p), nil
}
