// Package network provides the auto-HTTPS listener used when the panel is
// served with TLS: plain-HTTP requests hitting the TLS port get a redirect
// to the HTTPS equivalent instead of a handshake error.
package network

import (
	"bufio"
	"bytes"
	"fmt"
	"net"
	"net/http"
	"sync"
)

type autoHttpsListener struct {
	net.Listener
}

// NewAutoHttpsListener wraps a listener so every accepted connection
// redirects plain-HTTP requests to HTTPS.
func NewAutoHttpsListener(listener net.Listener) net.Listener {
	return &autoHttpsListener{Listener: listener}
}

func (l *autoHttpsListener) Accept() (net.Conn, error) {
	conn, err := l.Listener.Accept()
	if err != nil {
		return nil, err
	}
	return &autoHttpsConn{Conn: conn}, nil
}

// autoHttpsConn sniffs the first read: if it parses as an HTTP request the
// connection answers with a 307 to https:// and closes; otherwise the bytes
// are replayed to the TLS handshake.
type autoHttpsConn struct {
	net.Conn

	firstBuf []byte
	bufStart int

	readRequestOnce sync.Once
}

func (c *autoHttpsConn) readRequest() {
	buf := make([]byte, 2048)
	n, err := c.Conn.Read(buf)
	if err != nil {
		return
	}
	c.firstBuf = buf[:n]

	request, err := http.ReadRequest(bufio.NewReader(bytes.NewReader(c.firstBuf)))
	if err != nil {
		return
	}

	resp := http.Response{
		StatusCode: http.StatusTemporaryRedirect,
		Header:     http.Header{},
	}
	resp.Header.Set("Location", fmt.Sprintf("https://%v%v", request.Host, request.RequestURI))
	_ = resp.Write(c.Conn)
	_ = c.Close()
	c.firstBuf = nil
}

func (c *autoHttpsConn) Read(buf []byte) (int, error) {
	c.readRequestOnce.Do(c.readRequest)

	if c.firstBuf != nil {
		n := copy(buf, c.firstBuf[c.bufStart:])
		c.bufStart += n
		if c.bufStart >= len(c.firstBuf) {
			c.firstBuf = nil
		}
		return n, nil
	}

	return c.Conn.Read(buf)
}
