package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"time"
)

const dialTimeout = 10 * time.Second

// Dial connects to a server's plain TCP listener.
func Dial(ctx context.Context, addr string) (net.Conn, error) {
	d := net.Dialer{Timeout: dialTimeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", addr, err)
	}
	return conn, nil
}

var passwordPrompts = []string{
	"Password: ",
	"Enter password: ",
	"Confirm password: ",
}

// isPasswordPrompt reports whether the server output ends by asking for a
// password, ignoring the trailing newline.
func isPasswordPrompt(output string) bool {
	output = strings.TrimSuffix(output, "\n")
	for _, p := range passwordPrompts {
		if strings.HasSuffix(output, p) {
			return true
		}
	}
	return false
}

func ignoreClosed(err error) error {
	if errors.Is(err, net.ErrClosed) || errors.Is(err, io.ErrClosedPipe) || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
