package client

import (
	"bufio"
	"context"
	"fmt"
	"io"
)

type closeWriter interface {
	CloseWrite() error
}

// RunLine relays lines typed on in to the server and prints everything the
// server sends to out. When in is exhausted the write side of conn is shut
// down and RunLine waits for the server to finish.
func RunLine(ctx context.Context, conn io.ReadWriter, in io.Reader, out io.Writer) error {
	output := make(chan error, 1)
	go func() {
		_, err := io.Copy(out, conn)
		output <- err
	}()

	input := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			if _, err := fmt.Fprintf(conn, "%s\n", scanner.Text()); err != nil {
				input <- err
				return
			}
		}
		if err := scanner.Err(); err != nil {
			input <- fmt.Errorf("reading input: %w", err)
			return
		}
		if cw, ok := conn.(closeWriter); ok {
			input <- cw.CloseWrite()
			return
		}
		input <- nil
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-output:
			return ignoreClosed(err)
		case err := <-input:
			if err != nil {
				return ignoreClosed(err)
			}
			// Input is done; keep printing until the server hangs up.
			input = nil
		}
	}
}
