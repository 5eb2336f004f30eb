package player

import (
	"bufio"
	"context"
	"errors"
	"io"
	"sync"
)

const maxLineLength = 4096

var errLineTooLong = errors.New("line too long")

// inputLine is one line read from the client. Lines over maxLineLength are
// discarded and arrive with tooLong set.
type inputLine struct {
	text    string
	tooLong bool
}

// lineReader reads lines from a connection on its own goroutine so the
// session can wait for input and other events at the same time.
type lineReader struct {
	lines chan inputLine
	stop  chan struct{}
	once  sync.Once

	// err is set before lines is closed.
	err error
}

func newLineReader(r io.Reader) *lineReader {
	lr := &lineReader{
		lines: make(chan inputLine),
		stop:  make(chan struct{}),
	}

	go func() {
		defer close(lr.lines)

		br := bufio.NewReaderSize(r, maxLineLength)
		for {
			line, err := nextLine(br)
			if err != nil {
				if err != io.EOF {
					lr.err = err
				}
				return
			}
			select {
			case lr.lines <- line:
			case <-lr.stop:
				return
			}
		}
	}()

	return lr
}

// nextLine reads up to the next newline. An over-long line is consumed in
// full so the following line starts clean.
func nextLine(br *bufio.Reader) (inputLine, error) {
	b, isPrefix, err := br.ReadLine()
	if err != nil {
		return inputLine{}, err
	}
	if !isPrefix {
		return inputLine{text: string(b)}, nil
	}

	for isPrefix {
		_, isPrefix, err = br.ReadLine()
		if err != nil {
			return inputLine{}, err
		}
	}
	return inputLine{tooLong: true}, nil
}

// Lines returns the channel lines are delivered on. It is closed when the
// connection ends.
func (lr *lineReader) Lines() <-chan inputLine {
	return lr.lines
}

// Err returns the read error once Lines is closed; io.EOF for a clean close.
func (lr *lineReader) Err() error {
	if lr.err != nil {
		return lr.err
	}
	return io.EOF
}

// ReadLine waits for the next line. An over-long line returns errLineTooLong,
// after which reading can continue.
func (lr *lineReader) ReadLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-lr.lines:
		if !ok {
			return "", lr.Err()
		}
		if line.tooLong {
			return "", errLineTooLong
		}
		return line.text, nil
	}
}

// Close stops delivering lines. The reading goroutine exits once the
// connection is closed or its next line is read.
func (lr *lineReader) Close() {
	lr.once.Do(func() {
		close(lr.stop)
	})
}
