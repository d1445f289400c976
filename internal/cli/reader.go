package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

// Input errors.
var (
	ErrInputCancelled = errors.New("input canceled")
	ErrInputClosed    = errors.New("input closed")
)

// LineReader reads whole lines from an input stream and gives up when the
// context is canceled.
type LineReader struct {
	reader *bufio.Reader
	mu     sync.Mutex
}

// NewLineReader wraps r for line-at-a-time reading.
func NewLineReader(r io.Reader) *LineReader {
	if r == nil {
		panic("reader cannot be nil")
	}

	return &LineReader{
		reader: bufio.NewReader(r),
	}
}

// ReadLine returns the next line with surrounding whitespace removed. A final
// line without a newline is still returned; after that ErrInputClosed is.
func (r *LineReader) ReadLine(ctx context.Context) (string, error) {
	type result struct {
		err   error
		value string
	}
	resultCh := make(chan result, 1)

	go func() {
		r.mu.Lock()
		defer r.mu.Unlock()

		value, err := r.reader.ReadString('\n')
		resultCh <- result{value: value, err: err}
	}()

	// The read goroutine keeps running after cancellation until input arrives.
	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case res := <-resultCh:
		if res.err != nil {
			if errors.Is(res.err, io.EOF) && res.value != "" {
				return strings.TrimSpace(res.value), nil
			}
			if errors.Is(res.err, io.EOF) {
				return "", ErrInputClosed
			}
			return "", res.err
		}
		return strings.TrimSpace(res.value), nil
	}
}
