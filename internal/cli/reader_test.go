package cli

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineReader_ReadLine(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "single line", input: "test input\n", expected: []string{"test input"}},
		{name: "surrounding whitespace", input: "  test input  \n", expected: []string{"test input"}},
		{name: "empty line", input: "\n", expected: []string{""}},
		{name: "last line without newline", input: "one\ntwo", expected: []string{"one", "two"}},
		{name: "windows line endings", input: "one\r\ntwo\r\n", expected: []string{"one", "two"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewLineReader(strings.NewReader(tt.input))
			ctx := context.Background()

			for _, want := range tt.expected {
				got, err := r.ReadLine(ctx)
				require.NoError(t, err)
				assert.Equal(t, want, got)
			}

			_, err := r.ReadLine(ctx)
			assert.ErrorIs(t, err, ErrInputClosed)
		})
	}
}

func TestLineReader_Cancellation(t *testing.T) {
	pr, pw := io.Pipe()
	defer func() { _ = pw.Close() }()

	r := NewLineReader(pr)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := r.ReadLine(ctx)
	assert.ErrorIs(t, err, ErrInputCancelled)
}

func TestNewLineReader_NilPanics(t *testing.T) {
	assert.Panics(t, func() { NewLineReader(nil) })
}
