package codec

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/spice-ledger/internal/model"
)

// MaxLineSize bounds a single record line. Longer lines are skipped as
// malformed and decoding continues with the next line.
const MaxLineSize = 1 << 20

// Number of leading bytes of an oversized line kept in its RecordError.
const oversizedPreview = 64

// ReadResult holds what DecodeAll recovered from a stream.
type ReadResult struct {
	Transactions []model.Transaction
	Skipped      []*RecordError
}

// DecodeAll reads records line by line. Blank lines are ignored and malformed
// lines are collected in Skipped. A read error stops decoding and is returned
// together with everything decoded before it.
func DecodeAll(r io.Reader) (*ReadResult, error) {
	result := &ReadResult{}
	br := bufio.NewReader(r)

	lineNo := 0
	for {
		line, oversized, err := readLine(br)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return result, fmt.Errorf("failed to read records after line %d: %w", lineNo, err)
		}
		lineNo++

		if oversized {
			result.Skipped = append(result.Skipped, &RecordError{
				Line: lineNo,
				Text: line,
				Err:  fmt.Errorf("%w: line exceeds %d bytes", ErrMalformedRecord, MaxLineSize),
			})
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		t, err := Decode(line)
		if err != nil {
			result.Skipped = append(result.Skipped, &RecordError{
				Line: lineNo,
				Text: strings.TrimSpace(line),
				Err:  err,
			})
			continue
		}
		result.Transactions = append(result.Transactions, t)
	}

	return result, nil
}

// readLine returns the next line without its line ending. A line longer than
// MaxLineSize is consumed in full but only its first bytes are returned, with
// oversized set.
func readLine(br *bufio.Reader) (string, bool, error) {
	var buf []byte
	oversized := false
	for {
		chunk, isPrefix, err := br.ReadLine()
		if err != nil {
			return "", false, err
		}
		if !oversized {
			buf = append(buf, chunk...)
			if len(buf) > MaxLineSize {
				oversized = true
				buf = bytes.Clone(buf[:oversizedPreview])
			}
		}
		if !isPrefix {
			return string(buf), oversized, nil
		}
	}
}

// EncodeAll writes one line per transaction, in order.
func EncodeAll(w io.Writer, txns []model.Transaction) error {
	bw := bufio.NewWriter(w)
	for i, t := range txns {
		if _, err := bw.WriteString(Encode(t) + "\n"); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i+1, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush records: %w", err)
	}
	return nil
}
