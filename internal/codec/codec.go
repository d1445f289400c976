// Package codec converts transactions to and from their one-line store form.
//
// A record is five fields joined by '|': kind, amount, category, notes, timestamp.
// Backslash, '|', CR and LF inside text fields are escaped with a backslash so a
// record always occupies exactly one line and always splits back into five fields.
// Records written before escaping existed decode unchanged unless their text
// contains a backslash followed by '\\', '|', 'n' or 'r', which reads as an escape.
package codec

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Veraticus/spice-ledger/internal/model"
)

// Delimiter separates the fields of a record.
const Delimiter = '|'

// FieldCount is the number of fields in every record.
const FieldCount = 5

// ErrMalformedRecord is returned for lines that cannot be decoded into a transaction.
var ErrMalformedRecord = errors.New("malformed transaction record")

// RecordError describes a store line that was rejected while loading.
type RecordError struct {
	Err  error
	Text string
	Line int // 1-based
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// Encode renders t as a single store line without a trailing newline.
func Encode(t model.Transaction) string {
	var b strings.Builder
	b.Grow(len(t.Category) + len(t.Notes) + len(t.Timestamp) + 32)

	b.WriteString(escape(string(t.Kind)))
	b.WriteByte(Delimiter)
	b.WriteString(FormatAmount(t.Amount))
	b.WriteByte(Delimiter)
	b.WriteString(escape(t.Category))
	b.WriteByte(Delimiter)
	b.WriteString(escape(t.Notes))
	b.WriteByte(Delimiter)
	b.WriteString(escape(t.Timestamp))

	return b.String()
}

// Decode parses one store line.
func Decode(line string) (model.Transaction, error) {
	fields := split(strings.TrimSpace(line))
	if len(fields) != FieldCount {
		return model.Transaction{}, fmt.Errorf("%w: expected %d fields, got %d", ErrMalformedRecord, FieldCount, len(fields))
	}

	kind, err := model.ParseKind(fields[0])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("%w: unknown kind %q", ErrMalformedRecord, fields[0])
	}

	amount, err := ParseAmount(fields[1])
	if err != nil {
		return model.Transaction{}, err
	}

	return model.Transaction{
		Kind:      kind,
		Amount:    amount,
		Category:  fields[2],
		Notes:     fields[3],
		Timestamp: fields[4],
	}, nil
}

// FormatAmount renders an amount in the shortest decimal form that parses back exactly.
func FormatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}

// ParseAmount parses the amount field of a record.
func ParseAmount(s string) (float64, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, fmt.Errorf("%w: amount %q is not a number", ErrMalformedRecord, s)
	}
	return amount, nil
}

func escape(s string) string {
	if !strings.ContainsAny(s, "\\|\n\r") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			b.WriteString(`\\`)
		case Delimiter:
			b.WriteString(`\|`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// split breaks a line on unescaped delimiters and unescapes each field.
// Unknown escapes and a trailing backslash are kept literally so hand-edited
// or legacy lines containing backslashes still load.
func split(line string) []string {
	fields := make([]string, 0, FieldCount)

	var b strings.Builder
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '\\' && i+1 < len(line):
			next := line[i+1]
			switch next {
			case '\\', Delimiter:
				b.WriteByte(next)
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			default:
				b.WriteByte(c)
				b.WriteByte(next)
			}
			i++
		case c == Delimiter:
			fields = append(fields, b.String())
			b.Reset()
		default:
			b.WriteByte(c)
		}
	}

	return append(fields, b.String())
}
