// Package progress reports per-chunk progress of a training or evaluation
// pass.
//
// Each chunk hands a Sink a freshly built Fields list. Sinks only observe;
// nothing they do may feed back into the numbers being reported.
package progress

import (
	"strconv"
	"strings"
)

// Field is one named value shown next to a progress bar.
type Field struct {
	Key   string
	Value float64
}

// Fields is an ordered list of progress values, built fresh for each update.
type Fields []Field

// Add appends a field and returns the extended list.
func (f Fields) Add(key string, value float64) Fields {
	return append(f, Field{Key: key, Value: value})
}

// String formats the fields as "key=value, key=value".
func (f Fields) String() string {
	var sb strings.Builder
	for i, field := range f {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(field.Key)
		sb.WriteByte('=')
		sb.WriteString(strconv.FormatFloat(field.Value, 'f', 4, 64))
	}
	return sb.String()
}

// Sink receives one Advance call per processed chunk.
type Sink interface {
	// Advance marks one chunk as done. fields may be empty.
	Advance(fields Fields)

	// Close ends the display.
	Close() error
}

// Factory opens a Sink for a pass of total chunks.
type Factory func(total int, description string) Sink

type nopSink struct{}

func (nopSink) Advance(Fields) {}
func (nopSink) Close() error   { return nil }

// Nop returns a factory whose sinks discard everything.
func Nop() Factory {
	return func(int, string) Sink { return nopSink{} }
}
