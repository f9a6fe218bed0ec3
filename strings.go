package temparena

import (
	"fmt"
	"io"
	"unsafe"

	"golang.org/x/text/message"
)

// Strings returned by this file alias arena memory. A non-empty result is
// followed in the page by a NUL byte, so unsafe.StringData(s) is a valid C
// string. An empty result is "" with no data pointer; use CString when the
// input may be empty. Results are valid until the next Reset or Release;
// clone before keeping them longer.

// countWriter measures output without storing it.
type countWriter int

func (c *countWriter) Write(p []byte) (int, error) {
	*c += countWriter(len(p))
	return len(p), nil
}

// fixedWriter fills a preallocated buffer and drops anything past its end.
type fixedWriter struct {
	buf []byte
	n   int
}

func (w *fixedWriter) Write(p []byte) (int, error) {
	w.n += copy(w.buf[w.n:], p)
	return len(p), nil
}

// formatTerminated runs format twice: once to size the output, once to write
// it into exactly n+1 arena bytes. The last byte is NUL.
func (a *Arena) formatTerminated(format func(w io.Writer)) []byte {
	var cw countWriter
	format(&cw)
	n := int(cw)

	b := a.AllocBytes(n + 1)
	format(&fixedWriter{buf: b[:n]})
	b[n] = 0
	return b[:n]
}

// SprintfBytes formats into arena memory and returns the bytes without the
// trailing NUL.
func (a *Arena) SprintfBytes(format string, args ...any) []byte {
	return a.formatTerminated(func(w io.Writer) {
		fmt.Fprintf(w, format, args...)
	})
}

// Sprintf formats into arena memory and returns the result as a string.
func (a *Arena) Sprintf(format string, args ...any) string {
	return bytesToString(a.SprintfBytes(format, args...))
}

// SprintfLocalized is Sprintf using a locale-aware printer from
// golang.org/x/text/message (digit grouping, translated catalogs).
func (a *Arena) SprintfLocalized(p *message.Printer, format string, args ...any) string {
	return bytesToString(a.formatTerminated(func(w io.Writer) {
		p.Fprintf(w, format, args...)
	}))
}

// CopyString duplicates s into the arena.
func (a *Arena) CopyString(s string) string {
	return bytesToString(a.copyTerminated(s))
}

// CopyStringN duplicates the first n bytes of s into the arena. n larger
// than len(s) copies all of s. It panics if n is negative.
func (a *Arena) CopyStringN(s string, n int) string {
	if n < 0 {
		panic(ErrNegativeSize)
	}
	return bytesToString(a.copyTerminated(s[:min(n, len(s))]))
}

// CopyBytes duplicates b into the arena, NUL-terminated.
func (a *Arena) CopyBytes(b []byte) []byte {
	return a.copyTerminated(bytesToString(b))
}

// CString returns a pointer to a NUL-terminated arena copy of s. The
// pointer is never nil, even when s is empty.
func (a *Arena) CString(s string) *byte {
	return unsafe.SliceData(a.copyTerminated(s))
}

func (a *Arena) copyTerminated(s string) []byte {
	b := a.AllocBytes(len(s) + 1)
	copy(b, s)
	b[len(s)] = 0
	return b[:len(s)]
}

func bytesToString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}
