// Package headers implements the HTTP header map and the header-block
// parser shared by both requests and responses.
package headers

import (
	"bytes"
	"errors"
	"strings"

	"github.com/myume/agora/internal/scan"
)

// Headers is a case-insensitive map from header name to value. Keys are
// always stored lowercase; the wire representation preserves whatever
// casing the serializer is asked to emit (lowercase, by convention here).
type Headers map[string]string

var ErrMalformedHeaderLine = errors.New("malformed header-line")
var ErrUnterminatedHeader = errors.New("unterminated header block")

func NewHeaders() Headers { return Headers{} }

// Get performs a case-insensitive lookup.
func (h Headers) Get(name string) string {
	return h[strings.ToLower(name)]
}

func (h Headers) Delete(name string) {
	delete(h, strings.ToLower(name))
}

// Set folds repeated values onto a comma-joined list, per RFC 7230's
// list-header convention. Only used by callers assembling headers
// programmatically; the wire parser below always overwrites instead.
func (h Headers) Set(name, value string) {
	name = strings.ToLower(name)
	if old, ok := h[name]; ok {
		h[name] = old + "," + value
	} else {
		h[name] = value
	}
}

// Override unconditionally replaces any existing value for name.
func (h Headers) Override(name, value string) {
	h[strings.ToLower(name)] = value
}

// Parse consumes header lines from buf, a buffer whose start is the
// beginning of a (possibly empty) line, until the terminating blank line
// is found. It returns the tail — everything after that blank line's
// CRLF — or nil with ErrUnterminatedHeader if buf runs out first. A line
// without a colon is ErrMalformedHeaderLine. The header-read loop
// (internal/server) only hands over a buffer that already contains
// "\r\n\r\n", so there either error is reported as a malformed message.
//
// A duplicate header name overwrites the earlier value: unlike Set, Parse
// never folds repeats onto a comma list.
func (h Headers) Parse(buf []byte) (tail []byte, err error) {
	for {
		if len(buf) >= 2 && buf[0] == '\r' && buf[1] == '\n' {
			return buf[2:], nil
		}

		line := scan.UntilCRLF(buf)
		if line == nil {
			return nil, ErrUnterminatedHeader
		}

		// Reject obsolete line folding (continuation lines starting with
		// SP/HTAB) rather than silently joining them onto the prior value.
		if len(line) > 0 && (line[0] == ' ' || line[0] == '\t') {
			return nil, ErrMalformedHeaderLine
		}

		colon := bytes.IndexByte(line, ':')
		if colon <= 0 {
			return nil, ErrMalformedHeaderLine
		}

		name := line[:colon]
		if bytes.ContainsAny(name, " \t") || !isToken(name) {
			return nil, ErrMalformedHeaderLine
		}

		value := strings.Trim(string(line[colon+1:]), " \t")
		h.Override(strings.ToLower(string(name)), value)

		buf = buf[len(line)+2:]
	}
}

var tokenChar [256]bool

func init() {
	for c := byte('0'); c <= '9'; c++ {
		tokenChar[c] = true
	}
	for c := byte('A'); c <= 'Z'; c++ {
		tokenChar[c] = true
	}
	for c := byte('a'); c <= 'z'; c++ {
		tokenChar[c] = true
	}
	for _, c := range []byte("!#$%&'*+-.^_`|~") {
		tokenChar[c] = true
	}
}

func isToken(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	for _, c := range b {
		if c > 127 || !tokenChar[c] {
			return false
		}
	}
	return true
}
