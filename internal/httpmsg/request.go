package httpmsg

import (
	"fmt"
	"unicode/utf8"

	"github.com/myume/agora/internal/headers"
	"github.com/myume/agora/internal/scan"
)

// Request is a parsed HTTP/1.1 request-line plus headers. Headers is never
// nil on a successful parse.
type Request struct {
	Method  Method
	Path    string
	Version Version
	Headers headers.Headers
}

// ParseRequest parses a request-line and header block from the start of
// buf and returns the parsed Request along with the tail: everything in
// buf after the blank line terminating the headers.
//
// ParseRequest never blocks and never asks for more bytes itself — that is
// the header-read loop's job (internal/server), which only calls the parser
// once "\r\n\r\n" has been read. A buffer that runs out before the header
// terminator is reached surfaces as ErrUnterminatedHeader; the connection
// supervisor answers any parse error, this one included, with a 400.
func ParseRequest(buf []byte) (*Request, []byte, error) {
	methodTok := scan.UntilSpace(buf)
	if methodTok == nil {
		return nil, nil, ErrInvalidMethod
	}
	method, err := parseMethod(methodTok)
	if err != nil {
		return nil, nil, err
	}
	buf = buf[len(methodTok)+1:]

	pathTok := scan.UntilSpace(buf)
	if pathTok == nil || len(pathTok) == 0 || pathTok[0] != '/' {
		return nil, nil, ErrInvalidPath
	}
	if !utf8.Valid(pathTok) {
		return nil, nil, ErrInvalidPath
	}
	path := string(pathTok)
	buf = buf[len(pathTok)+1:]

	versionTok := scan.UntilCRLF(buf)
	if versionTok == nil {
		return nil, nil, ErrInvalidVersion
	}
	version, err := parseVersion(versionTok)
	if err != nil {
		return nil, nil, err
	}
	buf = buf[len(versionTok)+2:]

	h := headers.NewHeaders()
	tail, err := h.Parse(buf)
	if err != nil {
		if err == headers.ErrUnterminatedHeader {
			return nil, nil, ErrUnterminatedHeader
		}
		return nil, nil, ErrInvalidHeader
	}

	return &Request{
		Method:  method,
		Path:    path,
		Version: version,
		Headers: h,
	}, tail, nil
}

// Serialize renders r as wire bytes: the request-line, each header in
// map-iteration order, and the terminating blank line. No body bytes are
// appended; callers append residual/body bytes themselves.
func Serialize(r *Request) []byte {
	out := make([]byte, 0, 128)
	out = append(out, r.Method...)
	out = append(out, ' ')
	out = append(out, r.Path...)
	out = append(out, ' ')
	out = append(out, r.Version...)
	out = append(out, "\r\n"...)
	for name, value := range r.Headers {
		out = append(out, fmt.Sprintf("%s: %s\r\n", name, value)...)
	}
	out = append(out, "\r\n"...)
	return out
}
