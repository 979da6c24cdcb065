package httpmsg

import (
	"fmt"
	"strconv"

	"github.com/myume/agora/internal/headers"
	"github.com/myume/agora/internal/scan"
)

// Response is a parsed HTTP/1.1 status-line plus headers. The reason
// phrase is parsed but discarded; Serialize re-derives a canonical one
// from Status.
type Response struct {
	Version Version
	Status  int
	Headers headers.Headers
}

// ParseResponse parses a status-line and header block from the start of
// buf, mirroring ParseRequest's contract: it returns the tail, and an
// unterminated header block is reported as ErrUnterminatedHeader. The
// connection supervisor answers any backend parse error with a 502.
func ParseResponse(buf []byte) (*Response, []byte, error) {
	versionTok := scan.UntilSpace(buf)
	if versionTok == nil {
		return nil, nil, ErrInvalidVersion
	}
	version, err := parseVersion(versionTok)
	if err != nil {
		return nil, nil, err
	}
	buf = buf[len(versionTok)+1:]

	statusTok := scan.UntilSpace(buf)
	if statusTok == nil {
		return nil, nil, ErrInvalidStatusCode
	}
	status, err := parseStatusCode(statusTok)
	if err != nil {
		return nil, nil, err
	}
	buf = buf[len(statusTok)+1:]

	reasonTok := scan.UntilCRLF(buf)
	if reasonTok == nil {
		return nil, nil, ErrInvalidVersion
	}
	buf = buf[len(reasonTok)+2:]

	h := headers.NewHeaders()
	tail, err := h.Parse(buf)
	if err != nil {
		if err == headers.ErrUnterminatedHeader {
			return nil, nil, ErrUnterminatedHeader
		}
		return nil, nil, ErrInvalidHeader
	}

	return &Response{Version: version, Status: status, Headers: h}, tail, nil
}

func parseStatusCode(b []byte) (int, error) {
	if len(b) != 3 {
		return 0, ErrInvalidStatusCode
	}
	n, err := strconv.Atoi(string(b))
	if err != nil || n < 100 || n > 999 {
		return 0, ErrInvalidStatusCode
	}
	return n, nil
}

// SerializeResponse renders r as wire bytes using a canonical reason
// phrase for Status.
func SerializeResponse(r *Response) []byte {
	reason, ok := reasonPhrases[r.Status]
	if !ok {
		reason = "Unknown Reason"
	}

	out := make([]byte, 0, 128)
	out = append(out, r.Version...)
	out = append(out, ' ')
	out = append(out, strconv.Itoa(r.Status)...)
	out = append(out, ' ')
	out = append(out, reason...)
	out = append(out, "\r\n"...)
	for name, value := range r.Headers {
		out = append(out, fmt.Sprintf("%s: %s\r\n", name, value)...)
	}
	out = append(out, "\r\n"...)
	return out
}

var reasonPhrases = map[int]string{
	200: "OK",
	201: "Created",
	204: "No Content",
	301: "Moved Permanently",
	302: "Found",
	304: "Not Modified",
	400: "Bad Request",
	401: "Unauthorized",
	403: "Forbidden",
	404: "Not Found",
	405: "Method Not Allowed",
	408: "Request Timeout",
	431: "Request Header Fields Too Large",
	500: "Internal Server Error",
	502: "Bad Gateway",
	503: "Service Unavailable",
	505: "HTTP Version Not Supported",
}
