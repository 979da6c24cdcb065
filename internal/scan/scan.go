// Package scan provides the single-pass byte scanners the HTTP/1.1 parser
// builds on top of. Every function here is total over arbitrary input: none
// of them fail, and none of them allocate beyond the sub-slice they return.
package scan

import "bytes"

var crlf = []byte("\r\n")

// UntilSpace returns the longest prefix of buf that contains no 0x20 byte.
// A nil return (not an empty, non-nil slice) means no space was found and
// the caller must treat the delimiter as missing rather than as a
// zero-length token.
func UntilSpace(buf []byte) []byte {
	i := bytes.IndexByte(buf, ' ')
	if i == -1 {
		return nil
	}
	return buf[:i]
}

// UntilCRLF returns the longest prefix of buf whose next two bytes are
// "\r\n". A nil return means no CRLF was found in buf.
func UntilCRLF(buf []byte) []byte {
	i := bytes.Index(buf, crlf)
	if i == -1 {
		return nil
	}
	return buf[:i]
}

// IsTerminated reports whether buf contains the 4-byte header terminator
// "\r\n\r\n" anywhere.
func IsTerminated(buf []byte) bool {
	return bytes.Contains(buf, []byte("\r\n\r\n"))
}
