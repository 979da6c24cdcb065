package server

import (
	"io"
	"net"
	"strconv"
	"strings"

	"github.com/myume/agora/internal/headers"
)

// Direction selects which side of a connection pair is the sender and
// which is the receiver; RelayBody's algorithm is symmetric in both.
type Direction int

const (
	ClientToServer Direction = iota
	ServerToClient
)

// ErrConflictingFraming is returned when a message carries both
// content-length and transfer-encoding, which §4.9 requires rejecting
// outright rather than guessing which one wins.
var errConflictingFramingText = "message has both content-length and transfer-encoding"

type ErrConflictingFraming struct{}

func (ErrConflictingFraming) Error() string { return errConflictingFramingText }

const relayBufSize = 8 * 1024

// RelayBody streams the body belonging to h from sender to receiver. Any
// residual bytes carried over from the header-read are *not* written here:
// the caller writes them to receiver once, before this call, and passes
// their length as alreadyRelayed so the content-length count includes
// them. Framing is selected per RFC 7230 (§4.9):
// content-length takes a fixed byte count, chunked relays until the
// chunked terminator appears in the stream, and the absence of both either
// relays nothing (request side) or reads until close (response side, only
// when allowReadUntilClose is true).
func RelayBody(sender, receiver net.Conn, h headers.Headers, alreadyRelayed int, allowReadUntilClose bool) error {
	cl := h.Get("content-length")
	te := h.Get("transfer-encoding")

	if cl != "" && te != "" {
		return ErrConflictingFraming{}
	}

	if isChunked(te) {
		return relayChunked(sender, receiver)
	}

	if cl != "" {
		n, err := strconv.ParseInt(cl, 10, 64)
		if err != nil || n < 0 {
			return errMalformedContentLength{}
		}
		remaining := n - int64(alreadyRelayed)
		if remaining <= 0 {
			return nil
		}
		return relayExactly(sender, receiver, remaining)
	}

	if allowReadUntilClose {
		return relayUntilClose(sender, receiver)
	}

	return nil
}

type errMalformedContentLength struct{}

func (errMalformedContentLength) Error() string { return "malformed content-length" }

func isChunked(te string) bool {
	for _, tok := range strings.Split(te, ",") {
		if strings.EqualFold(strings.TrimSpace(tok), "chunked") {
			return true
		}
	}
	return false
}

// relayExactly copies exactly n bytes from sender to receiver, failing
// with ErrStreamClosedPrematurely if sender closes before n bytes are
// produced.
func relayExactly(sender, receiver net.Conn, n int64) error {
	buf := make([]byte, relayBufSize)
	for n > 0 {
		want := int64(len(buf))
		if n < want {
			want = n
		}
		readN, err := sender.Read(buf[:want])
		if readN > 0 {
			if _, werr := receiver.Write(buf[:readN]); werr != nil {
				return werr
			}
			n -= int64(readN)
		}
		if err != nil {
			if err == io.EOF {
				if n > 0 {
					return ErrStreamClosedPrematurely
				}
				return nil
			}
			return err
		}
	}
	return nil
}

// relayUntilClose copies sender to receiver until sender returns EOF, with
// no length framing: used only on the response path when neither
// content-length nor transfer-encoding is present.
func relayUntilClose(sender, receiver net.Conn) error {
	buf := make([]byte, relayBufSize)
	for {
		n, err := sender.Read(buf)
		if n > 0 {
			if _, werr := receiver.Write(buf[:n]); werr != nil {
				return werr
			}
		}
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}

// relayChunked passes chunked-framed bytes through byte-for-byte, without
// interpreting individual chunk sizes, stopping once the terminator
// "\r\n\r\n" (the zero-size chunk's closing CRLF plus the trailer block's
// blank line) has appeared in the relayed stream. It reuses the
// header-read loop's "keep last 3 bytes across iterations" trick so a
// terminator split across reads is still detected.
//
// The scan looks for a bare "\r\n\r\n", not "0\r\n\r\n": if chunk data
// itself contains "\r\n\r\n", the relay stops there and the rest of the
// body is not relayed.
func relayChunked(sender, receiver net.Conn) error {
	buf := make([]byte, relayBufSize)
	var carry []byte

	for {
		n, err := sender.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			if _, werr := receiver.Write(chunk); werr != nil {
				return werr
			}

			window := append(carry, chunk...)
			if indexTerminator(window) != -1 {
				return nil
			}

			if len(window) > 3 {
				carry = append(carry[:0], window[len(window)-3:]...)
			} else {
				carry = append(carry[:0], window...)
			}
		}
		if err != nil {
			if err == io.EOF {
				return ErrStreamClosedPrematurely
			}
			return err
		}
	}
}
