package httpmsg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResponseValid(t *testing.T) {
	resp, tail, err := ParseResponse([]byte("HTTP/1.1 200 OK\r\nContent-Length: 5\r\n\r\nhello"))
	require.NoError(t, err)
	assert.Equal(t, Version1_1, resp.Version)
	assert.Equal(t, 200, resp.Status)
	assert.Equal(t, "5", resp.Headers.Get("content-length"))
	assert.Equal(t, []byte("hello"), tail)
}

func TestParseResponseInvalidStatusCode(t *testing.T) {
	_, _, err := ParseResponse([]byte("HTTP/1.1 99 WHAT\r\n\r\n"))
	require.ErrorIs(t, err, ErrInvalidStatusCode)
}

func TestParseResponseInvalidVersion(t *testing.T) {
	_, _, err := ParseResponse([]byte("HTTP/1.11 200 OK\r\n\r\n"))
	require.ErrorIs(t, err, ErrInvalidVersion)
}

func TestParseResponseUnterminatedHeader(t *testing.T) {
	_, _, err := ParseResponse([]byte("HTTP/1.1 200 OK\r\nContent-Length: 5\r\nhello"))
	require.ErrorIs(t, err, ErrUnterminatedHeader)
}

func TestParseResponseUnknownReasonFallsBackOnSerialize(t *testing.T) {
	out := SerializeResponse(&Response{Version: Version1_1, Status: 418, Headers: map[string]string{}})
	assert.Contains(t, string(out), "418 Unknown Reason\r\n")
}

func TestParseResponseRoundTrip(t *testing.T) {
	original := &Response{
		Version: Version1_1,
		Status:  404,
		Headers: map[string]string{"content-length": "0"},
	}

	wire := append(SerializeResponse(original), "trailing"...)
	parsed, tail, err := ParseResponse(wire)
	require.NoError(t, err)
	assert.Equal(t, original.Version, parsed.Version)
	assert.Equal(t, original.Status, parsed.Status)
	assert.Equal(t, original.Headers.Get("content-length"), parsed.Headers.Get("content-length"))
	assert.Equal(t, []byte("trailing"), tail)
}
