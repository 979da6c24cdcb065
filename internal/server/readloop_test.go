package server

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadUntilTerminatedSingleRead(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	go func() {
		_, _ = client.Write([]byte("GET / HTTP/1.1\r\nHost: test\r\n\r\nbody"))
	}()

	buf := make([]byte, 1024)
	n, err := ReadUntilTerminated(server, buf)
	require.NoError(t, err)
	// total includes whatever arrived in the same read as the terminator,
	// not just the header block: the caller's parser finds the blank line
	// itself and returns "body" as the tail.
	assert.Equal(t, "GET / HTTP/1.1\r\nHost: test\r\n\r\nbody", string(buf[:n]))
}

func TestReadUntilTerminatedSplitAcrossTerminator(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	full := "GET / HTTP/1.1\r\nHost: test\r\n\r\n"
	splitAt := len(full) - 2 // split inside the terminator itself

	go func() {
		_, _ = client.Write([]byte(full[:splitAt]))
		time.Sleep(5 * time.Millisecond)
		_, _ = client.Write([]byte(full[splitAt:]))
	}()

	buf := make([]byte, 1024)
	n, err := ReadUntilTerminated(server, buf)
	require.NoError(t, err)
	assert.Equal(t, full, string(buf[:n]))
}

func TestReadUntilTerminatedBufferFull(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	go func() {
		_, _ = client.Write([]byte("GET / HTTP/1.1\r\nHost: test\r\n"))
	}()

	buf := make([]byte, 16)
	_, err := ReadUntilTerminated(server, buf)
	require.ErrorIs(t, err, ErrHeaderTooLarge)
}

func TestReadUntilTerminatedStreamClosedPrematurely(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()

	go func() {
		_, _ = client.Write([]byte("GET / HTTP/1.1\r\n"))
		client.Close()
	}()

	buf := make([]byte, 1024)
	_, err := ReadUntilTerminated(server, buf)
	require.ErrorIs(t, err, ErrStreamClosedPrematurely)
}
