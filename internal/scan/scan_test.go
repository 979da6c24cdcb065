package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUntilSpace(t *testing.T) {
	assert.Equal(t, []byte("GET"), UntilSpace([]byte("GET /foo HTTP/1.1")))
	assert.Nil(t, UntilSpace([]byte("nospacehere")))
	assert.Equal(t, []byte(""), UntilSpace([]byte(" leading space")))
}

func TestUntilCRLF(t *testing.T) {
	assert.Equal(t, []byte("Host: test"), UntilCRLF([]byte("Host: test\r\nX: y\r\n")))
	assert.Nil(t, UntilCRLF([]byte("no terminator")))
}

func TestIsTerminated(t *testing.T) {
	assert.True(t, IsTerminated([]byte("GET / HTTP/1.1\r\nHost: x\r\n\r\n")))
	assert.False(t, IsTerminated([]byte("GET / HTTP/1.1\r\nHost: x\r\n")))
	assert.True(t, IsTerminated([]byte("a\r\n\r\nb")))
}
