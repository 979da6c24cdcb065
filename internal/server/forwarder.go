package server

import (
	"net"

	"github.com/myume/agora/internal/httpmsg"
)

// DialBackend opens a TCP connection to addr. Callers map failure to 502.
func DialBackend(addr string) (net.Conn, error) {
	return net.Dial("tcp", addr)
}

// InjectForwardedFor overwrites x-forwarded-for with the client's peer
// address (§4.8). If remoteAddr is empty the header is left untouched,
// matching "if the client's peer address is unavailable, skip injection".
func InjectForwardedFor(req *httpmsg.Request, remoteAddr string) {
	if remoteAddr == "" {
		return
	}
	req.Headers.Override("x-forwarded-for", remoteAddr)
}

// Forward serializes req (already routed and X-Forwarded-For-injected) and
// writes it, followed by residual, to backend in one call. Write failure
// is the caller's to map to 502.
func Forward(backend net.Conn, req *httpmsg.Request, residual []byte) error {
	wire := httpmsg.Serialize(req)
	wire = append(wire, residual...)
	_, err := backend.Write(wire)
	return err
}
