package server

import (
	"net"
	"strconv"

	"github.com/myume/agora/internal/config"
	"github.com/myume/agora/internal/httpmsg"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// headerBufSize is the fixed capacity of the header-read buffer (§4.10.1).
const headerBufSize = 8 * 1024

// Supervisor runs one connection's full lifecycle: read header, parse,
// route, dial, forward, relay body in both directions, and respond.
// Created once per accepted connection; holds no state shared with any
// other connection (§5: "each connection task owns its sockets and its
// buffers exclusively").
type Supervisor struct {
	cfg *config.ServerConfig
	log *log.Entry
}

func NewSupervisor(cfg *config.ServerConfig, logger *log.Entry) *Supervisor {
	return &Supervisor{cfg: cfg, log: logger}
}

// Handle drives client through the full proxy lifecycle described in
// §4.10, closing client and any dialed backend connection on every exit
// path.
func (s *Supervisor) Handle(client net.Conn) {
	defer client.Close()

	remoteAddr := client.RemoteAddr().String()

	buf := make([]byte, headerBufSize)
	n, err := ReadUntilTerminated(client, buf)
	if err != nil {
		// A low-level I/O error on the client socket gets no response.
		if errors.Is(err, ErrHeaderTooLarge) || errors.Is(err, ErrStreamClosedPrematurely) {
			s.respondError(client, statusForReadError(err))
		}
		s.log.WithError(errors.Wrap(err, "reading request header")).Warn("failed to read request header")
		return
	}

	req, residual, err := httpmsg.ParseRequest(buf[:n])
	if err != nil {
		s.respondError(client, statusForParseError(err))
		s.log.WithError(errors.Wrap(err, "parsing request")).Warn("failed to parse request")
		return
	}
	s.log.WithFields(log.Fields{"method": req.Method, "path": req.Path}).Debug("parsed request")

	if req.Version != httpmsg.Version1_1 {
		s.respondError(client, 505)
		s.log.WithField("version", req.Version).Warn("rejecting unsupported HTTP version")
		return
	}

	entry, forwardPath, err := Route(s.cfg, req.Path)
	if err != nil {
		s.respondNotFound(client)
		s.log.WithField("path", req.Path).Debug("no route matched")
		return
	}
	req.Path = forwardPath

	if req.Headers.Get("content-length") != "" && req.Headers.Get("transfer-encoding") != "" {
		s.respondError(client, 400)
		s.log.Warn("rejecting request with both content-length and transfer-encoding")
		return
	}

	backend, err := DialBackend(entry.Addr)
	if err != nil {
		s.respondError(client, 502)
		s.log.WithError(errors.Wrapf(err, "dialing backend %s", entry.Addr)).Error("backend dial failed")
		return
	}
	defer backend.Close()

	InjectForwardedFor(req, remoteAddr)

	if err := Forward(backend, req, residual); err != nil {
		s.respondError(client, 502)
		s.log.WithError(errors.Wrap(err, "forwarding request to backend")).Error("backend write failed")
		return
	}

	if err := RelayBody(client, backend, req.Headers, len(residual), false); err != nil {
		s.respondError(client, 502)
		s.log.WithError(errors.Wrap(err, "relaying client body to backend")).Error("client->backend body relay failed")
		return
	}

	backendBuf := make([]byte, headerBufSize)
	bn, err := ReadUntilTerminated(backend, backendBuf)
	if err != nil {
		s.respondError(client, 502)
		s.log.WithError(errors.Wrap(err, "reading backend response header")).Error("failed to read backend response header")
		return
	}

	resp, backendResidual, err := httpmsg.ParseResponse(backendBuf[:bn])
	if err != nil {
		s.respondError(client, 502)
		s.log.WithError(errors.Wrap(err, "parsing backend response")).Error("failed to parse backend response")
		return
	}
	resp.Headers.Override("connection", "close")
	s.log.WithFields(log.Fields{"status": resp.Status}).Debug("parsed backend response")

	wire := httpmsg.SerializeResponse(resp)
	wire = append(wire, backendResidual...)
	if _, err := client.Write(wire); err != nil {
		s.log.WithError(errors.Wrap(err, "writing response to client")).Error("client write failed")
		return
	}

	if err := RelayBody(backend, client, resp.Headers, len(backendResidual), true); err != nil {
		s.log.WithError(errors.Wrap(err, "relaying backend body to client")).Error("backend->client body relay failed")
		return
	}
}

func statusForReadError(err error) int {
	switch {
	case errors.Is(err, ErrHeaderTooLarge):
		return 431
	case errors.Is(err, ErrStreamClosedPrematurely):
		return 400
	default:
		return 400
	}
}

func statusForParseError(err error) int {
	if errors.Is(err, httpmsg.ErrInvalidVersion) {
		return 505
	}
	return 400
}

var notFoundBody = []byte("Not Found")

func (s *Supervisor) respondNotFound(client net.Conn) {
	resp := buildErrorResponse(404, notFoundBody)
	_, _ = client.Write(resp)
}

func (s *Supervisor) respondError(client net.Conn, status int) {
	resp := buildErrorResponse(status, nil)
	_, _ = client.Write(resp)
}

func buildErrorResponse(status int, body []byte) []byte {
	r := &httpmsg.Response{
		Version: httpmsg.Version1_1,
		Status:  status,
		Headers: map[string]string{
			"connection":     "close",
			"content-length": strconv.Itoa(len(body)),
		},
	}
	wire := httpmsg.SerializeResponse(r)
	return append(wire, body...)
}
