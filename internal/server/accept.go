package server

import (
	"errors"
	"fmt"
	"net"
	"sync/atomic"

	"github.com/myume/agora/internal/config"
	"github.com/myume/agora/internal/logging"
	log "github.com/sirupsen/logrus"
)

// Server accepts connections on a single listener and hands each one to
// its own Supervisor running in its own goroutine (§5: "accepting a
// connection spawns an independent task").
type Server struct {
	Port     int
	listener net.Listener
	closed   atomic.Bool
	cfg      *config.ServerConfig
	logger   *log.Logger
}

// Listen binds 0.0.0.0:port and starts accepting in the background.
func Listen(port int, cfg *config.ServerConfig, logger *log.Logger) (*Server, error) {
	l, err := net.Listen("tcp", fmt.Sprintf("0.0.0.0:%d", port))
	if err != nil {
		return nil, err
	}
	s := &Server{
		Port:     port,
		listener: l,
		cfg:      cfg,
		logger:   logger,
	}
	logger.WithField("port", port).Info("listening")
	go s.acceptLoop()
	return s, nil
}

// Close is idempotent; it unblocks the accept loop without affecting
// in-flight connection goroutines, which close their own sockets on exit.
func (s *Server) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	return s.listener.Close()
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.closed.Load() || errors.Is(err, net.ErrClosed) {
				return
			}
			s.logger.WithError(err).Error("accept failed")
			continue
		}

		connID := logging.ConnID()
		entry := logging.ForConn(s.logger, connID, conn.RemoteAddr().String())
		entry.Debug("accepted connection")

		supervisor := NewSupervisor(s.cfg, entry)
		go supervisor.Handle(conn)
	}
}
