// Package logging wires up the proxy's structured logging facade. The
// supervisor (internal/server) and CLI both log through *logrus.Entry so
// every line carries whatever fields the caller attaches (conn_id, method,
// path, status) without string formatting at the call site.
package logging

import (
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// New builds a new logrus logger (not the package-level standard logger)
// and returns it. verbose
// raises the level to Debug, surfacing per-connection accept/parse/response
// events (§6: "debug (per-connection accept and parsed request/response)").
func New(verbose bool) *log.Logger {
	logger := log.New()
	logger.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})
	logger.SetLevel(log.InfoLevel)
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// ConnID derives a short correlation ID for one accepted connection. Full
// UUIDs are needlessly wide for log lines that already carry a timestamp;
// the first 8 hex characters are enough to correlate a connection's lines
// without crowding the field.
func ConnID() string {
	return uuid.NewString()[:8]
}

// ForConn returns a logger entry pre-populated with the connection's
// correlation ID and peer address, ready for .WithField-style chaining by
// the supervisor.
func ForConn(logger *log.Logger, connID, remoteAddr string) *log.Entry {
	return logger.WithFields(log.Fields{
		"conn_id": connID,
		"remote":  remoteAddr,
	})
}
