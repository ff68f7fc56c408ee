// Package protodebug renders protobuf messages into a deterministic text form
// keyed by field numbers, for debugging, logging and golden files.
//
// The encoder lives in the txtenc package, the caller-facing helpers in the
// debugstr package and the command-line tool in cmd/protodebug.
package protodebug

import (
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// the rendering goes to stdout, so do not mix the logs with it.
var logout = zerolog.ConsoleWriter{
	Out:        os.Stderr,
	TimeFormat: time.RFC3339,
}

// Logger is a globally available logger instance.
var Logger = zerolog.New(logout).
	With().Timestamp().Logger().
	With().Caller().Logger().
	Level(zerolog.InfoLevel)

// PromCollectors exposes Prometheus collectors created in packages. Packages
// append their collectors at init time and the host decides where to register
// them.
var PromCollectors []prometheus.Collector
