// Package debugstr provides the caller-facing helpers around the text encoder.
// They run the size-then-fill protocol, own the allocation and report the
// renderings to the Prometheus collectors of the module.
//
//	log.Info().Object("msg", debugstr.Stringer(msg)).Msg("received")
package debugstr

import (
	protoV1 "github.com/golang/protobuf/proto"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"go.dedis.ch/protodebug"
	"go.dedis.ch/protodebug/txtenc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
)

var (
	promRenders = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "protodebug_debugstr_renders_total",
		Help: "total number of messages rendered",
	})

	promBytes = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "protodebug_debugstr_rendered_bytes",
		Help:    "size of the renderings in bytes",
		Buckets: prometheus.ExponentialBuckets(16, 4, 8),
	})

	promTruncated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "protodebug_debugstr_truncated_total",
		Help: "total number of renderings cut by a too small buffer",
	})
)

func init() {
	protodebug.PromCollectors = append(protodebug.PromCollectors, promRenders,
		promBytes, promTruncated)
}

// logger is replaced in the tests to inspect the warnings.
var logger = protodebug.Logger

// Bytes returns the rendering of the message. It sizes the rendering first so
// that the buffer is allocated once with the exact length.
func Bytes(msg protoreflect.Message, opts txtenc.Options) []byte {
	size := txtenc.Size(msg, nil, opts)
	buf := make([]byte, size)

	n, total := fill(msg, opts, buf)
	if total != size {
		// The message must have changed between the two calls.
		logger.Warn().
			Str("message", string(msg.Descriptor().FullName())).
			Int("expected", size).
			Int("actual", total).
			Int("written", n).
			Msg("rendering size changed between sizing and filling")
	}

	return buf[:n]
}

// Render fills the buffer with the rendering of the message and returns the
// number of bytes written. The boolean is true when the buffer was too small
// and the output is a prefix of the rendering.
func Render(msg protoreflect.Message, opts txtenc.Options, buf []byte) (int, bool) {
	n, total := fill(msg, opts, buf)

	return n, n < total
}

func fill(msg protoreflect.Message, opts txtenc.Options, buf []byte) (int, int) {
	promRenders.Inc()

	n, total := txtenc.Fill(msg, nil, opts, buf)

	promBytes.Observe(float64(n))

	if n < total {
		promTruncated.Inc()

		logger.Debug().
			Int("size", total).
			Int("capacity", len(buf)).
			Msg("rendering truncated")
	}

	return n, total
}

// String returns the rendering of the message with the given flags.
func String(msg proto.Message, flags ...txtenc.Flag) string {
	if msg == nil {
		return ""
	}

	return string(Bytes(msg.ProtoReflect(), txtenc.NewOptions(flags...)))
}

// Legacy returns the rendering of a message generated with the first version
// of the Go protobuf API.
func Legacy(msg protoV1.Message, flags ...txtenc.Flag) string {
	if msg == nil {
		return ""
	}

	return string(Bytes(protoV1.MessageReflect(msg), txtenc.NewOptions(flags...)))
}

// NullTerminated returns the rendering followed by a zero byte, for consumers
// expecting a C string. The terminator is not part of the rendering.
func NullTerminated(msg protoreflect.Message, opts txtenc.Options) []byte {
	size := txtenc.Size(msg, nil, opts)

	buf := make([]byte, size+1)
	n, _ := fill(msg, opts, buf[:size])
	buf[n] = 0

	return buf[:n+1]
}

// Stringer returns a value that renders the message only when it is printed,
// which avoids the work when a log level is disabled.
func Stringer(msg proto.Message, flags ...txtenc.Flag) Lazy {
	return Lazy{
		msg:  msg,
		opts: txtenc.NewOptions(flags...),
	}
}

// Lazy is a message waiting to be rendered.
//
// - implements fmt.Stringer
// - implements zerolog.LogObjectMarshaler
type Lazy struct {
	msg  proto.Message
	opts txtenc.Options
}

// String implements fmt.Stringer. It returns the rendering of the message.
func (l Lazy) String() string {
	if l.msg == nil {
		return ""
	}

	return string(Bytes(l.msg.ProtoReflect(), l.opts))
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler. It adds the
// message name and its rendering on a single line to the event.
func (l Lazy) MarshalZerologObject(e *zerolog.Event) {
	if l.msg == nil {
		return
	}

	e.Str("type", string(l.msg.ProtoReflect().Descriptor().FullName()))
	e.Str("text", string(Bytes(l.msg.ProtoReflect(), l.opts.With(txtenc.SingleLine))))
}
