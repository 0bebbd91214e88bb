package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"syscall"
	"time"

	zmq "github.com/pebbe/zmq4"

	"github.com/twit2/t2-auth/internal/logging"
	"github.com/twit2/t2-auth/internal/server/metrics"
)

// recvPollInterval bounds how long the serve loop blocks in a socket read
// before re-checking ctx for shutdown.
const recvPollInterval = 250 * time.Millisecond

// Handler serves one procedure. The returned value is marshalled into the
// response envelope; a non-nil error produces an error response instead.
type Handler func(ctx context.Context, payload json.RawMessage) (any, error)

// Server answers procedure calls on a REP socket. Procedures are registered
// with Define before Run is called; the registry is read-only afterwards.
type Server struct {
	endpoint   string
	logger     logging.Logger
	procedures map[string]Handler
}

func NewServer(endpoint string, logger logging.Logger) *Server {
	return &Server{
		endpoint:   endpoint,
		logger:     logger.With("module", "rpc_server"),
		procedures: make(map[string]Handler),
	}
}

// Define registers a named procedure. Not safe to call once Run has started.
func (s *Server) Define(name string, h Handler) {
	s.procedures[name] = h
}

func (s *Server) dispatch(ctx context.Context, raw []byte) []byte {
	var req Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return errorResponse("malformed request")
	}

	h, ok := s.procedures[req.Name]
	if !ok {
		metrics.RPCCalls.WithLabelValues(req.Name, "unknown").Inc()
		return errorResponse(fmt.Sprintf("unknown procedure %q", req.Name))
	}

	result, err := h(ctx, req.Payload)
	if err != nil {
		metrics.RPCCalls.WithLabelValues(req.Name, "error").Inc()
		return errorResponse(err.Error())
	}

	resp, err := resultResponse(result)
	if err != nil {
		metrics.RPCCalls.WithLabelValues(req.Name, "error").Inc()
		return errorResponse("internal error")
	}

	metrics.RPCCalls.WithLabelValues(req.Name, "ok").Inc()
	return resp
}

// Run binds the REP socket and serves until ctx is cancelled. REP sockets are
// strictly receive-then-send and not thread-safe, so the whole loop stays on
// one goroutine.
func (s *Server) Run(ctx context.Context) error {

	sock, err := zmq.NewSocket(zmq.REP)
	if err != nil {
		return fmt.Errorf("rpc socket creation error: %w", err)
	}
	defer sock.Close()

	if err := sock.SetRcvtimeo(recvPollInterval); err != nil {
		return fmt.Errorf("rpc socket option error: %w", err)
	}

	if err := sock.Bind(s.endpoint); err != nil {
		return fmt.Errorf("rpc bind error: %w", err)
	}

	s.logger.Info(ctx, "Starting RPC server", "endpoint", s.endpoint)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info(ctx, "Stopping RPC server...")
			return nil
		default:
		}

		raw, err := sock.RecvBytes(0)
		if err != nil {
			if zmq.AsErrno(err) == zmq.Errno(syscall.EAGAIN) {
				continue
			}
			return fmt.Errorf("rpc receive error: %w", err)
		}

		if _, err := sock.SendBytes(s.dispatch(ctx, raw), 0); err != nil {
			s.logger.Error(ctx, "rpc send error", "error", err.Error())
		}
	}
}
