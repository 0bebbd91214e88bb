package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/twit2/t2-auth/internal/logging"
	"github.com/twit2/t2-auth/internal/server/creds"
)

// credentialManager is the slice of the credential manager the HTTP layer
// needs.
type credentialManager interface {
	CreateCredential(ctx context.Context, username string, password string) (*creds.Credential, error)
	Login(ctx context.Context, username string, password string) (string, error)
	ChangePassword(ctx context.Context, ownerID string, newPassword string) (*creds.Credential, error)
	GetCredRole(ctx context.Context, ownerID string) (creds.Role, error)
	IssueToken(ctx context.Context, username string) (string, error)
}

// tokenVerifier checks a bearer token and returns its subject.
type tokenVerifier interface {
	Verify(token string) (string, error)
}

// Server serves the public HTTP endpoints.
type Server struct {
	address string
	logger  logging.Logger
	manager credentialManager
	tokens  tokenVerifier
}

func NewServer(address string, logger logging.Logger, manager credentialManager, tokens tokenVerifier) *Server {
	return &Server{
		address: address,
		logger:  logger.With("module", "http_server"),
		manager: manager,
		tokens:  tokens,
	}
}

// Router builds the route table. Token-protected endpoints sit behind the
// bearer middleware.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/register", s.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)

	protected := r.NewRoute().Subrouter()
	protected.Use(s.bearerMiddleware)
	protected.HandleFunc("/verify", s.handleVerify).Methods(http.MethodPost, http.MethodGet)
	protected.HandleFunc("/role", s.handleGetRole).Methods(http.MethodGet, http.MethodPost)
	protected.HandleFunc("/password", s.handleChangePassword).Methods(http.MethodPatch)

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
