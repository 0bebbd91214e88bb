// Package server initializes and runs the auth service: it wires the storage
// backend, the hasher, the token service, the profile peer client and the
// credential manager, then serves the HTTP and RPC endpoints until shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/twit2/t2-auth/internal/common"
	"github.com/twit2/t2-auth/internal/logging"
	"github.com/twit2/t2-auth/internal/server/auth"
	"github.com/twit2/t2-auth/internal/server/config"
	"github.com/twit2/t2-auth/internal/server/creds"
	"github.com/twit2/t2-auth/internal/server/hashing"
	"github.com/twit2/t2-auth/internal/server/httpapi"
	"github.com/twit2/t2-auth/internal/server/rpc"
	"github.com/twit2/t2-auth/internal/server/shared/db"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	manager *creds.Service
	tokens  *auth.TokenService
	peer    *rpc.ProfilePeer
}

func NewApp(cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	rm, err := db.NewPostgresRepositoryManager(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	// an unreachable store at startup is fatal; give it a short window to
	// come up before giving up
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	backoff := retry.WithMaxRetries(5, retry.NewExponential(500*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := rm.Ping(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: database unreachable: %v", common.ErrorUnavailable, err)
	}

	if err := rm.RunMigrations(ctx); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	hasher, err := hashing.New(cfg.HashAlgo, cfg.HashCost)
	if err != nil {
		return nil, fmt.Errorf("hasher init error: %w", err)
	}

	key, err := auth.LoadKey(cfg.SigningKeyHex)
	if err != nil {
		return nil, fmt.Errorf("signing key error: %w", err)
	}
	tokens := auth.NewTokenService(key, cfg.TokenValidityDuration)
	common.WipeByteArray(key)

	peer, err := rpc.NewProfilePeer(cfg.ProfilePeerEndpoint, cfg.ProfileCallTimeout)
	if err != nil {
		return nil, fmt.Errorf("%w: profile peer: %v", common.ErrorUnavailable, err)
	}

	manager := creds.NewService(rm.Creds(), hasher, tokens, peer, cfg, logger)

	return &App{
		config:  cfg,
		logger:  logger,
		manager: manager,
		tokens:  tokens,
		peer:    peer,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewServer(app.config.EndpointAddrHTTP, app.logger, app.manager, app.tokens)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := rpc.NewServer(app.config.RPCBindEndpoint, app.logger)
	rpc.RegisterAuthProcedures(s, app.manager, app.tokens)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer app.peer.Close()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()
}
