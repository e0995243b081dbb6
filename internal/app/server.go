package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/mark3labs/mcp-go/server"

	"github.com/heartmarshall/ruendict/internal/config"
	"github.com/heartmarshall/ruendict/internal/transport/mcp"
	"github.com/heartmarshall/ruendict/internal/transport/middleware"
	"github.com/heartmarshall/ruendict/internal/transport/rest"
)

// Handler builds the HTTP handler: routes wrapped in the middleware chain.
func (e *Engine) Handler() http.Handler {
	health := rest.NewHealthHandler(e.Store, e.cfg.Store.Driver, BuildVersion())
	dict := rest.NewDictionaryHandler(e.Search, e.Articles, e.Renderer, e.log)

	chain := middleware.Chain(
		middleware.RequestID,
		middleware.Logger(e.log),
		middleware.Recovery(e.log),
		middleware.CORS(e.cfg.CORS),
		middleware.ArticleLoader(e.Articles.NewLoader),
	)
	return chain(rest.NewRouter(health, dict))
}

// RunServer serves the HTTP API until ctx is cancelled, then shuts down
// gracefully within cfg.Server.ShutdownTimeout.
func RunServer(ctx context.Context, cfg *config.Config) error {
	logger := NewLogger(cfg.Log)

	engine, err := Open(ctx, logger, cfg)
	if err != nil {
		return err
	}
	defer engine.Close()

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      engine.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening",
			slog.String("addr", srv.Addr),
			slog.String("version", BuildVersion()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
	defer cancel()

	logger.Info("shutting down http server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

// RunMCP serves the dictionary tools over stdio until the client
// disconnects. Logs go to stderr so they never mix with the protocol stream.
func RunMCP(ctx context.Context, cfg *config.Config) error {
	logger := NewLogger(cfg.Log)

	engine, err := Open(ctx, logger, cfg)
	if err != nil {
		return err
	}
	defer engine.Close()

	h := mcp.NewHandler(engine.Search, engine.Articles, logger)
	s := mcp.NewServer(h, Version)

	logger.Info("mcp server ready", slog.String("version", BuildVersion()))
	if err := server.ServeStdio(s); err != nil {
		return fmt.Errorf("mcp stdio: %w", err)
	}
	return nil
}
