package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"shieldops/internal/auth"
	"shieldops/internal/config"
	"shieldops/internal/db"
	"shieldops/internal/httpserver"
	"shieldops/internal/logging"
	"shieldops/internal/provision"
	"shieldops/internal/reports"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	var dbConn *sql.DB
	var authn auth.Authenticator
	switch cfg.AuthStrategy {
	case config.StrategyDatabase:
		var dialect db.Dialect
		dbConn, dialect, err = db.Open(ctx, db.Options{
			Driver:         cfg.DB.Driver,
			DSN:            cfg.DB.DSN(),
			MaxOpenConns:   cfg.DB.MaxOpenConns,
			ConnectTimeout: cfg.DB.ConnectTimeout,
		})
		if err != nil {
			logger.Fatalw("open db", "err", err)
		}
		if cfg.SeedOnStart {
			if _, err := provision.Run(ctx, dbConn, dialect, provisionOptions(cfg), logger); err != nil {
				logger.Fatalw("provision users", "err", err)
			}
		}
		authn, err = auth.NewDBAuthenticator(auth.NewSQLStore(dbConn, dialect), cfg.DB.QueryTimeout, cfg.BcryptCost)
		if err != nil {
			logger.Fatalw("init authenticator", "err", err)
		}
	default:
		store, err := auth.LoadUsersFile(cfg.UsersPath)
		if err != nil {
			logger.Fatalw("load users file", "path", cfg.UsersPath, "err", err)
		}
		authn = auth.NewFileAuthenticator(store)
	}

	issuer, err := newIssuer(cfg)
	if err != nil {
		logger.Fatalw("init token issuer", "err", err)
	}
	if cfg.TokenMode == config.TokenPlaceholder {
		logger.Warn("placeholder tokens are unsigned and forgeable; set TOKEN_MODE=signed outside demos")
	}

	handler := httpserver.NewRouter(httpserver.RouterConfig{
		Logger:      logger,
		Auth:        auth.NewService(authn, issuer),
		Catalog:     reports.DefaultCatalog(),
		CORSOrigins: cfg.CORSOrigins,
	})
	server := httpserver.New(cfg.HTTPAddr(), handler, logger)
	logger.Infow("configured",
		"auth_strategy", cfg.AuthStrategy,
		"token_mode", cfg.TokenMode,
		"api_base_url", cfg.APIBaseURL,
	)

	go func() {
		if err := server.Start(); err != nil {
			logger.Fatalw("http server", "err", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Errorw("shutdown error", "err", err)
	}
	closeDB(dbConn, logger)
}

func newIssuer(cfg config.Config) (auth.Issuer, error) {
	switch cfg.TokenMode {
	case config.TokenSigned:
		return auth.NewSignedIssuer(cfg.JWTSecret, cfg.JWTTTL), nil
	case config.TokenPlaceholder:
		return auth.NewPlaceholderIssuer(), nil
	}
	return nil, fmt.Errorf("unknown token mode %q", cfg.TokenMode)
}

func provisionOptions(cfg config.Config) provision.Options {
	return provision.Options{
		SeedFile:        cfg.SeedFile,
		DefaultPassword: cfg.SeedPassword,
		BcryptCost:      cfg.BcryptCost,
	}
}

func closeDB(conn *sql.DB, logger *zap.SugaredLogger) {
	if conn == nil {
		return
	}
	if err := conn.Close(); err != nil {
		logger.Errorw("close db", "err", err)
	}
}
