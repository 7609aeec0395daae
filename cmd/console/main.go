package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"playconsole/internal/http/handlers"
	httpapi "playconsole/internal/http/httpapi"
	"playconsole/internal/identity"
	"playconsole/internal/infra"
	"playconsole/internal/session"
	"playconsole/internal/studio"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	issuer, err := identity.NewCognitoAuthenticator(ctx, cfg.CognitoRegion, cfg.CognitoClientID)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize identity provider")
	}

	client := studio.NewClient(studio.Options{
		BaseURL:        cfg.StudioBaseURL,
		RequestTimeout: cfg.RequestTimeout,
		Logger:         &logger,
	})

	app := handlers.NewApp(logger, client, issuer, session.NewStore())
	router := httpapi.NewRouter(app, cfg)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("console API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
