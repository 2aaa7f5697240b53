package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-trade-insights/analysis"
	"github.com/jrsteele09/go-trade-insights/auth"
	"github.com/jrsteele09/go-trade-insights/internal/config"
	"github.com/jrsteele09/go-trade-insights/server"
	"github.com/jrsteele09/go-trade-insights/sessions"
	"github.com/jrsteele09/go-trade-insights/token"
	"github.com/jrsteele09/go-trade-insights/users"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("error running server")
	}
	log.Info().Msg("server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Any("panic", r).Msg("recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()

	// Signing material is a startup precondition, not a per-request error.
	secretKey := c.GetSecretKey()
	if secretKey == "" {
		return errors.New("SECRET_KEY environment variable is required")
	}

	displayAppname(c.GetAppName())

	registry := sessions.NewRegistry(c.GetBucketCapacity(), c.GetBucketRefillPeriod(), c.GetSessionTTL())
	codec := token.NewCodec([]byte(secretKey))

	gate, err := auth.NewService(codec, registry)
	if err != nil {
		return fmt.Errorf("auth.NewService: %w", err)
	}

	analyzer := analysis.NewService(
		analysis.NewCollector(),
		analysis.NewLLMClient(c.GetLLMAPIKey(), c.GetLLMModelName()),
		analysis.NewReportStore(c.GetReportsFolder()),
		c.GetLLMModelName(),
	)

	repos := server.Repos{
		Users:    users.NewInMemoryRepo(),
		Sessions: registry,
	}

	handler, err := server.New(c, repos, codec, gate, analyzer)
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}

	httpServer := &http.Server{Addr: c.GetPort(), Handler: handler}
	go listenAndServe(httpServer)
	waitForStopSignal()
	return shutdown(httpServer)
}

func listenAndServe(server *http.Server) {
	log.Info().Str("addr", server.Addr).Msg("server listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("server.ListenAndServe")
	}
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
