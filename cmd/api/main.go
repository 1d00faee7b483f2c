package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/shiva994u/stock-news-analyzer/internal/app"
	"github.com/shiva994u/stock-news-analyzer/internal/config"
	"github.com/shiva994u/stock-news-analyzer/internal/handler"
	"github.com/shiva994u/stock-news-analyzer/internal/warmer"
)

func main() {

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := app.New(ctx, cfg, slog.Default())
	defer func() {
		if err := a.Close(); err != nil {
			slog.Error("error closing storage", "error", err)
		}
	}()

	if len(cfg.Warm.Watchlist) > 0 {
		w := warmer.New(ctx, a.Engine, cfg.Warm.Watchlist, slog.Default())
		if err := w.Register(cfg.Warm.Cron); err != nil {
			log.Fatalf("error scheduling warmer: %v", err)
		}
		w.Start()
		defer w.Stop()
	}

	limiter := handler.NewRateLimiter(cfg.Server.ClientRPS, cfg.Server.ClientBurst)
	go limiter.Run(time.Minute, ctx.Done())

	r := gin.Default()

	allowedOrigins := cfg.AllowedOrigins()
	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))
	r.Use(limiter.Middleware())

	handler.NewMarketHandler(a.Engine).Register(r)

	srv := &http.Server{Addr: ":" + cfg.Server.Port, Handler: r}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("api listening", "port", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("error starting server: %v", err)
	}
}
