package main

import (
	"context"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/santeck77/whatsapp-dabbaXpress/internal/bot"
	"github.com/santeck77/whatsapp-dabbaXpress/internal/catalog"
	"github.com/santeck77/whatsapp-dabbaXpress/internal/compose"
	"github.com/santeck77/whatsapp-dabbaXpress/internal/config"
	"github.com/santeck77/whatsapp-dabbaXpress/internal/dialogue"
	"github.com/santeck77/whatsapp-dabbaXpress/internal/intent"
	"github.com/santeck77/whatsapp-dabbaXpress/internal/logging"
	"github.com/santeck77/whatsapp-dabbaXpress/internal/metrics"
	"github.com/santeck77/whatsapp-dabbaXpress/internal/session"
	"github.com/santeck77/whatsapp-dabbaXpress/internal/whatsapp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		l := logging.New("info", "console")
		l.Fatal().Err(err).Msg("config")
	}

	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	var store session.Store
	switch cfg.SessionBackend {
	case "bolt":
		store, err = session.NewBoltStore(filepath.Join(cfg.DataDir, "sessions.db"))
		if err != nil {
			log.Fatal().Err(err).Msg("store")
		}
	default:
		store = session.NewMemoryStore()
	}
	defer store.Close()

	metrics.MustRegister()

	cat := catalog.Default()
	seed := uint64(time.Now().UnixNano())
	engine := dialogue.NewEngine(cat, rand.New(rand.NewPCG(seed, seed>>1)), time.Now)
	composer := compose.New(cat, cfg.BrandName, cfg.UPIID, cfg.DeliveryETAMinutes, compose.Mode(cfg.RenderMode))

	waClient := whatsapp.NewClient(cfg.WAPhoneNumberID, cfg.WAAccessToken)
	locks := session.NewLocks()

	// Periodic cleanup of stale per-user locks to prevent memory leaks
	go func() {
		ticker := time.NewTicker(30 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			locks.Cleanup(1 * time.Hour)
		}
	}()

	botHandler := bot.NewHandler(waClient, store, locks, engine, composer, log)
	webhookHandler := whatsapp.NewWebhookHandler(cfg.WAVerifyToken, func(ctx context.Context, ev intent.InboundEvent) {
		botHandler.HandleEvent(ctx, ev)
	}, log)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/webhook", webhookHandler.HandleVerify)
	r.Post("/webhook", webhookHandler.HandleIncoming)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("render_mode", cfg.RenderMode).Msg("dabbaxpress: listening")
		log.Info().Str("verify_token", cfg.WAVerifyToken).Msg("dabbaxpress: webhook verify token")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("dabbaxpress: shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("shutdown")
	}
	log.Info().Msg("dabbaxpress: stopped")
}
