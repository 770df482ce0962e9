package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chat-engine/internal/chat"
	"chat-engine/internal/clipboard"
	"chat-engine/internal/config"
	"chat-engine/internal/identity"
	"chat-engine/internal/logger"
	"chat-engine/internal/metrics"
	"chat-engine/internal/repository"
	"chat-engine/internal/store"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := config.Load()

	logs, err := logger.Setup(cfg.Log, "chat-engine")
	if err != nil {
		log.Fatalf("[MAIN] Logger setup failed: %v", err)
	}
	defer logs.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dir, release, err := repository.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("[MAIN] Failed to open directory: %v", err)
	}
	users, chats, err := dir.Load(ctx)
	release()
	if err != nil {
		log.Fatalf("[MAIN] Failed to load directory: %v", err)
	}

	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
		log.Fatalf("[MAIN] Metrics registration failed: %v", err)
	}

	s := store.New(users, chats, store.Options{
		Actor:             identity.Static(cfg.ActorID),
		EditWindow:        cfg.EditWindow,
		HighlightDuration: cfg.HighlightDuration,
		Clipboard:         &clipboard.Buffer{},
		Embedded:          cfg.Embedded,
	})

	h := chat.NewHub(s)
	go h.Run()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", chat.ServeWS(h, cfg.RateLimitRPS, cfg.RateLimitBurst))
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("🚀 Chat engine listening on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	<-ctx.Done()

	log.Println("Shutdown signal received. Cleaning up...")
	close(h.Quit)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[MAIN] Shutdown: %v", err)
	}
	log.Println("Graceful shutdown complete. Goodnight!")
}
