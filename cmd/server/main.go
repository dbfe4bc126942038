package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	stdhttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/apakou/alx-poll/internal/adapters/backend"
	"github.com/apakou/alx-poll/internal/adapters/handler/http"
	"github.com/apakou/alx-poll/internal/config"
	"github.com/apakou/alx-poll/internal/core/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	client := backend.NewClient(cfg.BackendURL, cfg.BackendAnonKey, backend.WithServiceKey(cfg.BackendSvcKey))

	pollRepo := backend.NewPollRepository(client)
	voteRepo := backend.NewVoteRepository(client)
	resultRepo := backend.NewPollResultRepository(client)

	pollService := services.NewPollService(pollRepo, cfg.PollsPerPage)
	voteService := services.NewVoteService(pollRepo, voteRepo)

	handler := http.NewHandler(http.RouterConfig{
		PollHandler:    http.NewPollHandler(pollService),
		VoteHandler:    http.NewVoteHandler(voteService),
		ResultHandler:  http.NewResultHandler(pollService, resultRepo),
		SessionHandler: http.NewSessionHandler(client),
		JWTSecret:      []byte(cfg.JWTSecret),
		AllowedOrigins: cfg.AllowedOrigins,
	})

	server := &stdhttp.Server{Addr: cfg.ListenAddr, Handler: handler}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	fmt.Println("Gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}
