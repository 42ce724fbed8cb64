// cmd/pepwatch/main.go
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pepwatch/pepwatch/pkg/cloud/api"
	"github.com/pepwatch/pepwatch/pkg/config"
	"github.com/pepwatch/pepwatch/pkg/peplink"
	"github.com/pepwatch/pepwatch/pkg/poller"
)

func main() {
	log.SetPrefix("pepwatch: ")

	configPath := "/etc/pepwatch/pepwatch.json"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	var cfg config.Config
	if err := config.LoadAndValidate(configPath, &cfg); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	client := peplink.NewRouterClient(&cfg.Router)

	p := poller.New(poller.Config{
		FastInterval:     time.Duration(cfg.Poller.FastInterval),
		SlowInterval:     time.Duration(cfg.Poller.SlowInterval),
		FailureThreshold: cfg.Poller.FailureThreshold,
	}, client)

	apiServer := api.NewAPIServer(p)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		log.Printf("Shutting down")
		cancel()
	}()

	go func() {
		if err := apiServer.Start(cfg.API.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("API server failed: %v", err)
		}
	}()

	log.Printf("Polling %s (fast=%s slow=%s)",
		cfg.Router.Host, time.Duration(cfg.Poller.FastInterval), time.Duration(cfg.Poller.SlowInterval))

	if err := p.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Poller failed: %v", err)
	}
}
