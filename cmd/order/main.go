package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/DarkRecklessness/ShopService/internal/infrastructure"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, cleanup, err := infrastructure.BootstrapOrder(ctx)
	if cleanup != nil {
		defer cleanup()
	}
	if err != nil {
		log.Fatalf("order service bootstrap failed: %v", err)
	}

	log.Println("order service is running")
	if err := app.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("order service stopped: %v", err)
	}
}
