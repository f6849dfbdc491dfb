// Package main implements the chess server application with a RESTful API
// and optional SQLite persistence.
package main

import (
	"context"
	"crypto/rand"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chessdemo/cmd/chess-server/cli"
	"chessdemo/internal/http"
	"chessdemo/internal/processor"
	"chessdemo/internal/service"
	"chessdemo/internal/storage"
)

const (
	gracefulShutdownTimeout = time.Second * 5
)

func main() {
	// Check for CLI commands
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "db":
			if err := cli.Run(os.Args[2:]); err != nil {
				log.Fatalf("CLI error: %v", err)
			}
			os.Exit(0)
		case "seat":
			if err := cli.RunSeat(os.Args[2:]); err != nil {
				log.Fatalf("CLI error: %v", err)
			}
			os.Exit(0)
		}
	}

	var (
		apiHost     = flag.String("api-host", "localhost", "API server host")
		apiPort     = flag.Int("api-port", 8080, "API server port")
		dev         = flag.Bool("dev", false, "Development mode (relaxed rate limits, WAL, fixed seat key)")
		storagePath = flag.String("storage-path", "", "Path to SQLite database file (disables persistence if empty)")
		seatKey     = flag.String("seat-key", "", "Secret for signing seat tokens, at least 32 characters (random if empty)")
	)
	flag.Parse()

	// 1. Initialize Storage (optional)
	var store *storage.Store
	if *storagePath != "" {
		log.Printf("Initializing persistent storage at: %s", *storagePath)
		var err error
		store, err = storage.NewStore(*storagePath, *dev)
		if err != nil {
			log.Fatalf("Failed to initialize storage: %v", err)
		}
		if err := store.InitDB(); err != nil {
			log.Fatalf("Failed to initialize schema: %v", err)
		}
	} else {
		log.Printf("Persistent storage disabled (use -storage-path to enable)")
	}

	// Seat key management
	var secret []byte
	switch {
	case *seatKey != "":
		if len(*seatKey) < 32 {
			log.Fatal("Error: -seat-key must be at least 32 characters")
		}
		secret = []byte(*seatKey)
		log.Printf("Using seat key from flag")
	case *dev:
		secret = []byte("dev-secret-minimum-32-characters-long")
		log.Printf("Using fixed seat key (dev mode)")
	default:
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			log.Fatalf("Failed to generate seat key: %v", err)
		}
		log.Printf("Seat key generated (seats valid until restart)")
	}

	// 2. Service owns games, storage and long-poll waiters
	svc := service.New(store, secret)

	// 3. Processor maps commands onto the service
	proc := processor.New(svc)

	// 4. Fiber app
	app := http.NewFiberApp(proc, svc, *dev)

	apiAddr := fmt.Sprintf("%s:%d", *apiHost, *apiPort)

	go func() {
		log.Printf("Chess API Server starting...")
		log.Printf("API Listening on: http://%s", apiAddr)
		log.Printf("API Version: v1")
		if *dev {
			log.Printf("Rate Limit: 20 requests/second per IP (DEV MODE)")
		} else {
			log.Printf("Rate Limit: 10 requests/second per IP")
		}
		if *storagePath != "" {
			log.Printf("Storage: Enabled (%s)", *storagePath)
		} else {
			log.Printf("Storage: Disabled")
		}
		log.Printf("API Endpoints: http://%s/api/v1/games", apiAddr)
		log.Printf("Health: http://%s/health", apiAddr)

		if err := app.Listen(apiAddr); err != nil {
			log.Printf("API server listen error: %v", err)
		}
	}()

	// Wait for an interrupt signal to gracefully shut down
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	// Releases waiters, then drains and closes storage
	if err := svc.Shutdown(gracefulShutdownTimeout); err != nil {
		log.Printf("Service shutdown error: %v", err)
	}

	log.Println("Server exited")
}
