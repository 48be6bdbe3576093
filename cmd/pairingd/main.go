/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
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

	"github.com/mikeb26/boylstonchessclub-pairings/api"
	"github.com/mikeb26/boylstonchessclub-pairings/internal"
)

const shutdownTimeout = 15 * time.Second

func main() {
	log.SetFlags(log.Flags() &^ (log.Ldate | log.Ltime))

	cfg, err := internal.LoadServiceConfig(os.Args[1:]...)
	if err != nil {
		log.Fatalf("pairingd.main: %v", err)
	}

	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: api.NewRouter(cfg),
		// pairing a large round can take most of the request timeout
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 10*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Printf("pairingd.main: starting server on %v", server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("pairingd.main: Serve failed: %v", err)
		}
	case sig := <-quit:
		log.Printf("pairingd.main: received %v; shutting down", sig)

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := server.Shutdown(ctx)
		if err != nil {
			log.Printf("pairingd.main: graceful shutdown failed: %v", err)
			_ = server.Close()
		}
	}

	log.Printf("pairingd.main: exiting")
}
