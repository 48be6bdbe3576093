/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package api serves the Dutch pairing engine over HTTP. The service is
// stateless: every request carries the full history of the tournament.
package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mikeb26/boylstonchessclub-pairings/dutch"
	"github.com/mikeb26/boylstonchessclub-pairings/internal"
)

type server struct {
	cfg *internal.ServiceConfig
}

func NewRouter(cfg *internal.ServiceConfig) http.Handler {
	s := &server{cfg: cfg}

	router := chi.NewRouter()
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost,
			http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	router.Get("/healthz", s.handleHealth)
	router.Route("/v1", func(r chi.Router) {
		r.Post("/pairings", s.handlePairings)
		r.Post("/results", s.handleResults)
	})

	return router
}

func (s *server) options() []dutch.Option {
	var opts []dutch.Option
	if s.cfg.MaxSteps > 0 {
		opts = append(opts, dutch.WithMaxSteps(s.cfg.MaxSteps))
	}

	return opts
}

func (s *server) requestContext(r *http.Request) (context.Context,
	context.CancelFunc) {

	if s.cfg.RequestTimeout <= 0 {
		return context.WithCancel(r.Context())
	}

	return context.WithTimeout(r.Context(), s.cfg.RequestTimeout)
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, envelope{"status": "ok"})
}

func (s *server) handlePairings(w http.ResponseWriter, r *http.Request) {
	var req PairingRequest
	err := readJSON(w, r, &req)
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	resp, err := Pair(ctx, &req, s.options()...)
	if err != nil {
		pairingErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *server) handleResults(w http.ResponseWriter, r *http.Request) {
	var req ResultsRequest
	err := readJSON(w, r, &req)
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	resp, err := Finish(ctx, &req, s.options()...)
	if err != nil {
		pairingErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
