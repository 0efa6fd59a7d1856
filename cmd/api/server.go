package main

import (
	"context"
	"errors"
	"log"
	"net/http"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// apiServer wires HTTP handlers over the debate service.
type apiServer struct {
	svc *debateService
}

func newAPIServer(svc *debateService) *apiServer {
	return &apiServer{svc: svc}
}

func buildMux(s *apiServer) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/debate", s.handleDebate)
	mux.HandleFunc("/api/debates", s.handleStart)
	mux.HandleFunc("/api/watch/", s.handleWatchSSE)
	mux.HandleFunc("/api/ws", s.handleWatchWS)
	mux.HandleFunc("/api/results/", s.handleResult)
	return mux
}

type Server struct {
	httpServer *http.Server
}

func NewServer(port string, handler http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:    port,
			Handler: h2c.NewHandler(handler, &http2.Server{}),
		},
	}
}

func (s *Server) Start() error {
	log.Printf("Starting API server on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
