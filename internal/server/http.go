package server

import (
	"fmt"
	"log"
	"net/http"
)

// Server is the HTTP server for the web interface.
type Server struct {
	mux       *http.ServeMux
	handler   *Handlers
	addr      string
	staticDir string
}

// NewServer creates a new HTTP server.
func NewServer(addr string, handler *Handlers, staticDir string) *Server {
	s := &Server{
		mux:       http.NewServeMux(),
		handler:   handler,
		addr:      addr,
		staticDir: staticDir,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// API routes
	s.mux.HandleFunc("/api/simulate", s.handler.HandleSimulate)
	s.mux.HandleFunc("/api/schemes", s.handler.HandleSchemes)
	s.mux.HandleFunc("/api/theory", s.handler.HandleTheory)
	s.mux.HandleFunc("/api/play", s.handler.HandlePlay)
	s.mux.HandleFunc("/api/devices", s.handler.HandleDevices)

	// WebSocket
	s.mux.HandleFunc("/ws", s.handler.HandleWebSocket)

	// Static files
	s.mux.Handle("/", http.FileServer(http.Dir(s.staticDir)))
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	log.Printf("Starting server on %s", s.addr)
	fmt.Printf("\n  Modulation Visualizer running at http://%s\n\n", s.addr)
	return http.ListenAndServe(s.addr, s.mux)
}
