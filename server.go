package main

import (
	"errors"
	"net"

	"github.com/rs/zerolog"
)

// Server accepts connections and hands each to its own Worker. Router and
// encoder are shared read-only between workers.
type Server struct {
	router  *Router
	encoder *Encoder
	log     zerolog.Logger
}

func NewServer(router *Router, encoder *Encoder, log zerolog.Logger) *Server {
	return &Server{router: router, encoder: encoder, log: log}
}

func (s *Server) handle(conn net.Conn) {
	worker := NewWorker(s.router, s.encoder, s.log)
	worker.Start(conn) // worker takes the ownership of |conn|
}

// Serve blocks accepting connections until ln is closed.
func (s *Server) Serve(ln net.Listener) error {
	s.log.Info().Str("addr", ln.Addr().String()).Msg("waiting for connections")
	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.log.Warn().Err(err).Msg("accept error")
			continue
		}
		go s.handle(conn)
	}
}

func (s *Server) ListenAndServe(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	defer ln.Close()
	return s.Serve(ln)
}
