package main

import (
	"flag"
	"net"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var (
	addr      = flag.String("addr", "127.0.0.1", "listen address")
	port      = flag.String("port", "8080", "port number")
	staticDir = flag.String("static", "static", "static file root")
	templates = flag.String("templates", "templates", "template directory")
	secret    = flag.String("secret", os.Getenv("HENA_SECRET"), "session signing key")
	debug     = flag.Bool("debug", false, "debug logging")
)

func newServer(log zerolog.Logger) (*Server, error) {
	static, err := NewStaticFiles(*staticDir)
	if err != nil {
		return nil, err
	}
	key := []byte(*secret)
	if len(key) == 0 {
		log.Warn().Msg("no session secret given, using a random key")
		if key, err = RandomSessionKey(); err != nil {
			return nil, err
		}
	}
	sessions, err := NewSessions(key, time.Hour)
	if err != nil {
		return nil, err
	}
	renderer, err := NewRenderer(*templates)
	if err != nil {
		return nil, err
	}
	v := &views{renderer: renderer, sessions: sessions}
	router, err := NewRouter(static.Handle, routes(v)...)
	if err != nil {
		return nil, err
	}
	encoder := NewEncoder(DefaultStatusLines(), DefaultMIMETypes())
	return NewServer(router, encoder, log), nil
}

func main() {
	flag.Parse()

	level := zerolog.InfoLevel
	if *debug {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	srv, err := newServer(log)
	if err != nil {
		log.Fatal().Err(err).Msg("setup failed")
	}
	if err := srv.ListenAndServe(net.JoinHostPort(*addr, *port)); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
