package main

import (
	"errors"
	"fmt"
	"io"
	"net"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// MaxRequestSize is the size of the single read a worker performs. Requests
// longer than this are truncated; there is no second read.
const MaxRequestSize = 4096

var connCounter atomic.Uint64

// Worker handles one client connection: receive, parse, route, handle,
// encode, send, close. It never sends a response for a failure other than
// a missing static file.
type Worker struct {
	conn    net.Conn
	router  *Router
	encoder *Encoder
	log     zerolog.Logger

	raw     []byte
	req     *Request
	handler HandlerFunc
	res     *Response
	out     []byte
	err     error
}

type stateFunc func(*Worker) stateFunc

func NewWorker(router *Router, encoder *Encoder, log zerolog.Logger) *Worker {
	return &Worker{
		router:  router,
		encoder: encoder,
		log:     log,
	}
}

// Start runs the connection to completion. The worker takes ownership of
// conn and always closes it.
func (w *Worker) Start(conn net.Conn) {
	w.conn = conn
	w.log = w.log.With().
		Uint64("conn", connCounter.Add(1)).
		Str("remote", remoteAddr(conn)).
		Logger()

	for state := receiveRequest; state != nil; {
		state = state(w)
	}
}

func remoteAddr(conn net.Conn) string {
	if a := conn.RemoteAddr(); a != nil {
		return a.String()
	}
	return ""
}

func (w *Worker) fail(state string, err error) stateFunc {
	w.err = err
	w.log.Error().Err(err).Str("state", state).Msg("dropping connection")
	return finishWorker
}

// state funcs

func receiveRequest(w *Worker) stateFunc {
	buf := make([]byte, MaxRequestSize)
	n, err := w.conn.Read(buf)
	if n == 0 {
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return w.fail("receive", err)
	}
	w.raw = buf[:n]
	w.log.Debug().Int("bytes", n).Msg("request received")
	return parseRequest
}

func parseRequest(w *Worker) stateFunc {
	req, err := ParseRequest(w.raw)
	if err != nil {
		return w.fail("parse", err)
	}
	req.RemoteAddr = remoteAddr(w.conn)
	req.Logger = w.log
	w.req = req
	w.log.Info().Str("method", req.Method).Str("path", req.Path).Msg("request")
	return routeRequest
}

func routeRequest(w *Worker) stateFunc {
	w.handler = w.router.Resolve(w.req)
	if w.handler == nil {
		return w.fail("route", errors.New("no handler"))
	}
	return handleRequest
}

func handleRequest(w *Worker) stateFunc {
	res, err := w.invoke()
	if err != nil {
		return w.fail("handle", err)
	}
	w.res = res
	return encodeResponse
}

func (w *Worker) invoke() (res *Response, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, fmt.Errorf("%w: panic: %v", ErrHandlerFailure, r)
		}
	}()
	res, err = w.handler(w.req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHandlerFailure, err)
	}
	if res == nil {
		return nil, fmt.Errorf("%w: nil response", ErrHandlerFailure)
	}
	return res, nil
}

func encodeResponse(w *Worker) stateFunc {
	out, err := w.encoder.Encode(w.res, w.req)
	if err != nil {
		return w.fail("encode", err)
	}
	w.out = out
	return sendResponse
}

func sendResponse(w *Worker) stateFunc {
	if _, err := w.conn.Write(w.out); err != nil {
		return w.fail("send", err)
	}
	w.log.Info().Int("status", w.res.Status).Int("bytes", len(w.out)).Msg("response sent")
	return finishWorker
}

func finishWorker(w *Worker) stateFunc {
	if err := w.conn.Close(); err != nil {
		w.log.Debug().Err(err).Msg("close")
	}
	w.log.Debug().Msg("worker finished")
	return nil
}
