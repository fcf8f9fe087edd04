package main

import (
	"errors"
	"time"

	"github.com/rs/zerolog"
)

var (
	ErrMalformedRequest  = errors.New("malformed request")
	ErrUnknownStatusCode = errors.New("unknown status code")
	ErrStaticFileMissing = errors.New("static file missing")
	ErrHandlerFailure    = errors.New("handler failure")
	ErrInvalidHeader     = errors.New("invalid header")
)

// HTTPHeader keeps header fields in the order they were first set.
// Not map[string][]string, unlike http.Header: setting an existing name
// overwrites its value and keeps its position.
type HTTPHeader struct {
	names  []string
	values map[string]string
}

func (h *HTTPHeader) Set(name, value string) {
	if h.values == nil {
		h.values = make(map[string]string)
	}
	if _, ok := h.values[name]; !ok {
		h.names = append(h.names, name)
	}
	h.values[name] = value
}

func (h *HTTPHeader) Get(name string) (string, bool) {
	v, ok := h.values[name]
	return v, ok
}

// Names returns a copy of the field names in insertion order.
func (h *HTTPHeader) Names() []string {
	return append([]string(nil), h.names...)
}

func (h *HTTPHeader) Len() int {
	return len(h.names)
}

type Request struct {
	Method     string
	Path       string
	Query      string
	Version    string
	Headers    HTTPHeader
	Cookies    map[string]string
	Body       []byte
	Params     map[string]string
	RemoteAddr string
	Logger     zerolog.Logger
}

// Cookie is one Set-Cookie line of a response.
type Cookie struct {
	Name     string
	Value    string
	Expires  time.Time // zero means unset
	MaxAge   int       // 0 means unset, negative means Max-Age=0
	Domain   string
	Path     string
	Secure   bool
	HTTPOnly bool
}

type Response struct {
	Status      int
	ContentType string // empty means derived from the request path
	Headers     HTTPHeader
	Cookies     []*Cookie
	Body        []byte
}

func NewResponse(body []byte) *Response {
	return &Response{Status: 200, Body: body}
}

func TextResponse(body string) *Response {
	return NewResponse([]byte(body))
}

// Redirect returns an empty 302 response pointing at location.
func Redirect(location string) *Response {
	res := &Response{Status: 302}
	res.Headers.Set("Location", location)
	return res
}

func (res *Response) SetCookie(c *Cookie) {
	res.Cookies = append(res.Cookies, c)
}

// HandlerFunc serves one request. A returned error or a panic drops the
// connection without a response.
type HandlerFunc func(req *Request) (*Response, error)
