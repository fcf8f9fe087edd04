package main

import (
	"bytes"
	"fmt"
	"strings"
)

var (
	crlf     = []byte("\r\n")
	crlfCRLF = []byte("\r\n\r\n")
)

// ParseRequest decodes one request from the bytes received on a connection.
// The head must be terminated by a blank line; everything after it is body.
func ParseRequest(b []byte) (*Request, error) {
	lineEnd := bytes.Index(b, crlf)
	if lineEnd < 0 {
		return nil, fmt.Errorf("%w: no request line", ErrMalformedRequest)
	}
	headEnd := bytes.Index(b, crlfCRLF)
	if headEnd < 0 {
		return nil, fmt.Errorf("%w: no end of headers", ErrMalformedRequest)
	}

	req := &Request{Params: make(map[string]string)}
	if err := readRequestLine(req, string(b[:lineEnd])); err != nil {
		return nil, err
	}
	if headEnd > lineEnd {
		if err := readHeaders(req, string(b[lineEnd+len(crlf):headEnd])); err != nil {
			return nil, err
		}
	}
	req.Cookies = parseCookies(req.Headers)
	req.Body = b[headEnd+len(crlfCRLF):]
	return req, nil
}

func readRequestLine(req *Request, rl string) error {
	fields := strings.Split(rl, " ")
	if len(fields) != 3 {
		return fmt.Errorf("%w: invalid request line %q", ErrMalformedRequest, rl)
	}
	for _, f := range fields {
		if f == "" {
			return fmt.Errorf("%w: invalid request line %q", ErrMalformedRequest, rl)
		}
	}
	req.Method = fields[0]
	req.Path, req.Query, _ = strings.Cut(fields[1], "?")
	req.Version = fields[2]
	if req.Path == "" {
		return fmt.Errorf("%w: empty path", ErrMalformedRequest)
	}
	return nil
}

func readHeaders(req *Request, block string) error {
	var last string
	for _, line := range strings.Split(block, "\r\n") {
		// obsolete line folding
		if line != "" && (line[0] == ' ' || line[0] == '\t') {
			if last == "" {
				return fmt.Errorf("%w: continuation without header", ErrMalformedRequest)
			}
			prev, _ := req.Headers.Get(last)
			req.Headers.Set(last, prev+" "+strings.TrimLeft(line, " \t"))
			continue
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			return fmt.Errorf("%w: invalid header %q", ErrMalformedRequest, line)
		}
		req.Headers.Set(name, strings.TrimLeft(value, " "))
		last = name
	}
	return nil
}

func parseCookies(h HTTPHeader) map[string]string {
	cookies := make(map[string]string)
	for _, name := range h.Names() {
		if !strings.EqualFold(name, "Cookie") {
			continue
		}
		v, _ := h.Get(name)
		for _, pair := range strings.Split(v, "; ") {
			if k, v, ok := strings.Cut(pair, "="); ok {
				cookies[k] = v
			}
		}
	}
	return cookies
}
