package main

import (
	"errors"
	"testing"
)

func ExpectEqual(t *testing.T, expect, actual string) {
	t.Helper()
	if expect != actual {
		t.Errorf("Got %q, want %q", actual, expect)
	}
}

func header(t *testing.T, h HTTPHeader, name string) string {
	t.Helper()
	v, ok := h.Get(name)
	if !ok {
		t.Errorf("missing header %s", name)
	}
	return v
}

func TestParseRequest(t *testing.T) {
	raw := "POST /parameters HTTP/1.1\r\n" +
		"Host: localhost:8080\r\n" +
		"Content-Type: application/x-www-form-urlencoded\r\n" +
		"X-Mixed-Case: VaLuE\r\n" +
		"\r\n" +
		"foo=bar&baz=1"
	req, err := ParseRequest([]byte(raw))
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	ExpectEqual(t, "POST", req.Method)
	ExpectEqual(t, "/parameters", req.Path)
	ExpectEqual(t, "HTTP/1.1", req.Version)
	ExpectEqual(t, "localhost:8080", header(t, req.Headers, "Host"))
	ExpectEqual(t, "VaLuE", header(t, req.Headers, "X-Mixed-Case"))
	ExpectEqual(t, "foo=bar&baz=1", string(req.Body))

	names := req.Headers.Names()
	if len(names) != 3 || names[0] != "Host" || names[2] != "X-Mixed-Case" {
		t.Errorf("header order: %v", names)
	}
}

func TestParseRequestBinaryBody(t *testing.T) {
	body := []byte{0x00, 0xff, '\r', '\n', '\r', '\n', 0x7f}
	raw := append([]byte("PUT /upload HTTP/1.1\r\nHost: x\r\n\r\n"), body...)
	req, err := ParseRequest(raw)
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	ExpectEqual(t, string(body), string(req.Body))
}

func TestParseRequestNoHeaders(t *testing.T) {
	req, err := ParseRequest([]byte("GET / HTTP/1.1\r\n\r\n"))
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	ExpectEqual(t, "/", req.Path)
	if req.Headers.Len() != 0 || len(req.Body) != 0 {
		t.Errorf("expected no headers and no body, got %v %q", req.Headers.Names(), req.Body)
	}
}

func TestParseRequestDuplicateHeaderLastWins(t *testing.T) {
	req, err := ParseRequest([]byte("GET / HTTP/1.1\r\nX-A: 1\r\nX-B: 2\r\nX-A: 3\r\n\r\n"))
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	ExpectEqual(t, "3", header(t, req.Headers, "X-A"))
	if n := req.Headers.Len(); n != 2 {
		t.Errorf("got %d headers, want 2", n)
	}
}

func TestParseRequestHeaderWhitespace(t *testing.T) {
	req, err := ParseRequest([]byte("GET / HTTP/1.1\r\nA:no-space\r\nB:    many\r\nC: a:b\r\n\r\n"))
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	ExpectEqual(t, "no-space", header(t, req.Headers, "A"))
	ExpectEqual(t, "many", header(t, req.Headers, "B"))
	ExpectEqual(t, "a:b", header(t, req.Headers, "C"))
}

func TestParseRequestFoldedHeader(t *testing.T) {
	req, err := ParseRequest([]byte("GET / HTTP/1.1\r\nX-Long: first\r\n  second\r\n\tthird\r\n\r\n"))
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	ExpectEqual(t, "first second third", header(t, req.Headers, "X-Long"))
}

func TestParseRequestCookies(t *testing.T) {
	req, err := ParseRequest([]byte("GET / HTTP/1.1\r\nCookie: username=TARO; session=a=b; bare\r\n\r\n"))
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	ExpectEqual(t, "TARO", req.Cookies["username"])
	ExpectEqual(t, "a=b", req.Cookies["session"])
	if _, ok := req.Cookies["bare"]; ok {
		t.Errorf("pair without '=' should be ignored")
	}
}

func TestParseRequestQuery(t *testing.T) {
	req, err := ParseRequest([]byte("GET /now?x=1 HTTP/1.1\r\n\r\n"))
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	ExpectEqual(t, "/now", req.Path)
	ExpectEqual(t, "x=1", req.Query)
}

func TestParseRequestMalformed(t *testing.T) {
	for _, raw := range []string{
		"",
		"GET / HTTP/1.1",
		"GET / HTTP/1.1\r\nHost: x\r\n",
		"GET /\r\n\r\n",
		"GET / HTTP/1.1 extra\r\n\r\n",
		"GET  / HTTP/1.1\r\n\r\n",
		"GET / HTTP/1.1\r\nno colon here\r\n\r\n",
		"GET / HTTP/1.1\r\n folded-first\r\n\r\n",
		"GET ?q HTTP/1.1\r\n\r\n",
	} {
		_, err := ParseRequest([]byte(raw))
		if !errors.Is(err, ErrMalformedRequest) {
			t.Errorf("%q: got %v, want ErrMalformedRequest", raw, err)
		}
	}
}
