package main

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	serverName = "HenaServer/0.1"
	timeFormat = "Mon, 02 Jan 2006 15:04:05 GMT"
)

func DefaultStatusLines() map[int]string {
	return map[int]string{
		200: "200 OK",
		302: "302 Found",
		404: "404 Not Found",
		405: "405 Method Not Allowed",
	}
}

// Encoder serializes responses. It is read-only after construction and
// shared by all workers.
type Encoder struct {
	statusLines map[int]string
	types       *MIMETypes
	Now         func() time.Time
}

func NewEncoder(statusLines map[int]string, types *MIMETypes) *Encoder {
	lines := make(map[int]string, len(statusLines))
	for code, line := range statusLines {
		lines[code] = line
	}
	return &Encoder{statusLines: lines, types: types, Now: time.Now}
}

// Encode returns the exact bytes to send for res, answering req.
func (e *Encoder) Encode(res *Response, req *Request) ([]byte, error) {
	statusLine, ok := e.statusLines[res.Status]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStatusCode, res.Status)
	}
	contentType := res.ContentType
	if contentType == "" {
		contentType = e.types.ForPath(req.Path)
	}
	if err := checkHeaders(res, contentType); err != nil {
		return nil, err
	}

	w := new(bytes.Buffer)
	fmt.Fprintf(w, "HTTP/1.1 %s\r\n", statusLine)
	fmt.Fprintf(w, "Date: %s\r\n", e.Now().UTC().Format(timeFormat))
	fmt.Fprintf(w, "Server: %s\r\n", serverName)
	fmt.Fprintf(w, "Content-Length: %d\r\n", len(res.Body))
	w.WriteString("Connection: close\r\n")
	fmt.Fprintf(w, "Content-Type: %s\r\n", contentType)
	for _, name := range res.Headers.Names() {
		v, _ := res.Headers.Get(name)
		fmt.Fprintf(w, "%s: %s\r\n", name, v)
	}
	for _, c := range res.Cookies {
		fmt.Fprintf(w, "Set-Cookie: %s\r\n", formatCookie(c))
	}
	w.WriteString("\r\n")
	w.Write(res.Body)
	return w.Bytes(), nil
}

// checkHeaders rejects CR or LF in anything written into the head, so a
// value cannot start a header line of its own.
func checkHeaders(res *Response, contentType string) error {
	fields := []string{contentType}
	for _, name := range res.Headers.Names() {
		v, _ := res.Headers.Get(name)
		fields = append(fields, name, v)
	}
	for _, c := range res.Cookies {
		fields = append(fields, c.Name, c.Value, c.Domain, c.Path)
	}
	for _, f := range fields {
		if strings.ContainsAny(f, "\r\n") {
			return fmt.Errorf("%w: %q", ErrInvalidHeader, f)
		}
	}
	return nil
}

func formatCookie(c *Cookie) string {
	b := new(bytes.Buffer)
	b.WriteString(c.Name)
	b.WriteByte('=')
	b.WriteString(c.Value)
	if !c.Expires.IsZero() {
		b.WriteString("; Expires=")
		b.WriteString(c.Expires.UTC().Format(timeFormat))
	}
	if c.MaxAge > 0 {
		b.WriteString("; Max-Age=")
		b.WriteString(strconv.Itoa(c.MaxAge))
	} else if c.MaxAge < 0 {
		b.WriteString("; Max-Age=0")
	}
	if c.Domain != "" {
		b.WriteString("; Domain=")
		b.WriteString(c.Domain)
	}
	if c.Path != "" {
		b.WriteString("; Path=")
		b.WriteString(c.Path)
	}
	if c.Secure {
		b.WriteString("; Secure")
	}
	if c.HTTPOnly {
		b.WriteString("; HttpOnly")
	}
	return b.String()
}
