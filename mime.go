package main

import "strings"

const (
	defaultContentType = "text/html; charset=UTF-8"
	fallbackMIMEType   = "application/octet-stream"
)

// MIMETypes maps lowercase file extensions, without the dot, to MIME types.
type MIMETypes struct {
	types map[string]string
}

func NewMIMETypes(types map[string]string) *MIMETypes {
	m := &MIMETypes{types: make(map[string]string, len(types))}
	for ext, t := range types {
		m.types[strings.ToLower(ext)] = t
	}
	return m
}

func DefaultMIMETypes() *MIMETypes {
	return NewMIMETypes(map[string]string{
		"html": "text/html; charset=UTF-8",
		"css":  "text/css",
		"png":  "image/png",
		"jpg":  "image/jpg",
		"gif":  "image/gif",
	})
}

// Lookup never fails: unknown extensions are application/octet-stream.
func (m *MIMETypes) Lookup(ext string) string {
	if t, ok := m.types[strings.ToLower(ext)]; ok {
		return t
	}
	return fallbackMIMEType
}

// ForPath derives the content type of a path from its extension. Paths
// without an extension are dynamic endpoints and default to HTML.
func (m *MIMETypes) ForPath(path string) string {
	var ext string
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		ext = path[i+1:]
	}
	if ext == "" {
		return defaultContentType
	}
	return m.Lookup(ext)
}
