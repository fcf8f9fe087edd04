package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var notFoundBody = []byte("<html><body><h1>404 Not Found</h1></body></html>")

// StaticFiles serves files below a root directory. It is the router's
// fallback.
type StaticFiles struct {
	root string
}

func NewStaticFiles(root string) (*StaticFiles, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, err
	}
	return &StaticFiles{root: resolved}, nil
}

func (s *StaticFiles) contains(path string) bool {
	r, err := filepath.Rel(s.root, path)
	return err == nil && r != ".." && !strings.HasPrefix(r, ".."+string(filepath.Separator))
}

// Open reads the file for a request path. Every failure, including paths
// that escape the root by name or through a symlink, is reported as
// ErrStaticFileMissing.
func (s *StaticFiles) Open(path string) ([]byte, error) {
	rel := strings.TrimPrefix(path, "/")
	full := filepath.Join(s.root, filepath.FromSlash(rel))
	if !s.contains(full) {
		return nil, fmt.Errorf("%w: %s escapes root", ErrStaticFileMissing, path)
	}
	resolved, err := filepath.EvalSymlinks(full)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStaticFileMissing, err)
	}
	if !s.contains(resolved) {
		return nil, fmt.Errorf("%w: %s resolves outside root", ErrStaticFileMissing, path)
	}
	b, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStaticFileMissing, err)
	}
	return b, nil
}

func (s *StaticFiles) Handle(req *Request) (*Response, error) {
	b, err := s.Open(req.Path)
	if err != nil {
		req.Logger.Debug().Err(err).Str("path", req.Path).Msg("static file not found")
		res := &Response{Status: 404, ContentType: defaultContentType, Body: notFoundBody}
		return res, nil
	}
	return NewResponse(b), nil
}
