package main

import (
	"fmt"
	"regexp"
	"strings"
)

var placeholderRe = regexp.MustCompile(`<(.+?)>`)

type Route struct {
	Pattern string
	Handler HandlerFunc
}

type compiledRoute struct {
	re      *regexp.Regexp
	handler HandlerFunc
}

// Router is an ordered, immutable route table. The first matching pattern
// wins; paths no pattern matches go to the fallback.
type Router struct {
	routes   []compiledRoute
	fallback HandlerFunc
}

func NewRouter(fallback HandlerFunc, routes ...Route) (*Router, error) {
	r := &Router{fallback: fallback}
	for _, route := range routes {
		re, err := compilePattern(route.Pattern)
		if err != nil {
			return nil, fmt.Errorf("route %q: %v", route.Pattern, err)
		}
		r.routes = append(r.routes, compiledRoute{re, route.Handler})
	}
	return r, nil
}

// compilePattern turns each <name> into a capture of one or more non-slash
// characters. The result is anchored at the start only, so it matches
// prefixes of longer paths.
func compilePattern(pattern string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("^")
	pos := 0
	for _, m := range placeholderRe.FindAllStringSubmatchIndex(pattern, -1) {
		b.WriteString(regexp.QuoteMeta(pattern[pos:m[0]]))
		fmt.Fprintf(&b, "(?P<%s>[^/]+)", pattern[m[2]:m[3]])
		pos = m[1]
	}
	b.WriteString(regexp.QuoteMeta(pattern[pos:]))
	return regexp.Compile(b.String())
}

// Resolve returns the handler for req.Path and stores captured
// placeholders in req.Params, undecoded.
func (r *Router) Resolve(req *Request) HandlerFunc {
	for _, route := range r.routes {
		m := route.re.FindStringSubmatch(req.Path)
		if m == nil {
			continue
		}
		if req.Params == nil {
			req.Params = make(map[string]string)
		}
		for i, name := range route.re.SubexpNames() {
			if name != "" {
				req.Params[name] = m[i]
			}
		}
		return route.handler
	}
	return r.fallback
}
