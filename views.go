package main

import (
	"net/url"
	"strings"
	"time"
)

var methodNotAllowedBody = []byte("<html><body><h1>405 Method Not Allowed</h1></body></html>")

// views holds the application handlers and their collaborators.
type views struct {
	renderer *Renderer
	sessions *Sessions
}

func (v *views) render(name string, context map[string]any) (*Response, error) {
	body, err := v.renderer.Render(name, context)
	if err != nil {
		return nil, err
	}
	return TextResponse(body), nil
}

func (v *views) now(req *Request) (*Response, error) {
	return v.render("now.html", map[string]any{"now": time.Now().Format(time.RFC1123)})
}

func (v *views) showRequest(req *Request) (*Response, error) {
	var headers strings.Builder
	for _, name := range req.Headers.Names() {
		value, _ := req.Headers.Get(name)
		headers.WriteString(name + ": " + value + "\n")
	}
	return v.render("show_request.html", map[string]any{
		"method":  req.Method,
		"path":    req.Path,
		"version": req.Version,
		"headers": headers.String(),
		"body":    strings.ToValidUTF8(string(req.Body), ""),
	})
}

func (v *views) parameters(req *Request) (*Response, error) {
	switch req.Method {
	case "POST":
		params, err := url.ParseQuery(string(req.Body))
		if err != nil {
			return nil, err
		}
		return v.render("parameters.html", map[string]any{"params": params})
	default:
		return &Response{Status: 405, Body: methodNotAllowedBody}, nil
	}
}

func (v *views) userProfile(req *Request) (*Response, error) {
	return v.render("user_profile.html", map[string]any{"user_id": req.Params["user_id"]})
}

func (v *views) setCookie(req *Request) (*Response, error) {
	res := TextResponse("<html><body><h1>cookie set</h1></body></html>")
	res.SetCookie(&Cookie{Name: "username", Value: "TARO"})
	return res, nil
}

func (v *views) login(req *Request) (*Response, error) {
	switch req.Method {
	case "POST":
		form, err := url.ParseQuery(string(req.Body))
		if err != nil {
			return nil, err
		}
		username := form.Get("username")
		if username == "" {
			return Redirect("/login"), nil
		}
		cookie, err := v.sessions.Issue(username)
		if err != nil {
			return nil, err
		}
		res := Redirect("/welcome")
		res.SetCookie(cookie)
		req.Logger.Info().Str("username", username).Msg("login")
		return res, nil
	case "GET":
		return v.render("login.html", nil)
	default:
		return &Response{Status: 405, Body: methodNotAllowedBody}, nil
	}
}

func (v *views) welcome(req *Request) (*Response, error) {
	username, err := v.sessions.Username(req)
	if err != nil {
		req.Logger.Debug().Err(err).Msg("no valid session")
		return Redirect("/login"), nil
	}
	return v.render("welcome.html", map[string]any{"username": username})
}

func (v *views) logout(req *Request) (*Response, error) {
	res := Redirect("/login")
	res.SetCookie(v.sessions.Expire())
	return res, nil
}
