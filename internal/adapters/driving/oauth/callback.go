// Package oauth runs the loopback side of an installed-app OAuth flow:
// a one-shot HTTP listener on 127.0.0.1 that captures the redirect, plus
// helpers for the state parameter and opening the consent page.
package oauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// CallbackPath is the path the provider redirects to.
const CallbackPath = "/callback"

type outcome struct {
	code string
	err  error
}

// CallbackServer captures the first redirect that reaches it. Later
// redirects get a page but do not change the outcome.
type CallbackServer struct {
	state   string
	srv     *http.Server
	port    int
	outcome chan outcome

	stopOnce sync.Once
	stopErr  error
}

// Listen binds 127.0.0.1:port and serves the redirect in the background.
// Port 0 picks a free port.
func Listen(port int, state string) (*CallbackServer, error) {
	ln, err := net.Listen("tcp", net.JoinHostPort("127.0.0.1", strconv.Itoa(port)))
	if err != nil {
		return nil, fmt.Errorf("listen for oauth callback on port %d: %w", port, err)
	}

	s := &CallbackServer{
		state:   state,
		port:    ln.Addr().(*net.TCPAddr).Port,
		outcome: make(chan outcome, 1),
	}
	mux := http.NewServeMux()
	mux.Handle(CallbackPath, s)
	s.srv = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      10 * time.Second,
	}

	go func() {
		if err := s.srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			s.finish(outcome{err: err})
		}
	}()
	return s, nil
}

// ServeHTTP handles the provider redirect.
func (s *CallbackServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	var (
		res    outcome
		status = http.StatusOK
		page   = resultPage{Title: "Calendar connected", Message: "You can close this window and return to the terminal."}
	)
	switch {
	case q.Get("error") != "":
		res.err = fmt.Errorf("oauth error: %s - %s", q.Get("error"), q.Get("error_description"))
		page = resultPage{Title: "Authorisation failed", Message: q.Get("error")}
	case q.Get("state") != s.state:
		res.err = errors.New("oauth callback state mismatch")
		status = http.StatusBadRequest
		page = resultPage{Title: "Authorisation failed", Message: "invalid state parameter"}
	case q.Get("code") == "":
		res.err = errors.New("no authorisation code received")
		status = http.StatusBadRequest
		page = resultPage{Title: "Authorisation failed", Message: "no code received"}
	default:
		res.code = q.Get("code")
	}

	s.finish(res)
	w.WriteHeader(status)
	_ = pageTemplate.Execute(w, page)
}

// finish records the first outcome only.
func (s *CallbackServer) finish(res outcome) {
	select {
	case s.outcome <- res:
	default:
	}
}

// WaitForCode blocks until the redirect arrives or ctx ends.
func (s *CallbackServer) WaitForCode(ctx context.Context) (string, error) {
	select {
	case res := <-s.outcome:
		return res.code, res.err
	case <-ctx.Done():
		return "", fmt.Errorf("waiting for authorisation callback: %w", ctx.Err())
	}
}

// Stop shuts the listener down. Repeated calls return the first result.
func (s *CallbackServer) Stop() error {
	s.stopOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.stopErr = s.srv.Shutdown(ctx)
	})
	return s.stopErr
}

// Port returns the bound port.
func (s *CallbackServer) Port() int {
	return s.port
}

// RedirectURI is the value to register with the provider for this run.
func (s *CallbackServer) RedirectURI() string {
	return fmt.Sprintf("http://127.0.0.1:%d%s", s.port, CallbackPath)
}

type resultPage struct {
	Title   string
	Message string
}

var pageTemplate = template.Must(template.New("result").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>MarketForge</title>
<style>
body { font-family: system-ui, sans-serif; display: grid; place-items: center; height: 100vh; margin: 0; background: #FAFAFA; }
main { text-align: center; background: #FFF; padding: 48px 64px; border: 1px solid #DDD; border-radius: 16px; }
h1 { color: #7D56F4; margin: 0 0 8px; font-size: 24px; }
p { color: #666; margin: 0; }
</style>
</head>
<body><main><h1>{{.Title}}</h1><p>{{.Message}}</p></main></body>
</html>
`))

// RandomState returns a 32-character URL-safe state parameter.
func RandomState() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
