// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/reelscout/internal/api"
	"github.com/tomtom215/reelscout/internal/catalog"
	"github.com/tomtom215/reelscout/internal/recommend"
)

var _ suture.Service = (*HTTPServerService)(nil)

// syncBuffer collects log lines written from the Serve goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// freeAddr reserves a loopback port and releases it for the server under test.
func freeAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	if err := ln.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	return addr
}

// newAPIServer builds an http.Server around the reelscout router with an
// empty catalog and no favorites store.
func newAPIServer(t *testing.T, addr string) *http.Server {
	t.Helper()
	engine, err := recommend.NewEngine(nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	access := &api.CatalogAccess{Store: catalog.NewStore(), Genres: catalog.NewGenreIndex()}
	handler := api.NewHandler(access, nil, nil, nil)
	recs := api.NewRecommendHandler(engine, access, nil, nil)
	mw := api.NewChiMiddleware(&api.ChiMiddlewareConfig{RateLimitDisabled: true})
	return &http.Server{
		Addr:              addr,
		Handler:           api.NewRouter(handler, recs, mw).SetupChi(),
		ReadHeaderTimeout: time.Second,
	}
}

func getWithRetry(t *testing.T, url string) *http.Response {
	t.Helper()
	client := &http.Client{Timeout: time.Second}
	deadline := time.Now().Add(2 * time.Second)
	for {
		resp, err := client.Get(url)
		if err == nil {
			return resp
		}
		if time.Now().After(deadline) {
			t.Fatalf("GET %s: %v", url, err)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestNewHTTPServerService_Timeout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   time.Duration
		want time.Duration
	}{
		{"explicit", 3 * time.Second, 3 * time.Second},
		{"zero uses default", 0, defaultShutdownTimeout},
		{"negative uses default", -time.Second, defaultShutdownTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := NewHTTPServerService(newAPIServer(t, "127.0.0.1:0"), tt.in, zerolog.Nop())
			if svc.shutdownTimeout != tt.want {
				t.Errorf("shutdownTimeout = %v, want %v", svc.shutdownTimeout, tt.want)
			}
			if svc.String() != "http-server" {
				t.Errorf("String() = %q, want http-server", svc.String())
			}
		})
	}
}

func TestHTTPServerService_ServesRouter(t *testing.T) {
	addr := freeAddr(t)
	logs := &syncBuffer{}
	svc := NewHTTPServerService(newAPIServer(t, addr), 2*time.Second, zerolog.New(logs))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	resp := getWithRetry(t, fmt.Sprintf("http://%s/api/v1/health/live", addr))
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, body)
	}
	if !strings.Contains(string(body), `"alive":true`) {
		t.Errorf("body = %s, want alive", body)
	}

	cancel()
	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Serve did not return after cancellation")
	}

	// The listener is gone after a graceful shutdown.
	if conn, err := net.DialTimeout("tcp", addr, 200*time.Millisecond); err == nil {
		_ = conn.Close()
		t.Error("server still accepting connections after shutdown")
	}

	out := logs.String()
	for _, want := range []string{
		`"service":"http"`,
		`"addr":"` + addr + `"`,
		`"message":"http server listening"`,
		`"message":"http server shutting down"`,
		`"timeout":2000`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("logs missing %s:\n%s", want, out)
		}
	}
}

func TestHTTPServerService_BindFailure(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	svc := NewHTTPServerService(newAPIServer(t, ln.Addr().String()), time.Second, zerolog.Nop())
	err = svc.Serve(context.Background())
	if err == nil || !strings.Contains(err.Error(), "http server failed") {
		t.Fatalf("Serve() = %v, want a wrapped bind error", err)
	}
}

// stuckServer blocks until Shutdown and then reports a failed drain.
type stuckServer struct {
	started chan struct{}
	stop    chan struct{}
	once    sync.Once
}

func (s *stuckServer) ListenAndServe() error {
	close(s.started)
	<-s.stop
	return http.ErrServerClosed
}

func (s *stuckServer) Shutdown(context.Context) error {
	s.once.Do(func() { close(s.stop) })
	return context.DeadlineExceeded
}

func TestHTTPServerService_ShutdownFailure(t *testing.T) {
	t.Parallel()

	server := &stuckServer{started: make(chan struct{}), stop: make(chan struct{})}
	svc := NewHTTPServerService(server, 50*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	<-server.started
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("Serve() = %v, want wrapped DeadlineExceeded", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return")
	}
}
