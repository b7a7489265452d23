package grpc

import (
	"bytes"
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

func TestProbeSucceedsWhenServing(t *testing.T) {
	addr, server, stop := startHealthServer(t)
	defer stop()
	server.SetServing(true)

	if err := Probe(context.Background(), addr, 2*time.Second); err != nil {
		t.Fatalf("probe: %v", err)
	}
}

func TestWaitForHealthTransitionsToServing(t *testing.T) {
	addr, server, stop := startHealthServer(t)
	defer stop()

	conn := dialHealthServer(t, addr)
	defer conn.Close()

	go func() {
		time.Sleep(200 * time.Millisecond)
		server.SetServing(true)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var logs bytes.Buffer
	ctx = zerolog.New(&logs).Level(zerolog.DebugLevel).WithContext(ctx)
	if err := WaitForHealth(ctx, conn, ""); err != nil {
		t.Fatalf("wait for health after transition: %v", err)
	}
	if !strings.Contains(logs.String(), "waiting for gRPC health") {
		t.Fatalf("expected a logged wait before SERVING, got %q", logs.String())
	}
}

func TestProbeFailsWhileNotServing(t *testing.T) {
	addr, _, stop := startHealthServer(t)
	defer stop()

	if err := Probe(context.Background(), addr, 300*time.Millisecond); err == nil {
		t.Fatal("expected probe to time out")
	}
}

func TestProbeLogsWaitsToContextLogger(t *testing.T) {
	addr, _, stop := startHealthServer(t)
	defer stop()

	var logs bytes.Buffer
	ctx := zerolog.New(&logs).Level(zerolog.DebugLevel).WithContext(context.Background())
	if err := Probe(ctx, addr, 300*time.Millisecond); err == nil {
		t.Fatal("expected probe to time out")
	}
	if !strings.Contains(logs.String(), "NOT_SERVING") {
		t.Fatalf("expected NOT_SERVING wait in logs, got %q", logs.String())
	}
}

func TestWaitForHealthRejectsNilConn(t *testing.T) {
	t.Parallel()

	if err := WaitForHealth(context.Background(), nil, ""); err == nil {
		t.Fatal("expected nil connection error")
	}
}

func TestServeRejectsNilListener(t *testing.T) {
	t.Parallel()

	if err := NewHealthServer().Serve(context.Background(), nil); err == nil {
		t.Fatal("expected nil listener error")
	}
}

func startHealthServer(t *testing.T) (string, *HealthServer, func()) {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	server := NewHealthServer()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- server.Serve(ctx, listener)
	}()

	stop := func() {
		cancel()
		select {
		case err := <-done:
			if err != nil {
				t.Errorf("serve: %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Error("health server did not stop")
		}
	}
	return listener.Addr().String(), server, stop
}

func dialHealthServer(t *testing.T, addr string) *gogrpc.ClientConn {
	t.Helper()

	conn, err := gogrpc.NewClient(addr, gogrpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("dial health server: %v", err)
	}
	return conn
}
