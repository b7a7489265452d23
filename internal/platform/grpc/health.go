// Package grpc hosts the gRPC health probe that orchestrators use to check
// tasktrack processes, plus the client helpers that query it.
package grpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

// HealthServer serves grpc.health.v1 on a dedicated listener.
type HealthServer struct {
	server *gogrpc.Server
	health *health.Server
}

// NewHealthServer builds a health server that starts in NOT_SERVING.
func NewHealthServer() *HealthServer {
	server := gogrpc.NewServer(gogrpc.StatsHandler(otelgrpc.NewServerHandler()))
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(server, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	return &HealthServer{server: server, health: healthServer}
}

// SetServing flips the overall serving status.
func (s *HealthServer) SetServing(serving bool) {
	if s == nil {
		return
	}
	status := grpc_health_v1.HealthCheckResponse_NOT_SERVING
	if serving {
		status = grpc_health_v1.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", status)
}

// Serve accepts connections on listener until ctx ends.
func (s *HealthServer) Serve(ctx context.Context, listener net.Listener) error {
	if s == nil {
		return errors.New("health server is not configured")
	}
	if listener == nil {
		return errors.New("listener is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.server.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		s.health.Shutdown()
		s.server.GracefulStop()
		<-serveErr
		return nil
	case err := <-serveErr:
		if errors.Is(err, gogrpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve health: %w", err)
	}
}

// Probe dials addr and waits until the health check reports SERVING.
func Probe(ctx context.Context, addr string, timeout time.Duration) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	conn, err := gogrpc.NewClient(addr,
		gogrpc.WithTransportCredentials(insecure.NewCredentials()),
		gogrpc.WithStatsHandler(otelgrpc.NewClientHandler()),
	)
	if err != nil {
		return fmt.Errorf("dial health %s: %w", addr, err)
	}
	defer conn.Close()
	return WaitForHealth(ctx, conn, "")
}

// WaitForHealth blocks until the gRPC health check reports SERVING or the context ends.
// Each unsuccessful check is logged at debug level to the context logger.
func WaitForHealth(ctx context.Context, conn *gogrpc.ClientConn, service string) error {
	if conn == nil {
		return fmt.Errorf("gRPC connection is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	logger := zerolog.Ctx(ctx)
	healthClient := grpc_health_v1.NewHealthClient(conn)
	backoff := 100 * time.Millisecond
	for {
		callCtx, cancel := context.WithTimeout(ctx, time.Second)
		response, err := healthClient.Check(callCtx, &grpc_health_v1.HealthCheckRequest{Service: service})
		cancel()
		if err == nil && response.GetStatus() == grpc_health_v1.HealthCheckResponse_SERVING {
			return nil
		}
		if err != nil {
			logger.Debug().Err(err).Msg("waiting for gRPC health")
		} else {
			logger.Debug().Str("status", response.GetStatus().String()).Msg("waiting for gRPC health")
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("wait for gRPC health: %w", ctx.Err())
		case <-time.After(backoff):
		}

		if backoff < time.Second {
			backoff = min(backoff*2, time.Second)
		}
	}
}
