// Package grpc exposes the account service over gRPC.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/credvault/internal/logging"
	"github.com/dmitrijs2005/credvault/internal/rpc"
	"github.com/dmitrijs2005/credvault/internal/server/models"
	"github.com/dmitrijs2005/credvault/internal/server/services"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// AccountService is the business layer the handlers call into.
type AccountService interface {
	Signup(ctx context.Context, username, password string) (*models.Account, string, error)
	ChangePassword(ctx context.Context, username, password, newPassword string) (*models.Account, error)
	GetKey(ctx context.Context, username, password string) (*models.Account, string, error)
	NewKey(ctx context.Context, username, password string) (*models.Account, string, error)
	Authenticate(ctx context.Context, username, apiKey string) (*services.AccessToken, error)
	WhoAmI(ctx context.Context, accountID string) (*models.Account, error)
}

type GRPCServer struct {
	rpc.UnimplementedAccountServiceServer
	address   string
	accounts  AccountService
	logger    logging.Logger
	jwtSecret []byte
	health    *health.Server
}

func NewGRPCServer(a string, l logging.Logger, as AccountService, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		accounts:  as,
		jwtSecret: []byte(secretKey),
		health:    health.NewServer(),
	}
}

// newServer builds a grpc.Server with the interceptor chain and both the
// account and health services registered.
func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))

	rpc.RegisterAccountServiceServer(srv, s)
	healthpb.RegisterHealthServer(srv, s.health)
	s.health.SetServingStatus(rpc.ServiceName, healthpb.HealthCheckResponse_SERVING)

	return srv
}

// Run serves on the configured address until ctx is done, then stops
// gracefully.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve is Run on an existing listener.
func (s *GRPCServer) Serve(ctx context.Context, listen net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
