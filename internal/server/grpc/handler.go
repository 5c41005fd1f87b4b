package grpc

import (
	"context"

	"github.com/dmitrijs2005/credvault/internal/rpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) Signup(ctx context.Context, req *rpc.SignupRequest) (*rpc.SignupResponse, error) {
	s.logger.Info(ctx, "Signup request")

	account, apiKey, err := s.accounts.Signup(ctx, req.Username, req.Password)
	if err != nil {
		return nil, mapError(err)
	}

	s.logger.Info(ctx, "Signed up", "account_id", account.ID)
	return &rpc.SignupResponse{Name: account.UserName, APIKey: apiKey}, nil
}

func (s *GRPCServer) ChangePassword(ctx context.Context, req *rpc.ChangePasswordRequest) (*rpc.ChangePasswordResponse, error) {
	account, err := s.accounts.ChangePassword(ctx, req.Username, req.Password, req.NewPassword)
	if err != nil {
		return nil, mapError(err)
	}

	return &rpc.ChangePasswordResponse{Name: account.UserName}, nil
}

func (s *GRPCServer) GetKey(ctx context.Context, req *rpc.KeyRequest) (*rpc.KeyResponse, error) {
	account, apiKey, err := s.accounts.GetKey(ctx, req.Username, req.Password)
	if err != nil {
		return nil, mapError(err)
	}

	return &rpc.KeyResponse{Name: account.UserName, APIKey: apiKey}, nil
}

func (s *GRPCServer) NewKey(ctx context.Context, req *rpc.KeyRequest) (*rpc.KeyResponse, error) {
	account, apiKey, err := s.accounts.NewKey(ctx, req.Username, req.Password)
	if err != nil {
		return nil, mapError(err)
	}

	return &rpc.KeyResponse{Name: account.UserName, APIKey: apiKey}, nil
}

func (s *GRPCServer) Authenticate(ctx context.Context, req *rpc.AuthenticateRequest) (*rpc.AuthenticateResponse, error) {
	token, err := s.accounts.Authenticate(ctx, req.Username, req.APIKey)
	if err != nil {
		return nil, mapError(err)
	}

	return &rpc.AuthenticateResponse{AccessToken: token.Token, ExpiresAt: token.ExpiresAt}, nil
}

func (s *GRPCServer) WhoAmI(ctx context.Context, _ *rpc.WhoAmIRequest) (*rpc.WhoAmIResponse, error) {
	accountID, ok := accountIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	account, err := s.accounts.WhoAmI(ctx, accountID)
	if err != nil {
		return nil, mapError(err)
	}

	return &rpc.WhoAmIResponse{AccountID: account.ID, Name: account.UserName, CreatedAt: account.CreatedAt}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, _ *rpc.PingRequest) (*rpc.PingResponse, error) {
	return &rpc.PingResponse{Status: "OK"}, nil
}
