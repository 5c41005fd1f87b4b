package grpc

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/credvault/internal/common"
	"github.com/dmitrijs2005/credvault/internal/logging"
	"github.com/dmitrijs2005/credvault/internal/rpc"
	"github.com/dmitrijs2005/credvault/internal/server/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// helper to build server
func newTestServer(secret string) *GRPCServer {
	return NewGRPCServer("", logging.NewNopLogger(), &fakeAccounts{}, secret)
}

func withToken(token string) context.Context {
	md := metadata.New(map[string]string{common.AccessTokenHeaderName: token})
	return metadata.NewIncomingContext(context.Background(), md)
}

var whoAmIInfo = &grpc.UnaryServerInfo{FullMethod: rpc.AccountService_WhoAmI_FullMethodName}

func TestInterceptor_PublicMethod_AllowsWithoutToken(t *testing.T) {
	s := newTestServer("secret")

	info := &grpc.UnaryServerInfo{FullMethod: rpc.AccountService_Signup_FullMethodName}
	handlerCalled := false

	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		handlerCalled = true
		return "ok", nil
	}

	resp, err := s.accessTokenInterceptor(context.Background(), nil, info, h)
	require.NoError(t, err)
	assert.True(t, handlerCalled)
	assert.Equal(t, "ok", resp)
}

func TestInterceptor_Protected_MissingToken(t *testing.T) {
	s := newTestServer("secret")

	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		t.Fatal("handler should not be called when token missing")
		return nil, nil
	}

	_, err := s.accessTokenInterceptor(context.Background(), nil, whoAmIInfo, h)
	require.Error(t, err)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
	assert.Equal(t, "missing token", status.Convert(err).Message())
}

func TestInterceptor_Protected_InvalidToken(t *testing.T) {
	s := newTestServer("secret")

	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		t.Fatal("handler should not be called for invalid token")
		return nil, nil
	}

	_, err := s.accessTokenInterceptor(withToken("not-a-valid-jwt"), nil, whoAmIInfo, h)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
	assert.Equal(t, common.ErrInvalidToken.Error(), status.Convert(err).Message())
}

func TestInterceptor_Protected_ExpiredToken(t *testing.T) {
	s := newTestServer("secret")

	token, _, err := auth.GenerateToken("acc-1", "alice", []byte("secret"), -time.Minute)
	require.NoError(t, err)

	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		t.Fatal("handler should not be called for expired token")
		return nil, nil
	}

	_, err = s.accessTokenInterceptor(withToken(token), nil, whoAmIInfo, h)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
	assert.Equal(t, common.ErrTokenExpired.Error(), status.Convert(err).Message())
}

func TestInterceptor_Protected_ValidToken_SetsAccountID(t *testing.T) {
	secret := "super-secret"
	s := newTestServer(secret)

	token, _, err := auth.GenerateToken("acc-123", "alice", []byte(secret), time.Hour)
	require.NoError(t, err)

	var gotFromCtx any
	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		gotFromCtx = ctx.Value(AccountIDKey)
		return "ok", nil
	}

	resp, err := s.accessTokenInterceptor(withToken(token), nil, whoAmIInfo, h)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp)
	assert.Equal(t, "acc-123", gotFromCtx)
}

func TestLoggingInterceptor_PassesThrough(t *testing.T) {
	s := newTestServer("secret")

	_, err := s.loggingInterceptor(context.Background(), nil, whoAmIInfo, func(ctx context.Context, req interface{}) (interface{}, error) {
		return nil, status.Error(codes.Internal, "x")
	})
	assert.Equal(t, codes.Internal, status.Code(err))

	resp, err := s.loggingInterceptor(context.Background(), nil, whoAmIInfo, func(ctx context.Context, req interface{}) (interface{}, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, resp)
}
