package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/dynamicpb"
)

// AccountServiceClient is the client side of AccountService.
type AccountServiceClient interface {
	Signup(ctx context.Context, in *SignupRequest, opts ...grpc.CallOption) (*SignupResponse, error)
	ChangePassword(ctx context.Context, in *ChangePasswordRequest, opts ...grpc.CallOption) (*ChangePasswordResponse, error)
	GetKey(ctx context.Context, in *KeyRequest, opts ...grpc.CallOption) (*KeyResponse, error)
	NewKey(ctx context.Context, in *KeyRequest, opts ...grpc.CallOption) (*KeyResponse, error)
	Authenticate(ctx context.Context, in *AuthenticateRequest, opts ...grpc.CallOption) (*AuthenticateResponse, error)
	WhoAmI(ctx context.Context, in *WhoAmIRequest, opts ...grpc.CallOption) (*WhoAmIResponse, error)
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
}

type accountServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewAccountServiceClient(cc grpc.ClientConnInterface) AccountServiceClient {
	return &accountServiceClient{cc: cc}
}

func invoke[Req, Resp any, PReq msgPtr[Req], PResp msgPtr[Resp]](ctx context.Context, cc grpc.ClientConnInterface, method string, in *Req, opts []grpc.CallOption) (*Resp, error) {
	if in == nil {
		in = new(Req)
	}
	out := new(Resp)
	wire := dynamicpb.NewMessage(PResp(out).descriptor())
	if err := cc.Invoke(ctx, method, toProto(PReq(in)), wire, opts...); err != nil {
		return nil, err
	}
	PResp(out).unmarshalProto(wire)
	return out, nil
}

func (c *accountServiceClient) Signup(ctx context.Context, in *SignupRequest, opts ...grpc.CallOption) (*SignupResponse, error) {
	return invoke[SignupRequest, SignupResponse](ctx, c.cc, AccountService_Signup_FullMethodName, in, opts)
}

func (c *accountServiceClient) ChangePassword(ctx context.Context, in *ChangePasswordRequest, opts ...grpc.CallOption) (*ChangePasswordResponse, error) {
	return invoke[ChangePasswordRequest, ChangePasswordResponse](ctx, c.cc, AccountService_ChangePassword_FullMethodName, in, opts)
}

func (c *accountServiceClient) GetKey(ctx context.Context, in *KeyRequest, opts ...grpc.CallOption) (*KeyResponse, error) {
	return invoke[KeyRequest, KeyResponse](ctx, c.cc, AccountService_GetKey_FullMethodName, in, opts)
}

func (c *accountServiceClient) NewKey(ctx context.Context, in *KeyRequest, opts ...grpc.CallOption) (*KeyResponse, error) {
	return invoke[KeyRequest, KeyResponse](ctx, c.cc, AccountService_NewKey_FullMethodName, in, opts)
}

func (c *accountServiceClient) Authenticate(ctx context.Context, in *AuthenticateRequest, opts ...grpc.CallOption) (*AuthenticateResponse, error) {
	return invoke[AuthenticateRequest, AuthenticateResponse](ctx, c.cc, AccountService_Authenticate_FullMethodName, in, opts)
}

func (c *accountServiceClient) WhoAmI(ctx context.Context, in *WhoAmIRequest, opts ...grpc.CallOption) (*WhoAmIResponse, error) {
	return invoke[WhoAmIRequest, WhoAmIResponse](ctx, c.cc, AccountService_WhoAmI_FullMethodName, in, opts)
}

func (c *accountServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingRequest, PingResponse](ctx, c.cc, AccountService_Ping_FullMethodName, in, opts)
}
