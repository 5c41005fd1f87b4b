package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/dynamicpb"
)

const ServiceName = "credvault.AccountService"

const (
	AccountService_Signup_FullMethodName         = "/" + ServiceName + "/Signup"
	AccountService_ChangePassword_FullMethodName = "/" + ServiceName + "/ChangePassword"
	AccountService_GetKey_FullMethodName         = "/" + ServiceName + "/GetKey"
	AccountService_NewKey_FullMethodName         = "/" + ServiceName + "/NewKey"
	AccountService_Authenticate_FullMethodName   = "/" + ServiceName + "/Authenticate"
	AccountService_WhoAmI_FullMethodName         = "/" + ServiceName + "/WhoAmI"
	AccountService_Ping_FullMethodName           = "/" + ServiceName + "/Ping"
)

// AccountServiceServer is implemented by the gRPC transport.
type AccountServiceServer interface {
	Signup(context.Context, *SignupRequest) (*SignupResponse, error)
	ChangePassword(context.Context, *ChangePasswordRequest) (*ChangePasswordResponse, error)
	GetKey(context.Context, *KeyRequest) (*KeyResponse, error)
	NewKey(context.Context, *KeyRequest) (*KeyResponse, error)
	Authenticate(context.Context, *AuthenticateRequest) (*AuthenticateResponse, error)
	WhoAmI(context.Context, *WhoAmIRequest) (*WhoAmIResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
}

// UnimplementedAccountServiceServer answers every method with
// codes.Unimplemented. Embed it to stay forward compatible.
type UnimplementedAccountServiceServer struct{}

func (UnimplementedAccountServiceServer) Signup(context.Context, *SignupRequest) (*SignupResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Signup not implemented")
}
func (UnimplementedAccountServiceServer) ChangePassword(context.Context, *ChangePasswordRequest) (*ChangePasswordResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ChangePassword not implemented")
}
func (UnimplementedAccountServiceServer) GetKey(context.Context, *KeyRequest) (*KeyResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetKey not implemented")
}
func (UnimplementedAccountServiceServer) NewKey(context.Context, *KeyRequest) (*KeyResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method NewKey not implemented")
}
func (UnimplementedAccountServiceServer) Authenticate(context.Context, *AuthenticateRequest) (*AuthenticateResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Authenticate not implemented")
}
func (UnimplementedAccountServiceServer) WhoAmI(context.Context, *WhoAmIRequest) (*WhoAmIResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method WhoAmI not implemented")
}
func (UnimplementedAccountServiceServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}

// unary adapts a typed server method to grpc.MethodHandler. The request is
// decoded from its protobuf form before the interceptor chain runs, so
// interceptors see typed requests; the response is converted back on return.
func unary[Req, Resp any, PReq msgPtr[Req], PResp msgPtr[Resp]](fullMethod string, call func(AccountServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		wire := dynamicpb.NewMessage(PReq(in).descriptor())
		if err := dec(wire); err != nil {
			return nil, err
		}
		PReq(in).unmarshalProto(wire)

		handler := func(ctx context.Context, req any) (any, error) {
			out, err := call(srv.(AccountServiceServer), ctx, req.(*Req))
			if err != nil {
				return nil, err
			}
			if out == nil {
				out = new(Resp)
			}
			return toProto(PResp(out)), nil
		}
		if interceptor == nil {
			return handler(ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		return interceptor(ctx, in, info, handler)
	}
}

// AccountService_ServiceDesc describes AccountService for grpc.Server.
var AccountService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AccountServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Signup", Handler: unary(AccountService_Signup_FullMethodName, AccountServiceServer.Signup)},
		{MethodName: "ChangePassword", Handler: unary(AccountService_ChangePassword_FullMethodName, AccountServiceServer.ChangePassword)},
		{MethodName: "GetKey", Handler: unary(AccountService_GetKey_FullMethodName, AccountServiceServer.GetKey)},
		{MethodName: "NewKey", Handler: unary(AccountService_NewKey_FullMethodName, AccountServiceServer.NewKey)},
		{MethodName: "Authenticate", Handler: unary(AccountService_Authenticate_FullMethodName, AccountServiceServer.Authenticate)},
		{MethodName: "WhoAmI", Handler: unary(AccountService_WhoAmI_FullMethodName, AccountServiceServer.WhoAmI)},
		{MethodName: "Ping", Handler: unary(AccountService_Ping_FullMethodName, AccountServiceServer.Ping)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: protoFileName,
}

func RegisterAccountServiceServer(s grpc.ServiceRegistrar, srv AccountServiceServer) {
	s.RegisterService(&AccountService_ServiceDesc, srv)
}
