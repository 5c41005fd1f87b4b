// Package rpc defines the credvault AccountService wire contract: message
// types, the gRPC service descriptor and a client stub.
//
// Messages travel as protobuf. The schema is declared here as a
// FileDescriptorProto and loaded with protodesc, so the typed Go messages
// convert to and from dynamicpb values at the transport boundary and the
// default gRPC proto codec does the encoding.
package rpc

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

const (
	protoPackage  = "credvault"
	protoFileName = "credvault/account_service.proto"
	timestampType = ".google.protobuf.Timestamp"
)

// File is the descriptor of credvault/account_service.proto.
var File = mustLoadFile()

func mustLoadFile() protoreflect.FileDescriptor {
	fd, err := protodesc.NewFile(accountServiceProto(), protoregistry.GlobalFiles)
	if err != nil {
		panic(fmt.Sprintf("rpc: invalid %s: %v", protoFileName, err))
	}
	return fd
}

func stringField(name string, number int32) *descriptorpb.FieldDescriptorProto {
	return &descriptorpb.FieldDescriptorProto{
		Name:   proto.String(name),
		Number: proto.Int32(number),
		Label:  descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
		Type:   descriptorpb.FieldDescriptorProto_TYPE_STRING.Enum(),
	}
}

func timestampField(name string, number int32) *descriptorpb.FieldDescriptorProto {
	return &descriptorpb.FieldDescriptorProto{
		Name:     proto.String(name),
		Number:   proto.Int32(number),
		Label:    descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
		Type:     descriptorpb.FieldDescriptorProto_TYPE_MESSAGE.Enum(),
		TypeName: proto.String(timestampType),
	}
}

func messageType(name string, fields ...*descriptorpb.FieldDescriptorProto) *descriptorpb.DescriptorProto {
	return &descriptorpb.DescriptorProto{Name: proto.String(name), Field: fields}
}

func method(name, in, out string) *descriptorpb.MethodDescriptorProto {
	return &descriptorpb.MethodDescriptorProto{
		Name:       proto.String(name),
		InputType:  proto.String("." + protoPackage + "." + in),
		OutputType: proto.String("." + protoPackage + "." + out),
	}
}

func accountServiceProto() *descriptorpb.FileDescriptorProto {
	return &descriptorpb.FileDescriptorProto{
		Name:       proto.String(protoFileName),
		Package:    proto.String(protoPackage),
		Syntax:     proto.String("proto3"),
		Dependency: []string{timestamppb.File_google_protobuf_timestamp_proto.Path()},
		MessageType: []*descriptorpb.DescriptorProto{
			messageType("SignupRequest", stringField("username", 1), stringField("password", 2)),
			messageType("SignupResponse", stringField("name", 1), stringField("api_key", 2)),
			messageType("ChangePasswordRequest", stringField("username", 1), stringField("password", 2), stringField("new_password", 3)),
			messageType("ChangePasswordResponse", stringField("name", 1)),
			messageType("KeyRequest", stringField("username", 1), stringField("password", 2)),
			messageType("KeyResponse", stringField("name", 1), stringField("api_key", 2)),
			messageType("AuthenticateRequest", stringField("username", 1), stringField("api_key", 2)),
			messageType("AuthenticateResponse", stringField("access_token", 1), timestampField("expires_at", 2)),
			messageType("WhoAmIRequest"),
			messageType("WhoAmIResponse", stringField("account_id", 1), stringField("name", 2), timestampField("created_at", 3)),
			messageType("PingRequest"),
			messageType("PingResponse", stringField("status", 1)),
		},
		Service: []*descriptorpb.ServiceDescriptorProto{{
			Name: proto.String("AccountService"),
			Method: []*descriptorpb.MethodDescriptorProto{
				method("Signup", "SignupRequest", "SignupResponse"),
				method("ChangePassword", "ChangePasswordRequest", "ChangePasswordResponse"),
				method("GetKey", "KeyRequest", "KeyResponse"),
				method("NewKey", "KeyRequest", "KeyResponse"),
				method("Authenticate", "AuthenticateRequest", "AuthenticateResponse"),
				method("WhoAmI", "WhoAmIRequest", "WhoAmIResponse"),
				method("Ping", "PingRequest", "PingResponse"),
			},
		}},
	}
}

// message is implemented by every typed request and response.
type message interface {
	descriptor() protoreflect.MessageDescriptor
	marshalProto(m protoreflect.Message)
	unmarshalProto(m protoreflect.Message)
}

// msgPtr constrains a pointer to a typed message.
type msgPtr[T any] interface {
	*T
	message
}

func messageDesc(name protoreflect.Name) protoreflect.MessageDescriptor {
	md := File.Messages().ByName(name)
	if md == nil {
		panic(fmt.Sprintf("rpc: message %s missing from %s", name, protoFileName))
	}
	return md
}

// toProto converts a typed message into its wire form.
func toProto(v message) *dynamicpb.Message {
	m := dynamicpb.NewMessage(v.descriptor())
	v.marshalProto(m)
	return m
}
