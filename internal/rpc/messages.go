package rpc

import (
	"time"

	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/known/timestamppb"
)

var (
	signupRequestDesc          = messageDesc("SignupRequest")
	signupResponseDesc         = messageDesc("SignupResponse")
	changePasswordRequestDesc  = messageDesc("ChangePasswordRequest")
	changePasswordResponseDesc = messageDesc("ChangePasswordResponse")
	keyRequestDesc             = messageDesc("KeyRequest")
	keyResponseDesc            = messageDesc("KeyResponse")
	authenticateRequestDesc    = messageDesc("AuthenticateRequest")
	authenticateResponseDesc   = messageDesc("AuthenticateResponse")
	whoAmIRequestDesc          = messageDesc("WhoAmIRequest")
	whoAmIResponseDesc         = messageDesc("WhoAmIResponse")
	pingRequestDesc            = messageDesc("PingRequest")
	pingResponseDesc           = messageDesc("PingResponse")
)

func setString(m protoreflect.Message, name protoreflect.Name, v string) {
	if v == "" {
		return
	}
	m.Set(m.Descriptor().Fields().ByName(name), protoreflect.ValueOfString(v))
}

func getString(m protoreflect.Message, name protoreflect.Name) string {
	return m.Get(m.Descriptor().Fields().ByName(name)).String()
}

func setTime(m protoreflect.Message, name protoreflect.Name, t time.Time) {
	if t.IsZero() {
		return
	}
	m.Set(m.Descriptor().Fields().ByName(name), protoreflect.ValueOfMessage(timestamppb.New(t).ProtoReflect()))
}

// getTime reads a google.protobuf.Timestamp field; unset yields the zero time.
func getTime(m protoreflect.Message, name protoreflect.Name) time.Time {
	fd := m.Descriptor().Fields().ByName(name)
	if !m.Has(fd) {
		return time.Time{}
	}
	ts := m.Get(fd).Message()
	fields := ts.Descriptor().Fields()
	return time.Unix(ts.Get(fields.ByName("seconds")).Int(), ts.Get(fields.ByName("nanos")).Int()).UTC()
}

type SignupRequest struct {
	Username string
	Password string
}

func (*SignupRequest) descriptor() protoreflect.MessageDescriptor { return signupRequestDesc }

func (r *SignupRequest) marshalProto(m protoreflect.Message) {
	setString(m, "username", r.Username)
	setString(m, "password", r.Password)
}

func (r *SignupRequest) unmarshalProto(m protoreflect.Message) {
	r.Username = getString(m, "username")
	r.Password = getString(m, "password")
}

type SignupResponse struct {
	Name   string
	APIKey string
}

func (*SignupResponse) descriptor() protoreflect.MessageDescriptor { return signupResponseDesc }

func (r *SignupResponse) marshalProto(m protoreflect.Message) {
	setString(m, "name", r.Name)
	setString(m, "api_key", r.APIKey)
}

func (r *SignupResponse) unmarshalProto(m protoreflect.Message) {
	r.Name = getString(m, "name")
	r.APIKey = getString(m, "api_key")
}

type ChangePasswordRequest struct {
	Username    string
	Password    string
	NewPassword string
}

func (*ChangePasswordRequest) descriptor() protoreflect.MessageDescriptor {
	return changePasswordRequestDesc
}

func (r *ChangePasswordRequest) marshalProto(m protoreflect.Message) {
	setString(m, "username", r.Username)
	setString(m, "password", r.Password)
	setString(m, "new_password", r.NewPassword)
}

func (r *ChangePasswordRequest) unmarshalProto(m protoreflect.Message) {
	r.Username = getString(m, "username")
	r.Password = getString(m, "password")
	r.NewPassword = getString(m, "new_password")
}

type ChangePasswordResponse struct {
	Name string
}

func (*ChangePasswordResponse) descriptor() protoreflect.MessageDescriptor {
	return changePasswordResponseDesc
}

func (r *ChangePasswordResponse) marshalProto(m protoreflect.Message) {
	setString(m, "name", r.Name)
}

func (r *ChangePasswordResponse) unmarshalProto(m protoreflect.Message) {
	r.Name = getString(m, "name")
}

// KeyRequest is shared by GetKey and NewKey.
type KeyRequest struct {
	Username string
	Password string
}

func (*KeyRequest) descriptor() protoreflect.MessageDescriptor { return keyRequestDesc }

func (r *KeyRequest) marshalProto(m protoreflect.Message) {
	setString(m, "username", r.Username)
	setString(m, "password", r.Password)
}

func (r *KeyRequest) unmarshalProto(m protoreflect.Message) {
	r.Username = getString(m, "username")
	r.Password = getString(m, "password")
}

type KeyResponse struct {
	Name   string
	APIKey string
}

func (*KeyResponse) descriptor() protoreflect.MessageDescriptor { return keyResponseDesc }

func (r *KeyResponse) marshalProto(m protoreflect.Message) {
	setString(m, "name", r.Name)
	setString(m, "api_key", r.APIKey)
}

func (r *KeyResponse) unmarshalProto(m protoreflect.Message) {
	r.Name = getString(m, "name")
	r.APIKey = getString(m, "api_key")
}

type AuthenticateRequest struct {
	Username string
	APIKey   string
}

func (*AuthenticateRequest) descriptor() protoreflect.MessageDescriptor {
	return authenticateRequestDesc
}

func (r *AuthenticateRequest) marshalProto(m protoreflect.Message) {
	setString(m, "username", r.Username)
	setString(m, "api_key", r.APIKey)
}

func (r *AuthenticateRequest) unmarshalProto(m protoreflect.Message) {
	r.Username = getString(m, "username")
	r.APIKey = getString(m, "api_key")
}

type AuthenticateResponse struct {
	AccessToken string
	ExpiresAt   time.Time
}

func (*AuthenticateResponse) descriptor() protoreflect.MessageDescriptor {
	return authenticateResponseDesc
}

func (r *AuthenticateResponse) marshalProto(m protoreflect.Message) {
	setString(m, "access_token", r.AccessToken)
	setTime(m, "expires_at", r.ExpiresAt)
}

func (r *AuthenticateResponse) unmarshalProto(m protoreflect.Message) {
	r.AccessToken = getString(m, "access_token")
	r.ExpiresAt = getTime(m, "expires_at")
}

type WhoAmIRequest struct{}

func (*WhoAmIRequest) descriptor() protoreflect.MessageDescriptor { return whoAmIRequestDesc }
func (*WhoAmIRequest) marshalProto(protoreflect.Message) {}
func (*WhoAmIRequest) unmarshalProto(protoreflect.Message) {}

type WhoAmIResponse struct {
	AccountID string
	Name      string
	CreatedAt time.Time
}

func (*WhoAmIResponse) descriptor() protoreflect.MessageDescriptor { return whoAmIResponseDesc }

func (r *WhoAmIResponse) marshalProto(m protoreflect.Message) {
	setString(m, "account_id", r.AccountID)
	setString(m, "name", r.Name)
	setTime(m, "created_at", r.CreatedAt)
}

func (r *WhoAmIResponse) unmarshalProto(m protoreflect.Message) {
	r.AccountID = getString(m, "account_id")
	r.Name = getString(m, "name")
	r.CreatedAt = getTime(m, "created_at")
}

type PingRequest struct{}

func (*PingRequest) descriptor() protoreflect.MessageDescriptor { return pingRequestDesc }
func (*PingRequest) marshalProto(protoreflect.Message) {}
func (*PingRequest) unmarshalProto(protoreflect.Message) {}

type PingResponse struct {
	Status string
}

func (*PingResponse) descriptor() protoreflect.MessageDescriptor { return pingResponseDesc }

func (r *PingResponse) marshalProto(m protoreflect.Message) {
	setString(m, "status", r.Status)
}

func (r *PingResponse) unmarshalProto(m protoreflect.Message) {
	r.Status = getString(m, "status")
}
