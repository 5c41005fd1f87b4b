// Package common contains shared constants, sentinel errors and small
// helpers used across credvault components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on inbound requests.
const AccessTokenHeaderName = "access_token"

// Username bounds enforced on signup.
const (
	MinUserNameLength = 3
	MaxUserNameLength = 20
)
