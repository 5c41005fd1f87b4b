// Package credtool implements the credtool command-line utility.
//
// Local commands work on serialized values directly:
//   - suites: list registered password and token suites
//   - hash / verify: create and check password records
//   - generate / seal / open / check: mint, seal, unseal and check API tokens
//
// Remote commands talk to a credvault server over gRPC:
// signup, getkey, newkey, passwd, auth and whoami.
//
// Secrets are taken from flags when given and otherwise read from the
// terminal without echo.
package credtool
