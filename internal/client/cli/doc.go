// Package cli implements the fitmint command-line client.
//
// Each invocation runs a single command against the gRPC service and
// prints the response as JSON: indented on a terminal, compact otherwise.
// The token command works offline and mints a development access token
// with the configured secret key.
package cli
