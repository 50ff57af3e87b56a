// Package client connects the command-line tool to the FitMint gRPC
// service. It attaches the access token to outgoing calls and turns
// business failures back into the sentinel errors of package common.
package client
