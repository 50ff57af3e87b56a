// Package common contains shared constants and sentinel errors used across
// FitMint components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// ErrorDomain is the domain reported in google.rpc.ErrorInfo details.
const ErrorDomain = "fitmint"
