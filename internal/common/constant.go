// Package common contains shared constants and sentinel errors used across
// Horios components.
package common

// AccessTokenHeaderName is the legacy gRPC metadata key that may carry a
// bare access token.
const AccessTokenHeaderName = "access_token"

// AuthorizationHeaderName carries "Bearer <token>" on inbound calls.
const AuthorizationHeaderName = "authorization"

// BearerPrefix is the scheme prefix expected in the authorization header.
const BearerPrefix = "Bearer "
