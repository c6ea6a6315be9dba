package common

const (
	// AuthorizationHeaderName carries the bearer credential on inbound requests.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix must precede the token inside the authorization header.
	BearerPrefix = "Bearer "
)
