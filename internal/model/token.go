package model

// Token error codes returned in the error envelope so clients can
// distinguish an expired token from a malformed one.
const (
	CodeTokenExpired = "TOKEN_EXPIRED"
	CodeTokenInvalid = "TOKEN_INVALID"
)
