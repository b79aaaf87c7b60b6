package auth

// Authenticator verifies access tokens issued by the hosted auth service.
type Authenticator interface {
	ValidateAccessToken(token string) (*Claims, error)
}
