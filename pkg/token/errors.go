package token

import "errors"

var (
	ErrInvalidToken            = errors.New("token: invalid token")
	ErrExpiredToken            = errors.New("token: token is expired")
	ErrMissingSigningKey       = errors.New("token: missing signing key")
	ErrMissingClaims           = errors.New("token: missing claims")
	ErrMissingSubject          = errors.New("token: missing subject")
	ErrInvalidSignature        = errors.New("token: invalid signature")
	ErrUnexpectedSigningMethod = errors.New("token: unexpected signing method")
)
