package token

import (
	"net/http"
	"strings"

	"github.com/authzkit/authzkit/pkg/authz"
	"github.com/authzkit/authzkit/pkg/scopes"
)

// TokenExtractorFunc extracts a token string from an HTTP request.
type TokenExtractorFunc func(r *http.Request) (string, error)

// SkipFunc determines whether to skip token validation for a request.
type SkipFunc func(r *http.Request) bool

// MiddlewareConfig configures token middleware behavior.
type MiddlewareConfig struct {
	Service   *Service           // token service for verification
	Extractor TokenExtractorFunc // token extraction strategy (defaults to Bearer)
	Skip      SkipFunc           // optional request filter to bypass validation
}

// Middleware verifies the bearer token on each request, parses the scp
// claim into scope directives, and injects both the directives and the
// token subject into the request context for downstream evaluation.
func Middleware(service *Service) func(next http.Handler) http.Handler {
	return MiddlewareWithConfig(MiddlewareConfig{
		Service:   service,
		Extractor: BearerTokenExtractor,
	})
}

// MiddlewareWithConfig creates token middleware with custom configuration.
func MiddlewareWithConfig(config MiddlewareConfig) func(next http.Handler) http.Handler {
	if config.Extractor == nil {
		config.Extractor = BearerTokenExtractor
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if config.Skip != nil && config.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			tokenString, err := config.Extractor(r)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := config.Service.Verify(tokenString)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			// A tampered or malformed scp claim fails the whole request;
			// proceeding with a partial directive set would widen access.
			directives, err := scopes.ParseAll(claims.Scopes)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := r.Context()
			ctx = SetSubject(ctx, claims.Subject)
			ctx = authz.SetDirectivesToContext(ctx, directives)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerTokenExtractor extracts tokens from "Authorization: Bearer <token>"
// headers per RFC 6750.
func BearerTokenExtractor(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrInvalidToken
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", ErrInvalidToken
	}

	return parts[1], nil
}

// HeaderTokenExtractor creates a token extractor for custom headers.
func HeaderTokenExtractor(headerName string) TokenExtractorFunc {
	return func(r *http.Request) (string, error) {
		token := r.Header.Get(headerName)
		if token == "" {
			return "", ErrInvalidToken
		}
		return token, nil
	}
}

// QueryTokenExtractor creates a token extractor for URL query parameters.
// Generally discouraged due to token exposure in logs and referrer headers.
func QueryTokenExtractor(paramName string) TokenExtractorFunc {
	return func(r *http.Request) (string, error) {
		token := r.URL.Query().Get(paramName)
		if token == "" {
			return "", ErrInvalidToken
		}
		return token, nil
	}
}
