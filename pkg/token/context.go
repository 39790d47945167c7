package token

import "context"

type subjectCtxKey struct{}

// SetSubject stores the token subject in the context.
func SetSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectCtxKey{}, subject)
}

// GetSubject returns the token subject from the context.
// The second return value is false when no subject is set.
func GetSubject(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(subjectCtxKey{}).(string)
	return subject, ok
}
