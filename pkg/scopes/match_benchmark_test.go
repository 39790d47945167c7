package scopes_test

import (
	"testing"

	"github.com/authzkit/authzkit/pkg/scopes"
)

func BenchmarkParse(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = scopes.Parse("allow:api:iam:users:5f3:write")
	}
}

func BenchmarkMatches(b *testing.B) {
	b.Run("exact", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			scopes.Matches("api:iam:users:read", "api:iam:users:read")
		}
	})

	b.Run("single wildcard", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			scopes.Matches("api:iam:*:read", "api:iam:users:read")
		}
	})

	b.Run("subtree wildcard", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			scopes.Matches("api:**", "api:iam:users:5f3:read")
		}
	})

	b.Run("miss", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			scopes.Matches("api:billing:**", "api:iam:users:read")
		}
	})
}
