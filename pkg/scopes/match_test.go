package scopes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/authzkit/authzkit/pkg/scopes"
)

func TestMatches(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		pattern string
		target  string
		matches bool
	}{
		{
			name:    "exact match",
			pattern: "api:iam:users:read",
			target:  "api:iam:users:read",
			matches: true,
		},
		{
			name:    "case-insensitive literals",
			pattern: "api:IAM:Users:read",
			target:  "API:iam:users:READ",
			matches: true,
		},
		{
			name:    "single wildcard matches one segment",
			pattern: "api:iam:*:read",
			target:  "api:iam:users:read",
			matches: true,
		},
		{
			name:    "single wildcard does not change other segments",
			pattern: "api:iam:*:read",
			target:  "api:iam:users:write",
			matches: false,
		},
		{
			name:    "single wildcard matches exactly one segment",
			pattern: "api:iam:*:read",
			target:  "api:iam:users:42:read",
			matches: false,
		},
		{
			name:    "subtree wildcard matches deep paths",
			pattern: "api:**",
			target:  "api:iam:users:5f3:read",
			matches: true,
		},
		{
			name:    "subtree wildcard matches zero segments",
			pattern: "api:iam:**",
			target:  "api:iam",
			matches: true,
		},
		{
			name:    "length mismatch without subtree wildcard",
			pattern: "api:iam:users:5f3",
			target:  "api:iam:users",
			matches: false,
		},
		{
			name:    "pattern shorter than target",
			pattern: "api:iam",
			target:  "api:iam:users",
			matches: false,
		},
		{
			name:    "pattern longer than target",
			pattern: "api:iam:users:read",
			target:  "api:iam:users",
			matches: false,
		},
		{
			name:    "lone subtree wildcard matches everything",
			pattern: "**",
			target:  "api:auth:apikeys:revoke",
			matches: true,
		},
		{
			name:    "empty pattern never matches",
			pattern: "",
			target:  "api:iam",
			matches: false,
		},
		{
			name:    "empty target never matches",
			pattern: "api:iam",
			target:  "",
			matches: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.matches, scopes.Matches(tt.pattern, tt.target))
		})
	}
}

func TestSpecificity(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		pattern string
		target  string
		score   int
		matches bool
	}{
		{
			name:    "all literal segments count",
			pattern: "api:iam:users:read",
			target:  "api:iam:users:read",
			score:   4,
			matches: true,
		},
		{
			name:    "wildcard segment does not count",
			pattern: "api:iam:*:read",
			target:  "api:iam:users:read",
			score:   3,
			matches: true,
		},
		{
			name:    "subtree wildcard counts only preceding literals",
			pattern: "api:iam:**",
			target:  "api:iam:users:5f3:read",
			score:   2,
			matches: true,
		},
		{
			name:    "more specific pattern scores higher",
			pattern: "api:iam:users",
			target:  "api:iam:users",
			score:   3,
			matches: true,
		},
		{
			name:    "broad wildcard scores low",
			pattern: "api:iam:*",
			target:  "api:iam:users",
			score:   2,
			matches: true,
		},
		{
			name:    "failed match has no score",
			pattern: "api:billing:**",
			target:  "api:iam:users",
			score:   0,
			matches: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			score, ok := scopes.Specificity(tt.pattern, tt.target)
			assert.Equal(t, tt.matches, ok)
			assert.Equal(t, tt.score, score)
		})
	}
}

func TestMatchesAny(t *testing.T) {
	t.Parallel()

	directives := []scopes.Directive{
		scopes.MustParse("allow:api:iam:users:*"),
		scopes.MustParse("deny:api:auth:**"),
	}

	assert.True(t, scopes.MatchesAny(directives, "api:iam:users:read"))
	assert.True(t, scopes.MatchesAny(directives, "api:auth:apikeys:revoke"))
	assert.False(t, scopes.MatchesAny(directives, "api:billing:invoices"))
	assert.False(t, scopes.MatchesAny(nil, "api:iam"))
}
