package scopes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/authzkit/authzkit/pkg/scopes"
)

func TestParse(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    string
		expected scopes.Directive
		wantErr  error
	}{
		{
			name:     "allow directive",
			input:    "allow:api:iam:users:read",
			expected: scopes.Directive{Type: scopes.Allow, Pattern: "api:iam:users:read"},
		},
		{
			name:     "deny directive",
			input:    "deny:api:auth:apikeys:revoke",
			expected: scopes.Directive{Type: scopes.Deny, Pattern: "api:auth:apikeys:revoke"},
		},
		{
			name:     "single wildcard segment",
			input:    "allow:api:iam:users:*",
			expected: scopes.Directive{Type: scopes.Allow, Pattern: "api:iam:users:*"},
		},
		{
			name:     "trailing subtree wildcard",
			input:    "allow:api:**",
			expected: scopes.Directive{Type: scopes.Allow, Pattern: "api:**"},
		},
		{
			name:     "case-insensitive type keyword",
			input:    "ALLOW:api:iam",
			expected: scopes.Directive{Type: scopes.Allow, Pattern: "api:iam"},
		},
		{
			name:     "pattern is case-normalized",
			input:    "allow:API:IAM:Users",
			expected: scopes.Directive{Type: scopes.Allow, Pattern: "api:iam:users"},
		},
		{
			name:     "empty segments collapsed",
			input:    "allow:api::iam: :users",
			expected: scopes.Directive{Type: scopes.Allow, Pattern: "api:iam:users"},
		},
		{
			name:     "surrounding whitespace trimmed",
			input:    "  allow:api:iam  ",
			expected: scopes.Directive{Type: scopes.Allow, Pattern: "api:iam"},
		},
		{
			name:    "unknown type keyword",
			input:   "grant:api:iam:users",
			wantErr: scopes.ErrUnknownDirectiveType,
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: scopes.ErrUnknownDirectiveType,
		},
		{
			name:    "type without pattern",
			input:   "allow",
			wantErr: scopes.ErrEmptyPattern,
		},
		{
			name:    "type with empty pattern",
			input:   "deny: : :",
			wantErr: scopes.ErrEmptyPattern,
		},
		{
			name:    "misplaced subtree wildcard",
			input:   "allow:api:**:read",
			wantErr: scopes.ErrMisplacedWildcard,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d, err := scopes.Parse(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, d)
		})
	}
}

func TestDirectiveString(t *testing.T) {
	t.Parallel()

	t.Run("round-trips through Parse", func(t *testing.T) {
		t.Parallel()
		original := "deny:api:iam:users:*"
		d, err := scopes.Parse(original)
		require.NoError(t, err)
		assert.Equal(t, original, d.String())

		again, err := scopes.Parse(d.String())
		require.NoError(t, err)
		assert.True(t, d.Equal(again))
	})
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("rejects invalid type", func(t *testing.T) {
		t.Parallel()
		_, err := scopes.New(scopes.DirectiveType("block"), "api:iam")
		assert.ErrorIs(t, err, scopes.ErrUnknownDirectiveType)
	})

	t.Run("canonicalizes pattern", func(t *testing.T) {
		t.Parallel()
		d, err := scopes.New(scopes.Allow, " API :: IAM ")
		require.NoError(t, err)
		assert.Equal(t, "api:iam", d.Pattern)
	})
}

func TestMustParse(t *testing.T) {
	t.Parallel()

	t.Run("panics on malformed input", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { scopes.MustParse("nope:api") })
	})

	t.Run("returns directive for valid input", func(t *testing.T) {
		t.Parallel()
		d := scopes.MustParse("allow:api:iam")
		assert.Equal(t, scopes.Allow, d.Type)
	})
}

func TestParseAll(t *testing.T) {
	t.Parallel()

	t.Run("parses list preserving order", func(t *testing.T) {
		t.Parallel()
		ds, err := scopes.ParseAll([]string{
			"allow:api:iam:users:*",
			"deny:api:iam:users:42",
		})
		require.NoError(t, err)
		require.Len(t, ds, 2)
		assert.Equal(t, scopes.Allow, ds[0].Type)
		assert.Equal(t, scopes.Deny, ds[1].Type)
	})

	t.Run("skips blank entries", func(t *testing.T) {
		t.Parallel()
		ds, err := scopes.ParseAll([]string{"", "  ", "allow:api"})
		require.NoError(t, err)
		assert.Len(t, ds, 1)
	})

	t.Run("fails on first malformed entry", func(t *testing.T) {
		t.Parallel()
		_, err := scopes.ParseAll([]string{"allow:api", "bogus"})
		assert.ErrorIs(t, err, scopes.ErrUnknownDirectiveType)
	})

	t.Run("nil input yields nil", func(t *testing.T) {
		t.Parallel()
		ds, err := scopes.ParseAll(nil)
		require.NoError(t, err)
		assert.Nil(t, ds)
	})
}

func TestStrings(t *testing.T) {
	t.Parallel()

	ds := []scopes.Directive{
		scopes.MustParse("allow:api:iam:users:read"),
		scopes.MustParse("deny:api:iam:users:42:write"),
	}
	assert.Equal(t, []string{
		"allow:api:iam:users:read",
		"deny:api:iam:users:42:write",
	}, scopes.Strings(ds))

	assert.Nil(t, scopes.Strings(nil))
}

func TestEqualDirectives(t *testing.T) {
	t.Parallel()

	a := []scopes.Directive{scopes.MustParse("allow:api:iam")}
	b := []scopes.Directive{scopes.MustParse("allow:api:iam")}
	c := []scopes.Directive{scopes.MustParse("deny:api:iam")}

	assert.True(t, scopes.EqualDirectives(a, b))
	assert.False(t, scopes.EqualDirectives(a, c))
	assert.False(t, scopes.EqualDirectives(a, nil))
}
