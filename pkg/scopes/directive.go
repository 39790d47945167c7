package scopes

import (
	"fmt"
	"strings"
)

const (
	// Separator delimits the segments of a permission path (e.g., "api:iam:users:read").
	Separator = ":"

	// SegmentWildcard matches exactly one path segment.
	SegmentWildcard = "*"

	// SubtreeWildcard matches the remainder of the path, any depth including
	// zero. It is only legal as the final segment of a pattern.
	SubtreeWildcard = "**"
)

// DirectiveType is the disposition of a scope directive. It is a closed
// two-value type rather than a boolean so call sites stay self-documenting.
type DirectiveType string

const (
	Allow DirectiveType = "allow"
	Deny  DirectiveType = "deny"
)

// Valid reports whether t is one of the known directive types.
func (t DirectiveType) Valid() bool {
	return t == Allow || t == Deny
}

// ParseDirectiveType parses a case-insensitive "allow"/"deny" keyword.
func ParseDirectiveType(raw string) (DirectiveType, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(Allow):
		return Allow, nil
	case string(Deny):
		return Deny, nil
	default:
		return "", ErrUnknownDirectiveType
	}
}

// Directive is the atomic allow/deny unit of the authorization engine: a
// disposition plus a concrete colon-segmented path pattern. Patterns may
// contain "*" segments and a trailing "**" segment; they never contain
// unresolved placeholders. A Directive is an immutable value; construct it
// via New or Parse so the pattern is always in canonical form.
type Directive struct {
	Type    DirectiveType
	Pattern string
}

// New constructs a directive from a type and a raw pattern, canonicalizing
// the pattern (trim, lowercase, collapse empty segments).
func New(t DirectiveType, pattern string) (Directive, error) {
	if !t.Valid() {
		return Directive{}, ErrUnknownDirectiveType
	}

	canonical, err := CanonicalPattern(pattern)
	if err != nil {
		return Directive{}, err
	}

	return Directive{Type: t, Pattern: canonical}, nil
}

// Parse parses the single-string token form of a directive, e.g.
// "allow:api:iam:users:*" or "deny:api:auth:apikeys:revoke". The first
// colon-delimited token is the type keyword; the remainder is the pattern.
func Parse(raw string) (Directive, error) {
	raw = strings.TrimSpace(raw)

	typeToken, pattern, found := strings.Cut(raw, Separator)
	if !found {
		if _, err := ParseDirectiveType(typeToken); err != nil {
			return Directive{}, err
		}
		return Directive{}, ErrEmptyPattern
	}

	t, err := ParseDirectiveType(typeToken)
	if err != nil {
		return Directive{}, err
	}

	return New(t, pattern)
}

// MustParse is Parse for statically known directive literals; it panics on
// malformed input so misconfigured policy constants fail at startup.
func MustParse(raw string) Directive {
	d, err := Parse(raw)
	if err != nil {
		panic(fmt.Sprintf("scopes: invalid directive %q: %v", raw, err))
	}
	return d
}

// String returns the canonical single-string token form, suitable for token
// claims and API payloads. Parse(d.String()) round-trips exactly.
func (d Directive) String() string {
	return string(d.Type) + Separator + d.Pattern
}

// Equal reports whether two directives have the same type and canonical
// pattern.
func (d Directive) Equal(other Directive) bool {
	return d.Type == other.Type && d.Pattern == other.Pattern
}

// Matches reports whether the directive's pattern matches the target path.
func (d Directive) Matches(target string) bool {
	return Matches(d.Pattern, target)
}

// Specificity returns the number of literal segments the directive's pattern
// matched against the target, and whether it matched at all.
func (d Directive) Specificity(target string) (int, bool) {
	return Specificity(d.Pattern, target)
}

// CanonicalPattern normalizes a raw pattern: trims surrounding space, splits
// on ":", trims each segment, drops empty segments, lowercases, and rejoins.
// Returns ErrEmptyPattern when nothing remains and ErrMisplacedWildcard when
// "**" appears anywhere but the final segment.
func CanonicalPattern(raw string) (string, error) {
	segments := splitSegments(raw)
	if len(segments) == 0 {
		return "", ErrEmptyPattern
	}

	for i, seg := range segments {
		if seg == SubtreeWildcard && i != len(segments)-1 {
			return "", ErrMisplacedWildcard
		}
	}

	return strings.Join(segments, Separator), nil
}

// ParseAll parses a list of directive tokens, failing on the first malformed
// entry. Blank entries are skipped so claim lists survive sloppy encoding.
func ParseAll(raw []string) ([]Directive, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	directives := make([]Directive, 0, len(raw))
	for _, token := range raw {
		if strings.TrimSpace(token) == "" {
			continue
		}
		d, err := Parse(token)
		if err != nil {
			return nil, err
		}
		directives = append(directives, d)
	}

	return directives, nil
}

// Strings serializes directives to their token form, preserving order.
func Strings(directives []Directive) []string {
	if len(directives) == 0 {
		return nil
	}

	out := make([]string, len(directives))
	for i, d := range directives {
		out[i] = d.String()
	}
	return out
}

// EqualDirectives reports whether two directive lists contain the same
// directives in the same order.
func EqualDirectives(a, b []Directive) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// splitSegments canonicalizes a raw path into its segments: trimmed,
// lowercased, empty segments collapsed. Returns nil when nothing remains.
func splitSegments(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, Separator)
	segments := make([]string, 0, len(parts))
	for i := range parts {
		if seg := strings.TrimSpace(parts[i]); seg != "" {
			segments = append(segments, strings.ToLower(seg))
		}
	}

	if len(segments) == 0 {
		return nil
	}
	return segments
}
