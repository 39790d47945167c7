package permissions

import "strings"

// Separator delimits the segments of a permission identifier.
const Separator = ":"

// ParseIdentifier canonicalizes a raw permission identifier: surrounding
// whitespace is trimmed, the string is split on ":", empty segments are
// dropped, literal segments are lowercased and the result is rejoined.
// Placeholder segments ("{userId}") keep their case because placeholder
// names are looked up by exact name during path building.
//
// Returns ErrMalformedIdentifier when nothing remains after
// canonicalization.
func ParseIdentifier(raw string) (string, error) {
	segments := splitIdentifier(raw)
	if len(segments) == 0 {
		return "", ErrMalformedIdentifier
	}
	return strings.Join(segments, Separator), nil
}

// splitIdentifier splits a raw identifier into canonical segments. Returns
// nil when the identifier is empty after canonicalization.
func splitIdentifier(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, Separator)
	segments := make([]string, 0, len(parts))
	for i := range parts {
		seg := strings.TrimSpace(parts[i])
		if seg == "" {
			continue
		}
		if _, ok := placeholderName(seg); !ok {
			seg = strings.ToLower(seg)
		}
		segments = append(segments, seg)
	}

	if len(segments) == 0 {
		return nil
	}
	return segments
}
