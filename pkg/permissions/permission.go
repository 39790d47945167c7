package permissions

import (
	"errors"
	"fmt"
	"strings"
)

// Permission is a node of the permission catalog: a canonical
// colon-segmented path, the local segment name, and the placeholder names
// required to resolve the path to a concrete identifier. Nodes are built
// once via New and never mutated afterwards, so they are safe for
// unsynchronized concurrent reads.
type Permission struct {
	path        string
	identifier  string
	description string
	parameters  []string
	isRead      bool
	isWrite     bool
	children    []*Permission
}

// Path returns the canonical templated path, e.g. "api:iam:users:{userId}:write".
func (p *Permission) Path() string { return p.path }

// Identifier returns the local segment name of this node.
func (p *Permission) Identifier() string { return p.identifier }

// Description returns the human-readable description.
func (p *Permission) Description() string { return p.description }

// Parameters returns the ordered placeholder names this node (including its
// ancestors) requires to resolve to a concrete path. The returned slice is a
// copy.
func (p *Permission) Parameters() []string {
	if len(p.parameters) == 0 {
		return nil
	}
	out := make([]string, len(p.parameters))
	copy(out, p.parameters)
	return out
}

// IsRead reports whether the node is classified as a read operation. The
// flag is used for UI grouping only, never for evaluation.
func (p *Permission) IsRead() bool { return p.isRead }

// IsWrite reports whether the node is classified as a write operation.
func (p *Permission) IsWrite() bool { return p.isWrite }

// Children returns the node's child permissions in declaration order. The
// returned slice is a copy; the nodes themselves are shared and immutable.
func (p *Permission) Children() []*Permission {
	if len(p.children) == 0 {
		return nil
	}
	out := make([]*Permission, len(p.children))
	copy(out, p.children)
	return out
}

// BuildPath substitutes the node's required parameters with the provided
// concrete values and returns a fully concrete permission identifier.
// Returns ErrMissingParameter when a required value is absent or blank.
func (p *Permission) BuildPath(values map[string]string) (string, error) {
	if len(p.parameters) == 0 {
		return p.path, nil
	}

	segments := strings.Split(p.path, Separator)
	for i, seg := range segments {
		name, ok := placeholderName(seg)
		if !ok {
			continue
		}

		value, found := values[name]
		value = strings.TrimSpace(value)
		if !found || value == "" {
			return "", errors.Join(ErrMissingParameter, fmt.Errorf("parameter %q of %q", name, p.path))
		}
		segments[i] = strings.ToLower(value)
	}

	return strings.Join(segments, Separator), nil
}

// placeholderName reports whether a path segment is a "{name}" placeholder
// and returns the enclosed name.
func placeholderName(segment string) (string, bool) {
	if len(segment) < 3 || segment[0] != '{' || segment[len(segment)-1] != '}' {
		return "", false
	}
	return segment[1 : len(segment)-1], true
}
