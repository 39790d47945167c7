package roles

import (
	"maps"
	"strings"
)

// Assignment binds one user to one role definition plus the concrete values
// for that role's placeholders. Assignments are owned by the identity store;
// the engine only ever receives read-only snapshots of them.
type Assignment struct {
	RoleCode string
	Values   map[string]string
}

// NewAssignment constructs a normalized assignment: the role code and
// parameter keys/values are trimmed and entries with empty keys or values
// are dropped. An assignment missing required values is still constructible;
// unresolved templates fail closed during resolution.
func NewAssignment(roleCode string, values map[string]string) Assignment {
	a := Assignment{RoleCode: strings.TrimSpace(roleCode)}
	if len(values) == 0 {
		return a
	}

	a.Values = make(map[string]string, len(values))
	for k, v := range values {
		k = strings.TrimSpace(k)
		v = strings.TrimSpace(v)
		if k == "" || v == "" {
			continue
		}
		a.Values[k] = v
	}
	if len(a.Values) == 0 {
		a.Values = nil
	}
	return a
}

// Equal reports whether two assignments reference the same role with the
// same parameter values, regardless of map iteration order.
func (a Assignment) Equal(other Assignment) bool {
	return a.RoleCode == other.RoleCode && maps.Equal(a.Values, other.Values)
}
