package roles

import (
	"slices"
	"strings"

	"github.com/authzkit/authzkit/pkg/scopes"
)

// Template is one scope template of a role definition: a directive type,
// the templated catalog path it targets, and bindings for the permission's
// required parameters. A binding value written "{name}" references a
// role-level placeholder filled in per assignment; any other value is a
// literal that passes through unchanged (including wildcards such as "*").
type Template struct {
	Type       scopes.DirectiveType `yaml:"type"`
	Permission string               `yaml:"permission"`
	Params     map[string]string    `yaml:"params,omitempty"`
}

// Role is a named, reusable authorization template. Its scope templates are
// instantiated per user via an Assignment that supplies concrete values for
// the role's placeholders.
type Role struct {
	Code        string     `yaml:"code"`
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Parameters  []string   `yaml:"parameters,omitempty"`
	Templates   []Template `yaml:"templates"`
}

// TemplateParameters returns the role's placeholder names: the explicit
// Parameters list when declared, otherwise the set inferred from the
// template bindings, in first-reference order.
func (r Role) TemplateParameters() []string {
	if len(r.Parameters) > 0 {
		out := make([]string, len(r.Parameters))
		copy(out, r.Parameters)
		return out
	}

	var inferred []string
	for _, tmpl := range r.Templates {
		for _, value := range sortedValues(tmpl.Params) {
			if name, ok := placeholderRef(value); ok && !slices.Contains(inferred, name) {
				inferred = append(inferred, name)
			}
		}
	}
	return inferred
}

// placeholderRef reports whether a template binding value is a "{name}"
// placeholder reference and returns the enclosed name.
func placeholderRef(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if len(value) < 3 || value[0] != '{' || value[len(value)-1] != '}' {
		return "", false
	}

	name := strings.TrimSpace(value[1 : len(value)-1])
	if name == "" {
		return "", false
	}
	return name, true
}

// sortedValues returns the map's values ordered by key so parameter
// inference is deterministic.
func sortedValues(m map[string]string) []string {
	if len(m) == 0 {
		return nil
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	values := make([]string, len(keys))
	for i, k := range keys {
		values[i] = m[k]
	}
	return values
}
