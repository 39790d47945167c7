package roles

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/authzkit/authzkit/pkg/permissions"
	"github.com/authzkit/authzkit/pkg/scopes"
)

// Registry holds the process-wide role definitions, validated against the
// permission catalog. Like the catalog, it is built once at startup and
// immutable afterwards, so it is safe for unsynchronized concurrent reads.
type Registry struct {
	catalog *permissions.Catalog
	roles   map[string]Role
	codes   []string
}

// Warning reports a scope template that was skipped during resolution
// because the assignment did not supply a required placeholder value. A role
// may legitimately be assigned before all its parameters are known, so this
// is a diagnostic, not an error; the skipped template simply grants nothing.
type Warning struct {
	Role       string
	Permission string
	Parameter  string
}

func (w Warning) String() string {
	return fmt.Sprintf("role %q: template %q skipped: missing parameter %q", w.Role, w.Permission, w.Parameter)
}

// NewRegistry validates role definitions against the catalog and builds an
// immutable registry. It enforces unique non-empty role codes, known
// directive types, templates that target existing catalog nodes, and
// placeholder references that are declared in the role's parameter set.
func NewRegistry(catalog *permissions.Catalog, defs []Role) (*Registry, error) {
	if catalog == nil {
		return nil, errors.New("roles: nil catalog")
	}

	r := &Registry{
		catalog: catalog,
		roles:   make(map[string]Role, len(defs)),
		codes:   make([]string, 0, len(defs)),
	}

	for _, def := range defs {
		code := strings.TrimSpace(def.Code)
		if code == "" {
			return nil, errors.Join(ErrInvalidRole, fmt.Errorf("role %q: empty code", def.Name))
		}
		if _, exists := r.roles[code]; exists {
			return nil, errors.Join(ErrDuplicateRole, fmt.Errorf("code %q", code))
		}

		declared := def.TemplateParameters()

		// Normalization must not leak into the caller's slice.
		def.Templates = slices.Clone(def.Templates)
		for i := range def.Templates {
			tmpl := &def.Templates[i]

			t, err := scopes.ParseDirectiveType(string(tmpl.Type))
			if err != nil {
				return nil, errors.Join(err, fmt.Errorf("role %q template %d", code, i))
			}
			tmpl.Type = t

			node, err := catalog.Find(tmpl.Permission)
			if err != nil {
				return nil, errors.Join(err, fmt.Errorf("role %q template %d", code, i))
			}
			tmpl.Permission = node.Path()

			for param, value := range tmpl.Params {
				name, ok := placeholderRef(value)
				if !ok {
					continue
				}
				if !slices.Contains(declared, name) {
					return nil, errors.Join(ErrUndeclaredParameter,
						fmt.Errorf("role %q template %q binds %q to undeclared placeholder %q", code, tmpl.Permission, param, name))
				}
			}
		}

		def.Code = code
		r.roles[code] = def
		r.codes = append(r.codes, code)
	}

	return r, nil
}

// Get returns the role definition for a code.
func (r *Registry) Get(code string) (Role, error) {
	role, ok := r.roles[strings.TrimSpace(code)]
	if !ok {
		return Role{}, errors.Join(ErrUnknownRole, fmt.Errorf("code %q", code))
	}
	return role, nil
}

// Codes returns all role codes in declaration order.
func (r *Registry) Codes() []string {
	out := make([]string, len(r.codes))
	copy(out, r.codes)
	return out
}

// Resolve materializes an assignment into concrete scope directives. For
// each scope template the placeholder bindings are substituted from the
// assignment's values and the permission's concrete path is built via the
// catalog. A template lacking a required placeholder value is skipped and
// reported as a Warning; resolution never fails on incomplete assignments.
//
// Returns ErrUnknownRole when the assignment references a role the registry
// does not know.
func (r *Registry) Resolve(a Assignment) ([]scopes.Directive, []Warning, error) {
	role, err := r.Get(a.RoleCode)
	if err != nil {
		return nil, nil, err
	}

	directives := make([]scopes.Directive, 0, len(role.Templates))
	var warnings []Warning

	for _, tmpl := range role.Templates {
		node, err := r.catalog.Find(tmpl.Permission)
		if err != nil {
			// Registry construction verified the path; a miss here means the
			// catalog and registry are out of sync.
			return nil, nil, err
		}

		values := make(map[string]string, len(tmpl.Params))
		skipped := false
		for param, value := range tmpl.Params {
			name, ok := placeholderRef(value)
			if !ok {
				values[param] = value
				continue
			}

			concrete, found := a.Values[name]
			if !found {
				warnings = append(warnings, Warning{Role: role.Code, Permission: tmpl.Permission, Parameter: name})
				skipped = true
				break
			}
			values[param] = concrete
		}
		if skipped {
			continue
		}

		path, err := node.BuildPath(values)
		if err != nil {
			if errors.Is(err, permissions.ErrMissingParameter) {
				// A required parameter had no binding at all; fail closed.
				warnings = append(warnings, Warning{Role: role.Code, Permission: tmpl.Permission, Parameter: missingParam(node, values)})
				continue
			}
			return nil, nil, err
		}

		d, err := scopes.New(tmpl.Type, path)
		if err != nil {
			return nil, nil, errors.Join(err, fmt.Errorf("role %q template %q", role.Code, tmpl.Permission))
		}
		directives = append(directives, d)
	}

	return directives, warnings, nil
}

// missingParam returns the first required parameter of the node that has no
// usable value, for warning diagnostics.
func missingParam(node *permissions.Permission, values map[string]string) string {
	for _, name := range node.Parameters() {
		if strings.TrimSpace(values[name]) == "" {
			return name
		}
	}
	return ""
}
