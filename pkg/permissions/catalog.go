package permissions

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Def is the declarative definition a catalog is built from. Identifier is a
// single path segment: a literal name ("users") or a "{name}" placeholder
// that must be substituted before the permission can be evaluated.
type Def struct {
	Identifier  string `yaml:"identifier"`
	Description string `yaml:"description,omitempty"`
	Read        bool   `yaml:"read,omitempty"`
	Write       bool   `yaml:"write,omitempty"`
	Children    []Def  `yaml:"children,omitempty"`
}

// Catalog is the process-wide permission tree. It is built once at startup
// and immutable afterwards; treat it as an injected dependency rather than
// ambient global state.
type Catalog struct {
	roots  []*Permission
	byPath map[string]*Permission
}

// New builds a catalog from declarative definitions. It validates that
// every path is unique, that placeholder names are unique along any
// root-to-leaf chain, and that identifiers are single non-empty segments.
func New(defs []Def) (*Catalog, error) {
	c := &Catalog{
		byPath: make(map[string]*Permission),
	}

	for _, def := range defs {
		node, err := c.build(def, "", nil)
		if err != nil {
			return nil, err
		}
		c.roots = append(c.roots, node)
	}

	return c, nil
}

func (c *Catalog) build(def Def, parentPath string, inherited []string) (*Permission, error) {
	ident := strings.TrimSpace(def.Identifier)
	if name, ok := placeholderName(ident); ok {
		if strings.TrimSpace(name) == "" {
			return nil, errors.Join(ErrMalformedIdentifier, fmt.Errorf("empty placeholder under %q", parentPath))
		}
	} else {
		ident = strings.ToLower(ident)
		if ident == "" || strings.Contains(ident, Separator) {
			return nil, errors.Join(ErrMalformedIdentifier, fmt.Errorf("identifier %q under %q", def.Identifier, parentPath))
		}
	}

	path := ident
	if parentPath != "" {
		path = parentPath + Separator + ident
	}

	if _, exists := c.byPath[path]; exists {
		return nil, errors.Join(ErrDuplicatePath, fmt.Errorf("path %q", path))
	}

	parameters := slices.Clone(inherited)
	if name, ok := placeholderName(ident); ok {
		if slices.Contains(parameters, name) {
			return nil, errors.Join(ErrDuplicateParameter, fmt.Errorf("parameter %q at %q", name, path))
		}
		parameters = append(parameters, name)
	}

	node := &Permission{
		path:        path,
		identifier:  ident,
		description: def.Description,
		parameters:  parameters,
		isRead:      def.Read,
		isWrite:     def.Write,
	}
	c.byPath[path] = node

	for _, childDef := range def.Children {
		child, err := c.build(childDef, path, parameters)
		if err != nil {
			return nil, err
		}
		node.children = append(node.children, child)
	}

	return node, nil
}

// Roots returns the catalog's root permissions in declaration order.
func (c *Catalog) Roots() []*Permission {
	out := make([]*Permission, len(c.roots))
	copy(out, c.roots)
	return out
}

// Find looks up a permission by its exact templated path. The raw path is
// canonicalized before lookup.
func (c *Catalog) Find(path string) (*Permission, error) {
	canonical, err := ParseIdentifier(path)
	if err != nil {
		return nil, err
	}

	node, ok := c.byPath[canonical]
	if !ok {
		return nil, errors.Join(ErrPermissionNotFound, fmt.Errorf("path %q", canonical))
	}
	return node, nil
}

// FindChain looks up a permission by its identifier chain from a root, e.g.
// FindChain("api", "iam", "users", "read").
func (c *Catalog) FindChain(identifiers ...string) (*Permission, error) {
	if len(identifiers) == 0 {
		return nil, ErrMalformedIdentifier
	}
	return c.Find(strings.Join(identifiers, Separator))
}

// Walk visits every permission in the catalog in depth-first declaration
// order. Returning false from fn stops the walk.
func (c *Catalog) Walk(fn func(*Permission) bool) {
	var walk func(*Permission) bool
	walk = func(p *Permission) bool {
		if !fn(p) {
			return false
		}
		for _, child := range p.children {
			if !walk(child) {
				return false
			}
		}
		return true
	}

	for _, root := range c.roots {
		if !walk(root) {
			return
		}
	}
}

// Len returns the total number of permissions in the catalog.
func (c *Catalog) Len() int {
	return len(c.byPath)
}

// Node is the read projection of a catalog entry served to administrative
// and UI consumers. It carries no engine logic.
type Node struct {
	Path        string   `json:"path"`
	Identifier  string   `json:"identifier"`
	Description string   `json:"description,omitempty"`
	Parameters  []string `json:"parameters,omitempty"`
	IsRead      bool     `json:"is_read"`
	IsWrite     bool     `json:"is_write"`
	Children    []Node   `json:"children,omitempty"`
}

// Tree returns the whole catalog as a listing projection.
func (c *Catalog) Tree() []Node {
	nodes := make([]Node, 0, len(c.roots))
	for _, root := range c.roots {
		nodes = append(nodes, project(root))
	}
	return nodes
}

func project(p *Permission) Node {
	node := Node{
		Path:        p.path,
		Identifier:  p.identifier,
		Description: p.description,
		Parameters:  p.Parameters(),
		IsRead:      p.isRead,
		IsWrite:     p.isWrite,
	}
	for _, child := range p.children {
		node.Children = append(node.Children, project(child))
	}
	return node
}
