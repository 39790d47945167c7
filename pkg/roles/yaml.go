package roles

import (
	"errors"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/authzkit/authzkit/pkg/permissions"
)

// rolesFile is the root of the YAML authoring format:
//
//	roles:
//	  - code: ADMIN
//	    name: Administrator
//	    templates:
//	      - type: allow
//	        permission: api:iam:users:read
//	      - type: allow
//	        permission: api:iam:users:{userId}:write
//	        params:
//	          userId: "*"
//	  - code: USER_MANAGER
//	    name: User manager
//	    parameters: [targetUser]
//	    templates:
//	      - type: allow
//	        permission: api:iam:users:{userId}:write
//	        params:
//	          userId: "{targetUser}"
type rolesFile struct {
	Roles []Role `yaml:"roles"`
}

// LoadYAML builds a registry from a declarative YAML document, validated
// against the given catalog.
func LoadYAML(catalog *permissions.Catalog, r io.Reader) (*Registry, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Join(ErrInvalidDefinition, err)
	}
	return ParseYAML(catalog, raw)
}

// ParseYAML builds a registry from YAML bytes.
func ParseYAML(catalog *permissions.Catalog, raw []byte) (*Registry, error) {
	var file rolesFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, errors.Join(ErrInvalidDefinition, err)
	}
	if len(file.Roles) == 0 {
		return nil, errors.Join(ErrInvalidDefinition, errors.New("roles: no definitions"))
	}
	return NewRegistry(catalog, file.Roles)
}
