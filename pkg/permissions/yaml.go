package permissions

import (
	"errors"
	"io"

	"gopkg.in/yaml.v3"
)

// catalogFile is the root of the YAML authoring format:
//
//	permissions:
//	  - identifier: api
//	    children:
//	      - identifier: iam
//	        children:
//	          - identifier: users
//	            children:
//	              - identifier: read
//	                description: List and view users
//	                read: true
//	              - identifier: "{userId}"
//	                children:
//	                  - identifier: write
//	                    write: true
type catalogFile struct {
	Permissions []Def `yaml:"permissions"`
}

// LoadYAML builds a catalog from a declarative YAML document.
func LoadYAML(r io.Reader) (*Catalog, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Join(ErrInvalidDefinition, err)
	}
	return ParseYAML(raw)
}

// ParseYAML builds a catalog from YAML bytes.
func ParseYAML(raw []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, errors.Join(ErrInvalidDefinition, err)
	}
	if len(file.Permissions) == 0 {
		return nil, errors.Join(ErrInvalidDefinition, errors.New("permissions: no definitions"))
	}
	return New(file.Permissions)
}
